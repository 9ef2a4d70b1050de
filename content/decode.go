// seehuhn.de/go/pagetext - interpret PDF page content and extract text
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package content

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/graphics"
)

// decoders maps operator names to the functions which parse their operands.
// Decode checks for unused operands after the decoder returns.
var decoders = map[OpName]func(*argParser) Op{
	// Graphics state
	OpPushGraphicsState:    func(*argParser) Op { return PushState{} },
	OpPopGraphicsState:     func(*argParser) Op { return PopState{} },
	OpTransform:            decodeConcat,
	OpSetLineWidth:         func(p *argParser) Op { return SetLineWidth{Width: p.GetFloat()} },
	OpSetLineCap:           decodeLineCap,
	OpSetLineJoin:          decodeLineJoin,
	OpSetMiterLimit:        func(p *argParser) Op { return SetMiterLimit{Limit: p.GetFloat()} },
	OpSetLineDash:          decodeLineDash,
	OpSetRenderingIntent:   func(p *argParser) Op { return SetRenderingIntent{Intent: p.GetName()} },
	OpSetFlatnessTolerance: func(p *argParser) Op { return SetFlatness{Flatness: p.GetFloat()} },
	OpSetExtGState:         func(p *argParser) Op { return SetExtGState{Dict: p.GetName()} },

	// Path construction
	OpMoveTo:    func(p *argParser) Op { return MoveTo{X: p.GetFloat(), Y: p.GetFloat()} },
	OpLineTo:    func(p *argParser) Op { return LineTo{X: p.GetFloat(), Y: p.GetFloat()} },
	OpCurveTo:   decodeCurveTo,
	OpCurveToV:  decodeCurveToV,
	OpCurveToY:  decodeCurveToY,
	OpClosePath: func(*argParser) Op { return ClosePath{} },
	OpRectangle: decodeRectangle,

	// Path painting
	OpStroke:                    decodePaint(OpStroke),
	OpCloseAndStroke:            decodePaint(OpCloseAndStroke),
	OpFill:                      decodePaint(OpFill),
	OpFillCompat:                decodePaint(OpFillCompat),
	OpFillEvenOdd:               decodePaint(OpFillEvenOdd),
	OpFillAndStroke:             decodePaint(OpFillAndStroke),
	OpFillAndStrokeEvenOdd:      decodePaint(OpFillAndStrokeEvenOdd),
	OpCloseFillAndStroke:        decodePaint(OpCloseFillAndStroke),
	OpCloseFillAndStrokeEvenOdd: decodePaint(OpCloseFillAndStrokeEvenOdd),
	OpEndPath:                   decodePaint(OpEndPath),

	// Clipping paths
	OpClipNonZero: func(*argParser) Op { return Clip{} },
	OpClipEvenOdd: func(*argParser) Op { return Clip{EvenOdd: true} },

	// Text objects
	OpTextBegin: func(*argParser) Op { return BeginText{} },
	OpTextEnd:   func(*argParser) Op { return EndText{} },

	// Text state
	OpTextSetCharacterSpacing:  func(p *argParser) Op { return SetCharSpacing{Spacing: p.GetFloat()} },
	OpTextSetWordSpacing:       func(p *argParser) Op { return SetWordSpacing{Spacing: p.GetFloat()} },
	OpTextSetHorizontalScaling: func(p *argParser) Op { return SetHorizScaling{Percent: p.GetFloat()} },
	OpTextSetLeading:           func(p *argParser) Op { return SetLeading{Leading: p.GetFloat()} },
	OpTextSetFont:              decodeSetFont,
	OpTextSetRenderingMode:     decodeRenderMode,
	OpTextSetRise:              func(p *argParser) Op { return SetRise{Rise: p.GetFloat()} },

	// Text positioning
	OpTextMoveOffset:           func(p *argParser) Op { return MoveText{Tx: p.GetFloat(), Ty: p.GetFloat()} },
	OpTextMoveOffsetSetLeading: func(p *argParser) Op { return MoveTextSetLeading{Tx: p.GetFloat(), Ty: p.GetFloat()} },
	OpTextSetMatrix:            func(p *argParser) Op { return SetTextMatrix{Matrix: getMatrix(p)} },
	OpTextNextLine:             func(*argParser) Op { return NextLine{} },

	// Text showing
	OpTextShow:                       func(p *argParser) Op { return ShowText{Text: p.GetString()} },
	OpTextShowArray:                  decodeShowArray,
	OpTextShowMoveNextLine:           func(p *argParser) Op { return NextLineShowText{Text: p.GetString()} },
	OpTextShowMoveNextLineSetSpacing: decodeShowSpacing,

	// Type 3 fonts
	OpType3SetWidthOnly:           func(p *argParser) Op { return SetGlyphWidth{Wx: p.GetFloat(), Wy: p.GetFloat()} },
	OpType3SetWidthAndBoundingBox: decodeGlyphWidthAndBBox,

	// Color
	OpSetStrokeColorSpace: func(p *argParser) Op { return SetColorSpace{Stroke: true, Space: p.GetName()} },
	OpSetFillColorSpace:   func(p *argParser) Op { return SetColorSpace{Space: p.GetName()} },
	OpSetStrokeColor:      decodeColor(true, false),
	OpSetStrokeColorN:     decodeColor(true, true),
	OpSetFillColor:        decodeColor(false, false),
	OpSetFillColorN:       decodeColor(false, true),
	OpSetStrokeGray:       func(p *argParser) Op { return SetGray{Stroke: true, Gray: p.GetFloat()} },
	OpSetFillGray:         func(p *argParser) Op { return SetGray{Gray: p.GetFloat()} },
	OpSetStrokeRGB:        decodeRGB(true),
	OpSetFillRGB:          decodeRGB(false),
	OpSetStrokeCMYK:       decodeCMYK(true),
	OpSetFillCMYK:         decodeCMYK(false),

	// Shading, XObjects and inline images
	OpShading:          func(p *argParser) Op { return PaintShading{Shading: p.GetName()} },
	OpXObject:          func(p *argParser) Op { return PaintXObject{XObject: p.GetName()} },
	OpBeginInlineImage: decodeInlineImage(OpBeginInlineImage),
	OpInlineImageData:  decodeInlineImage(OpInlineImageData),
	OpEndInlineImage:   decodeInlineImage(OpEndInlineImage),

	// Marked content
	OpMarkedContentPoint:               decodeMarkedContent(OpMarkedContentPoint),
	OpMarkedContentPointWithProperties: decodeMarkedContent(OpMarkedContentPointWithProperties),
	OpBeginMarkedContent:               decodeMarkedContent(OpBeginMarkedContent),
	OpBeginMarkedContentWithProperties: decodeMarkedContent(OpBeginMarkedContentWithProperties),
	OpEndMarkedContent:                 func(*argParser) Op { return EndMarkedContent{} },

	// Compatibility
	OpBeginCompatibility: func(*argParser) Op { return BeginCompatibility{} },
	OpEndCompatibility:   func(*argParser) Op { return EndCompatibility{} },
}

func getMatrix(p *argParser) matrix.Matrix {
	var m matrix.Matrix
	for i := range m {
		m[i] = p.GetFloat()
	}
	return m
}

func decodeConcat(p *argParser) Op {
	return Concat{Matrix: getMatrix(p)}
}

func decodeLineCap(p *argParser) Op {
	c := p.GetInt()
	if c < 0 || c > 2 {
		p.fail("invalid line cap style %d", c)
	}
	return SetLineCap{Cap: graphics.LineCapStyle(c)}
}

func decodeLineJoin(p *argParser) Op {
	j := p.GetInt()
	if j < 0 || j > 2 {
		p.fail("invalid line join style %d", j)
	}
	return SetLineJoin{Join: graphics.LineJoinStyle(j)}
}

func decodeLineDash(p *argParser) Op {
	arr := p.GetArray()
	phase := p.GetFloat()
	if p.err != nil {
		return nil
	}

	dashes := make([]float64, len(arr))
	for i, obj := range arr {
		x, ok := getNumber(obj)
		if !ok {
			p.fail("expected number in dash array, got %T", obj)
			return nil
		}
		dashes[i] = x
	}
	pat, err := graphics.NewDashPattern(dashes, phase)
	if err != nil {
		p.fail("%v", err)
		return nil
	}
	return SetLineDash{Pattern: pat}
}

func decodeCurveTo(p *argParser) Op {
	return CurveTo{
		X1: p.GetFloat(), Y1: p.GetFloat(),
		X2: p.GetFloat(), Y2: p.GetFloat(),
		X3: p.GetFloat(), Y3: p.GetFloat(),
	}
}

func decodeCurveToV(p *argParser) Op {
	return CurveToV{
		X2: p.GetFloat(), Y2: p.GetFloat(),
		X3: p.GetFloat(), Y3: p.GetFloat(),
	}
}

func decodeCurveToY(p *argParser) Op {
	return CurveToY{
		X1: p.GetFloat(), Y1: p.GetFloat(),
		X3: p.GetFloat(), Y3: p.GetFloat(),
	}
}

func decodeRectangle(p *argParser) Op {
	return Rectangle{
		X: p.GetFloat(), Y: p.GetFloat(),
		Width: p.GetFloat(), Height: p.GetFloat(),
	}
}

func decodePaint(name OpName) func(*argParser) Op {
	return func(*argParser) Op { return PaintPath{Op: name} }
}

func decodeSetFont(p *argParser) Op {
	return SetFont{Font: p.GetName(), Size: p.GetFloat()}
}

func decodeRenderMode(p *argParser) Op {
	m := p.GetInt()
	if m < 0 || m > 7 {
		p.fail("invalid text rendering mode %d", m)
	}
	return SetRenderMode{Mode: graphics.TextRenderingMode(m)}
}

func decodeShowArray(p *argParser) Op {
	arr := p.GetArray()
	if p.err != nil {
		return nil
	}
	items := make([]TextItem, 0, len(arr))
	for _, obj := range arr {
		switch obj := obj.(type) {
		case pdf.String:
			items = append(items, TextItem{Text: obj})
		default:
			x, ok := getNumber(obj)
			if !ok {
				p.fail("unexpected %T in TJ array", obj)
				return nil
			}
			items = append(items, TextItem{Kern: x})
		}
	}
	return ShowTextArray{Items: items}
}

func decodeShowSpacing(p *argParser) Op {
	return NextLineShowTextSpacing{
		WordSpacing: p.GetFloat(),
		CharSpacing: p.GetFloat(),
		Text:        p.GetString(),
	}
}

func decodeGlyphWidthAndBBox(p *argParser) Op {
	return SetGlyphWidthAndBBox{
		Wx: p.GetFloat(), Wy: p.GetFloat(),
		LLx: p.GetFloat(), LLy: p.GetFloat(),
		URx: p.GetFloat(), URy: p.GetFloat(),
	}
}

func decodeColor(stroke, n bool) func(*argParser) Op {
	return func(p *argParser) Op {
		op := SetColor{Stroke: stroke, N: n}
		args := p.Rest()
		if n && len(args) > 0 {
			if name, ok := args[len(args)-1].(pdf.Name); ok {
				op.Pattern = name
				args = args[:len(args)-1]
			}
		}
		for _, obj := range args {
			x, ok := getNumber(obj)
			if !ok {
				p.fail("expected number, got %T", obj)
				return nil
			}
			op.Values = append(op.Values, x)
		}
		if len(op.Values) == 0 && op.Pattern == "" {
			p.err = errNotEnough
			return nil
		}
		return op
	}
}

func decodeRGB(stroke bool) func(*argParser) Op {
	return func(p *argParser) Op {
		return SetRGB{Stroke: stroke, R: p.GetFloat(), G: p.GetFloat(), B: p.GetFloat()}
	}
}

func decodeCMYK(stroke bool) func(*argParser) Op {
	return func(p *argParser) Op {
		return SetCMYK{Stroke: stroke, C: p.GetFloat(), M: p.GetFloat(), Y: p.GetFloat(), K: p.GetFloat()}
	}
}

func decodeInlineImage(name OpName) func(*argParser) Op {
	return func(p *argParser) Op {
		p.Rest() // image dictionary entries, if any
		return InlineImage{Op: name}
	}
}

func decodeMarkedContent(name OpName) func(*argParser) Op {
	return func(p *argParser) Op {
		op := MarkedContent{Op: name, Tag: p.GetName()}
		if name == OpMarkedContentPointWithProperties || name == OpBeginMarkedContentWithProperties {
			op.Properties = p.GetProperties()
		}
		return op
	}
}
