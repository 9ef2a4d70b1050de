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

// Op is a decoded content stream operator.
//
// All implementations of Op are defined in this package.
type Op interface {
	// Name returns the operator name as it appears in the content stream.
	Name() OpName

	isOp()
}

// PushState is the "q" operator.
type PushState struct{}

// PopState is the "Q" operator.
type PopState struct{}

// Concat is the "cm" operator.
type Concat struct {
	Matrix matrix.Matrix
}

// SetLineWidth is the "w" operator.
type SetLineWidth struct {
	Width float64
}

// SetLineCap is the "J" operator.
type SetLineCap struct {
	Cap graphics.LineCapStyle
}

// SetLineJoin is the "j" operator.
type SetLineJoin struct {
	Join graphics.LineJoinStyle
}

// SetMiterLimit is the "M" operator.
type SetMiterLimit struct {
	Limit float64
}

// SetLineDash is the "d" operator.
type SetLineDash struct {
	Pattern graphics.DashPattern
}

// String formats the operator as it would appear in a content stream,
// for example "[3, 1] 2 d".
func (op SetLineDash) String() string {
	return op.Pattern.String() + " d"
}

// SetRenderingIntent is the "ri" operator.
type SetRenderingIntent struct {
	Intent pdf.Name
}

// SetFlatness is the "i" operator.
type SetFlatness struct {
	Flatness float64
}

// SetExtGState is the "gs" operator.
type SetExtGState struct {
	Dict pdf.Name
}

// MoveTo is the "m" operator.
type MoveTo struct {
	X, Y float64
}

// LineTo is the "l" operator.
type LineTo struct {
	X, Y float64
}

// CurveTo is the "c" operator.
type CurveTo struct {
	X1, Y1, X2, Y2, X3, Y3 float64
}

// CurveToV is the "v" operator.  The first control point coincides with the
// current point.
type CurveToV struct {
	X2, Y2, X3, Y3 float64
}

// CurveToY is the "y" operator.  The second control point coincides with the
// end point.
type CurveToY struct {
	X1, Y1, X3, Y3 float64
}

// ClosePath is the "h" operator.
type ClosePath struct{}

// Rectangle is the "re" operator.
type Rectangle struct {
	X, Y, Width, Height float64
}

// PaintPath is one of the path painting operators "S", "s", "f", "F", "f*",
// "B", "B*", "b", "b*" and "n".
type PaintPath struct {
	Op OpName
}

// Stroke reports whether the path is stroked.
func (op PaintPath) Stroke() bool {
	switch op.Op {
	case OpStroke, OpCloseAndStroke, OpFillAndStroke, OpFillAndStrokeEvenOdd,
		OpCloseFillAndStroke, OpCloseFillAndStrokeEvenOdd:
		return true
	}
	return false
}

// Fill reports whether the path is filled.
func (op PaintPath) Fill() bool {
	switch op.Op {
	case OpFill, OpFillCompat, OpFillEvenOdd, OpFillAndStroke,
		OpFillAndStrokeEvenOdd, OpCloseFillAndStroke, OpCloseFillAndStrokeEvenOdd:
		return true
	}
	return false
}

// Close reports whether the current subpath is closed before painting.
func (op PaintPath) Close() bool {
	switch op.Op {
	case OpCloseAndStroke, OpCloseFillAndStroke, OpCloseFillAndStrokeEvenOdd:
		return true
	}
	return false
}

// EvenOdd reports whether the even-odd rule is used for filling.
func (op PaintPath) EvenOdd() bool {
	switch op.Op {
	case OpFillEvenOdd, OpFillAndStrokeEvenOdd, OpCloseFillAndStrokeEvenOdd:
		return true
	}
	return false
}

// Clip is the "W" or "W*" operator.
type Clip struct {
	EvenOdd bool
}

// BeginText is the "BT" operator.
type BeginText struct{}

// EndText is the "ET" operator.
type EndText struct{}

// SetCharSpacing is the "Tc" operator.
type SetCharSpacing struct {
	Spacing float64
}

// SetWordSpacing is the "Tw" operator.
type SetWordSpacing struct {
	Spacing float64
}

// SetHorizScaling is the "Tz" operator.
type SetHorizScaling struct {
	Percent float64
}

// SetLeading is the "TL" operator.
type SetLeading struct {
	Leading float64
}

// SetFont is the "Tf" operator.
type SetFont struct {
	Font pdf.Name
	Size float64
}

// SetRenderMode is the "Tr" operator.
type SetRenderMode struct {
	Mode graphics.TextRenderingMode
}

// SetRise is the "Ts" operator.
type SetRise struct {
	Rise float64
}

// MoveText is the "Td" operator.
type MoveText struct {
	Tx, Ty float64
}

// MoveTextSetLeading is the "TD" operator.
type MoveTextSetLeading struct {
	Tx, Ty float64
}

// SetTextMatrix is the "Tm" operator.
type SetTextMatrix struct {
	Matrix matrix.Matrix
}

// NextLine is the "T*" operator.
type NextLine struct{}

// ShowText is the "Tj" operator.
type ShowText struct {
	Text pdf.String
}

// TextItem is an element of the "TJ" operand array.  Either Text is a
// string to show, or Kern is an adjustment in thousandths of text space
// units, which is subtracted from the current horizontal position.
type TextItem struct {
	Text pdf.String
	Kern float64
}

// ShowTextArray is the "TJ" operator.
type ShowTextArray struct {
	Items []TextItem
}

// NextLineShowText is the "'" operator.
type NextLineShowText struct {
	Text pdf.String
}

// NextLineShowTextSpacing is the "\"" operator.
type NextLineShowTextSpacing struct {
	WordSpacing float64
	CharSpacing float64
	Text        pdf.String
}

// SetGlyphWidth is the "d0" operator.
type SetGlyphWidth struct {
	Wx, Wy float64
}

// SetGlyphWidthAndBBox is the "d1" operator.
type SetGlyphWidthAndBBox struct {
	Wx, Wy             float64
	LLx, LLy, URx, URy float64
}

// SetColorSpace is the "CS" or "cs" operator.
type SetColorSpace struct {
	Stroke bool
	Space  pdf.Name
}

// SetColor is one of the "SC", "SCN", "sc" and "scn" operators.
type SetColor struct {
	Stroke bool
	N      bool // "SCN" or "scn"

	Values []float64

	// Pattern is the name of a pattern resource.  This can only be set for
	// "SCN" and "scn".
	Pattern pdf.Name
}

// SetGray is the "G" or "g" operator.
type SetGray struct {
	Stroke bool
	Gray   float64
}

// SetRGB is the "RG" or "rg" operator.
type SetRGB struct {
	Stroke  bool
	R, G, B float64
}

// SetCMYK is the "K" or "k" operator.
type SetCMYK struct {
	Stroke     bool
	C, M, Y, K float64
}

// PaintShading is the "sh" operator.
type PaintShading struct {
	Shading pdf.Name
}

// PaintXObject is the "Do" operator.
type PaintXObject struct {
	XObject pdf.Name
}

// InlineImage is one of the inline image operators "BI", "ID" and "EI".
// The image data itself is consumed by the tokenizer.
type InlineImage struct {
	Op OpName
}

// MarkedContent is one of the operators "MP", "DP", "BMC" and "BDC".
type MarkedContent struct {
	Op  OpName
	Tag pdf.Name

	// Properties is a pdf.Dict or the name of a property list resource,
	// for "DP" and "BDC".
	Properties pdf.Object
}

// EndMarkedContent is the "EMC" operator.
type EndMarkedContent struct{}

// BeginCompatibility is the "BX" operator.
type BeginCompatibility struct{}

// EndCompatibility is the "EX" operator.
type EndCompatibility struct{}

func (PushState) Name() OpName          { return OpPushGraphicsState }
func (PopState) Name() OpName           { return OpPopGraphicsState }
func (Concat) Name() OpName             { return OpTransform }
func (SetLineWidth) Name() OpName       { return OpSetLineWidth }
func (SetLineCap) Name() OpName         { return OpSetLineCap }
func (SetLineJoin) Name() OpName        { return OpSetLineJoin }
func (SetMiterLimit) Name() OpName      { return OpSetMiterLimit }
func (SetLineDash) Name() OpName        { return OpSetLineDash }
func (SetRenderingIntent) Name() OpName { return OpSetRenderingIntent }
func (SetFlatness) Name() OpName        { return OpSetFlatnessTolerance }
func (SetExtGState) Name() OpName       { return OpSetExtGState }
func (MoveTo) Name() OpName             { return OpMoveTo }
func (LineTo) Name() OpName             { return OpLineTo }
func (CurveTo) Name() OpName            { return OpCurveTo }
func (CurveToV) Name() OpName           { return OpCurveToV }
func (CurveToY) Name() OpName           { return OpCurveToY }
func (ClosePath) Name() OpName          { return OpClosePath }
func (Rectangle) Name() OpName          { return OpRectangle }
func (op PaintPath) Name() OpName       { return op.Op }
func (BeginText) Name() OpName          { return OpTextBegin }
func (EndText) Name() OpName            { return OpTextEnd }
func (SetCharSpacing) Name() OpName     { return OpTextSetCharacterSpacing }
func (SetWordSpacing) Name() OpName     { return OpTextSetWordSpacing }
func (SetHorizScaling) Name() OpName    { return OpTextSetHorizontalScaling }
func (SetLeading) Name() OpName         { return OpTextSetLeading }
func (SetFont) Name() OpName            { return OpTextSetFont }
func (SetRenderMode) Name() OpName      { return OpTextSetRenderingMode }
func (SetRise) Name() OpName            { return OpTextSetRise }
func (MoveText) Name() OpName           { return OpTextMoveOffset }
func (MoveTextSetLeading) Name() OpName { return OpTextMoveOffsetSetLeading }
func (SetTextMatrix) Name() OpName      { return OpTextSetMatrix }
func (NextLine) Name() OpName           { return OpTextNextLine }
func (ShowText) Name() OpName           { return OpTextShow }
func (ShowTextArray) Name() OpName      { return OpTextShowArray }
func (NextLineShowText) Name() OpName   { return OpTextShowMoveNextLine }
func (PaintShading) Name() OpName       { return OpShading }
func (PaintXObject) Name() OpName       { return OpXObject }
func (op InlineImage) Name() OpName     { return op.Op }
func (op MarkedContent) Name() OpName   { return op.Op }
func (EndMarkedContent) Name() OpName   { return OpEndMarkedContent }
func (BeginCompatibility) Name() OpName { return OpBeginCompatibility }
func (EndCompatibility) Name() OpName   { return OpEndCompatibility }

func (NextLineShowTextSpacing) Name() OpName { return OpTextShowMoveNextLineSetSpacing }
func (SetGlyphWidth) Name() OpName           { return OpType3SetWidthOnly }
func (SetGlyphWidthAndBBox) Name() OpName    { return OpType3SetWidthAndBoundingBox }

func (op Clip) Name() OpName {
	if op.EvenOdd {
		return OpClipEvenOdd
	}
	return OpClipNonZero
}

func (op SetColorSpace) Name() OpName {
	if op.Stroke {
		return OpSetStrokeColorSpace
	}
	return OpSetFillColorSpace
}

func (op SetColor) Name() OpName {
	switch {
	case op.Stroke && op.N:
		return OpSetStrokeColorN
	case op.Stroke:
		return OpSetStrokeColor
	case op.N:
		return OpSetFillColorN
	default:
		return OpSetFillColor
	}
}

func (op SetGray) Name() OpName {
	if op.Stroke {
		return OpSetStrokeGray
	}
	return OpSetFillGray
}

func (op SetRGB) Name() OpName {
	if op.Stroke {
		return OpSetStrokeRGB
	}
	return OpSetFillRGB
}

func (op SetCMYK) Name() OpName {
	if op.Stroke {
		return OpSetStrokeCMYK
	}
	return OpSetFillCMYK
}

func (PushState) isOp()               {}
func (PopState) isOp()                {}
func (Concat) isOp()                  {}
func (SetLineWidth) isOp()            {}
func (SetLineCap) isOp()              {}
func (SetLineJoin) isOp()             {}
func (SetMiterLimit) isOp()           {}
func (SetLineDash) isOp()             {}
func (SetRenderingIntent) isOp()      {}
func (SetFlatness) isOp()             {}
func (SetExtGState) isOp()            {}
func (MoveTo) isOp()                  {}
func (LineTo) isOp()                  {}
func (CurveTo) isOp()                 {}
func (CurveToV) isOp()                {}
func (CurveToY) isOp()                {}
func (ClosePath) isOp()               {}
func (Rectangle) isOp()               {}
func (PaintPath) isOp()               {}
func (Clip) isOp()                    {}
func (BeginText) isOp()               {}
func (EndText) isOp()                 {}
func (SetCharSpacing) isOp()          {}
func (SetWordSpacing) isOp()          {}
func (SetHorizScaling) isOp()         {}
func (SetLeading) isOp()              {}
func (SetFont) isOp()                 {}
func (SetRenderMode) isOp()           {}
func (SetRise) isOp()                 {}
func (MoveText) isOp()                {}
func (MoveTextSetLeading) isOp()      {}
func (SetTextMatrix) isOp()           {}
func (NextLine) isOp()                {}
func (ShowText) isOp()                {}
func (ShowTextArray) isOp()           {}
func (NextLineShowText) isOp()        {}
func (NextLineShowTextSpacing) isOp() {}
func (SetGlyphWidth) isOp()           {}
func (SetGlyphWidthAndBBox) isOp()    {}
func (SetColorSpace) isOp()           {}
func (SetColor) isOp()                {}
func (SetGray) isOp()                 {}
func (SetRGB) isOp()                  {}
func (SetCMYK) isOp()                 {}
func (PaintShading) isOp()            {}
func (PaintXObject) isOp()            {}
func (InlineImage) isOp()             {}
func (MarkedContent) isOp()           {}
func (EndMarkedContent) isOp()        {}
func (BeginCompatibility) isOp()      {}
func (EndCompatibility) isOp()        {}
