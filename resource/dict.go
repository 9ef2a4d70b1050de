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

package resource

import (
	"fmt"
	"log/slog"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/font"
	"seehuhn.de/go/pagetext/graphics"
)

// Options controls how [FromDict] converts a resource dictionary.
type Options struct {
	// Metrics is used for fonts which are not embedded, or which lack a
	// /Widths array.  If this is nil, such fonts get zero widths.
	Metrics font.MetricsProvider

	// StreamData returns the decoded data of a stream.  It is used for form
	// XObjects and for /ToUnicode CMaps.  If this is nil, form XObjects are
	// skipped and glyph text is derived from glyph names only.
	StreamData func(stream *pdf.Stream) ([]byte, error)

	// Logger receives messages about entries which are skipped.
	// If this is nil, no messages are logged.
	Logger *slog.Logger
}

// maxFormNesting limits the depth of nested form resource dictionaries.
const maxFormNesting = 32

// FromDict converts a PDF resource dictionary into a [Map].
//
// Indirect references are resolved using r.  If r is nil, all objects must
// already be resolved, and references are treated as missing values.
// Entries which cannot be interpreted are skipped, so that the remaining
// resources can still be used.
func FromDict(r pdf.Getter, res pdf.Dict, opt *Options) *Map {
	if opt == nil {
		opt = &Options{}
	}
	c := &converter{r: getter(r), opt: opt, logger: opt.Logger}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c.convert(res, 0)
}

type converter struct {
	r      pdf.Getter
	opt    *Options
	logger *slog.Logger
}

// noFile is used in place of a missing reader.
type noFile struct{}

func (noFile) GetMeta() *pdf.MetaInfo { return nil }

func (noFile) Get(ref pdf.Reference, _ bool) (pdf.Native, error) {
	return nil, fmt.Errorf("cannot resolve %s without a reader", ref)
}

func getter(r pdf.Getter) pdf.Getter {
	if r == nil {
		return noFile{}
	}
	return r
}

func (c *converter) convert(res pdf.Dict, depth int) *Map {
	m := &Map{}

	if fonts, _ := pdf.GetDict(c.r, res["Font"]); fonts != nil {
		for name, obj := range fonts {
			F, err := c.font(obj)
			if err != nil {
				c.skip("Font", name, err)
				continue // permissive
			}
			if m.Fonts == nil {
				m.Fonts = make(map[pdf.Name]font.Font)
			}
			m.Fonts[name] = F
		}
	}

	if dicts, _ := pdf.GetDict(c.r, res["ExtGState"]); dicts != nil {
		for name, obj := range dicts {
			gs, err := c.extGState(obj)
			if err != nil {
				c.skip("ExtGState", name, err)
				continue
			}
			if m.ExtGStates == nil {
				m.ExtGStates = make(map[pdf.Name]*ExtGState)
			}
			m.ExtGStates[name] = gs
		}
	}

	if spaces, _ := pdf.GetDict(c.r, res["ColorSpace"]); spaces != nil {
		for name, obj := range spaces {
			cs, err := ParseColorSpace(c.r, obj)
			if err != nil {
				c.skip("ColorSpace", name, err)
				continue
			}
			if m.ColorSpaces == nil {
				m.ColorSpaces = make(map[pdf.Name]graphics.ColorSpace)
			}
			m.ColorSpaces[name] = cs
		}
	}

	if xobjects, _ := pdf.GetDict(c.r, res["XObject"]); xobjects != nil {
		for name, obj := range xobjects {
			x, err := c.xObject(obj, depth)
			if err != nil {
				c.skip("XObject", name, err)
				continue
			}
			if x == nil {
				continue
			}
			if m.XObjects == nil {
				m.XObjects = make(map[pdf.Name]XObject)
			}
			m.XObjects[name] = x
		}
	}

	return m
}

func (c *converter) skip(category string, name pdf.Name, err error) {
	c.logger.Warn("skipping resource",
		slog.String("category", category),
		slog.String("name", string(name)),
		slog.Any("error", err))
}

// font converts a simple font dictionary.
func (c *converter) font(obj pdf.Object) (font.Font, error) {
	dict, err := pdf.GetDict(c.r, obj)
	if err != nil {
		return nil, err
	} else if dict == nil {
		return nil, fmt.Errorf("missing font dictionary")
	}

	subtype, _ := pdf.GetName(c.r, dict["Subtype"])
	switch subtype {
	case "Type1", "MMType1", "TrueType", "Type3":
		// pass
	default:
		return nil, fmt.Errorf("unsupported font type %q", subtype)
	}

	baseFont, _ := pdf.GetName(c.r, dict["BaseFont"])
	info := &font.SimpleInfo{
		PostScriptName: stripSubsetTag(string(baseFont)),
	}
	if c.opt.Metrics != nil && baseFont != "" {
		if m, err := c.opt.Metrics.Metrics(string(baseFont)); err == nil {
			info.Metrics = m
		}
	}

	builtin := font.StandardEncoding
	if info.Metrics != nil {
		builtin = info.Metrics.Encoding
	}
	encObj, _ := pdf.Resolve(c.r, dict["Encoding"])
	enc, err := font.ParseEncoding(c.resolveEncoding(encObj), builtin)
	if err != nil {
		c.logger.Debug("using built-in encoding",
			slog.String("font", string(baseFont)),
			slog.Any("error", err))
	}
	info.Encoding = &enc

	if stm, _ := pdf.GetStream(c.r, dict["ToUnicode"]); stm != nil && c.opt.StreamData != nil {
		info.ToUnicode, err = c.toUnicode(stm)
		if err != nil {
			c.logger.Debug("ignoring ToUnicode cmap",
				slog.String("font", string(baseFont)),
				slog.Any("error", err))
		}
	}

	// Type 3 glyph space is mapped to text space by /FontMatrix.  Other
	// simple fonts use 1/1000.
	scale := 1.0
	if subtype == "Type3" {
		fm, ok := c.getMatrix(dict["FontMatrix"])
		if ok && fm[0] != 0 {
			scale = fm[0] * 1000
		}
	}

	if fc, err := pdf.GetInteger(c.r, dict["FirstChar"]); err == nil {
		info.FirstChar = int(fc)
	}
	if widths, _ := pdf.GetArray(c.r, dict["Widths"]); widths != nil {
		info.Widths = make([]float64, len(widths))
		for i, w := range widths {
			x, _ := c.getNumber(w)
			info.Widths[i] = x * scale
		}
	}
	if fd, _ := pdf.GetDict(c.r, dict["FontDescriptor"]); fd != nil {
		info.MissingWidth, _ = c.getNumber(fd["MissingWidth"])
		info.MissingWidth *= scale
		info.Ascent, _ = c.getNumber(fd["Ascent"])
		info.Descent, _ = c.getNumber(fd["Descent"])
	}

	return font.NewSimple(info), nil
}

// resolveEncoding resolves the entries of an encoding dictionary.
func (c *converter) resolveEncoding(obj pdf.Object) pdf.Object {
	dict, ok := obj.(pdf.Dict)
	if !ok {
		return obj
	}
	res := make(pdf.Dict, len(dict))
	for key, v := range dict {
		res[key], _ = pdf.Resolve(c.r, v)
	}
	return res
}

func (c *converter) extGState(obj pdf.Object) (*ExtGState, error) {
	dict, err := pdf.GetDict(c.r, obj)
	if err != nil {
		return nil, err
	} else if dict == nil {
		return nil, fmt.Errorf("missing graphics state dictionary")
	}

	gs := &ExtGState{}
	for key, v := range dict {
		v, err := pdf.Resolve(c.r, v)
		if err != nil {
			c.logger.Debug("ignoring graphics state entry",
				slog.String("key", string(key)),
				slog.Any("error", err))
			continue
		}
		switch key {
		case "LW":
			if x, ok := c.getNumber(v); ok {
				gs.LineWidth = x
				gs.Set |= SetLineWidth
			}
		case "LC":
			if x, ok := v.(pdf.Integer); ok && x >= 0 && x <= 2 {
				gs.LineCap = graphics.LineCapStyle(x)
				gs.Set |= SetLineCap
			}
		case "LJ":
			if x, ok := v.(pdf.Integer); ok && x >= 0 && x <= 2 {
				gs.LineJoin = graphics.LineJoinStyle(x)
				gs.Set |= SetLineJoin
			}
		case "ML":
			if x, ok := c.getNumber(v); ok {
				gs.MiterLimit = x
				gs.Set |= SetMiterLimit
			}
		case "D":
			dash, err := c.parseDash(v)
			if err != nil {
				return nil, err
			}
			gs.Dash = dash
			gs.Set |= SetDash
		case "RI":
			if x, ok := v.(pdf.Name); ok {
				gs.RenderingIntent = x
				gs.Set |= SetRenderingIntent
			}
		case "FL":
			if x, ok := c.getNumber(v); ok {
				gs.Flatness = x
				gs.Set |= SetFlatness
			}
		case "Font":
			a, ok := v.(pdf.Array)
			if !ok || len(a) != 2 {
				return nil, fmt.Errorf("invalid /Font entry %v", v)
			}
			F, err := c.font(a[0])
			if err != nil {
				return nil, err
			}
			size, ok := c.getNumber(a[1])
			if !ok {
				return nil, fmt.Errorf("invalid font size %v", a[1])
			}
			gs.Font = F
			gs.FontSize = size
			gs.Set |= SetFont
		case "CA":
			if x, ok := c.getNumber(v); ok {
				gs.StrokeAlpha = x
				gs.Set |= SetStrokeAlpha
			}
		case "ca":
			if x, ok := c.getNumber(v); ok {
				gs.FillAlpha = x
				gs.Set |= SetFillAlpha
			}
		case "TK":
			if x, ok := v.(pdf.Boolean); ok {
				gs.TextKnockout = bool(x)
				gs.Set |= SetTextKnockout
			}
		}
	}
	return gs, nil
}

func (c *converter) parseDash(obj pdf.Object) (graphics.DashPattern, error) {
	a, _ := pdf.GetArray(c.r, obj)
	if len(a) != 2 {
		return graphics.DashPattern{}, fmt.Errorf("invalid dash pattern %v", obj)
	}
	dashes, err := pdf.GetFloatArray(c.r, a[0])
	if err != nil {
		return graphics.DashPattern{}, fmt.Errorf("invalid dash array: %w", err)
	}
	phase, ok := c.getNumber(a[1])
	if !ok {
		return graphics.DashPattern{}, fmt.Errorf("invalid dash phase %v", a[1])
	}
	if dashes == nil {
		dashes = []float64{}
	}
	return graphics.NewDashPattern(dashes, phase)
}

func (c *converter) xObject(obj pdf.Object, depth int) (XObject, error) {
	stm, err := pdf.GetStream(c.r, obj)
	if err != nil {
		return nil, err
	} else if stm == nil {
		return nil, fmt.Errorf("missing XObject stream")
	}

	subtype, _ := pdf.GetName(c.r, stm.Dict["Subtype"])
	switch subtype {
	case "Image":
		w, _ := pdf.GetInteger(c.r, stm.Dict["Width"])
		h, _ := pdf.GetInteger(c.r, stm.Dict["Height"])
		return &Image{Width: int(w), Height: int(h)}, nil

	case "Form":
		if c.opt.StreamData == nil {
			return nil, nil
		}
		if depth >= maxFormNesting {
			return nil, fmt.Errorf("form XObjects nested too deeply")
		}

		form := &Form{Matrix: matrix.Identity}
		if m, ok := c.getMatrix(stm.Dict["Matrix"]); ok {
			form.Matrix = m
		}
		bbox, ok := c.getRect(stm.Dict["BBox"])
		if !ok {
			return nil, fmt.Errorf("form XObject without /BBox")
		}
		form.BBox = bbox

		data, err := c.opt.StreamData(stm)
		if err != nil {
			return nil, err
		}
		ops, err := content.Parse(data)
		if err != nil {
			// keep the operators before the error
			c.logger.Warn("truncated form content", slog.Any("error", err))
		}
		form.Content = ops

		if res, _ := pdf.GetDict(c.r, stm.Dict["Resources"]); res != nil {
			form.Resources = c.convert(res, depth+1)
		}
		return form, nil

	default:
		// PostScript XObjects are ignored
		return nil, nil
	}
}

func (c *converter) getNumber(obj pdf.Object) (float64, bool) {
	obj, err := pdf.Resolve(c.r, obj)
	if err != nil || obj == nil {
		return 0, false
	}
	x, err := pdf.GetNumber(c.r, obj)
	return float64(x), err == nil
}

func (c *converter) getMatrix(obj pdf.Object) (matrix.Matrix, bool) {
	m, err := pdf.GetMatrix(c.r, obj)
	return m, err == nil
}

func (c *converter) getRect(obj pdf.Object) (rect.Rect, bool) {
	r, err := pdf.GetRectangle(c.r, obj)
	if err != nil || r == nil {
		return rect.Rect{}, false
	}
	return rect.Rect{LLx: r.LLx, LLy: r.LLy, URx: r.URx, URy: r.URy}, true
}

func stripSubsetTag(name string) string {
	if len(name) > 7 && name[6] == '+' {
		for _, c := range name[:6] {
			if c < 'A' || c > 'Z' {
				return name
			}
		}
		return name[7:]
	}
	return name
}
