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
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/font"
	"seehuhn.de/go/pagetext/graphics"
)

// ExtGState holds the entries of a graphics state parameter dictionary which
// are relevant for text and path positions.  Only the parameters listed in
// Set are applied by the "gs" operator.
//
// See section 8.4.5 of PDF 32000-1:2008.
type ExtGState struct {
	Set Bits

	LineWidth       float64
	LineCap         graphics.LineCapStyle
	LineJoin        graphics.LineJoinStyle
	MiterLimit      float64
	Dash            graphics.DashPattern
	RenderingIntent pdf.Name
	Flatness        float64
	Font            font.Font
	FontSize        float64
	StrokeAlpha     float64
	FillAlpha       float64
	TextKnockout    bool
}

// Bits is a bit mask for the fields of the ExtGState struct.
type Bits uint16

// Possible values for Bits.
const (
	SetLineWidth Bits = 1 << iota
	SetLineCap
	SetLineJoin
	SetMiterLimit
	SetDash
	SetRenderingIntent
	SetFlatness
	SetFont
	SetStrokeAlpha
	SetFillAlpha
	SetTextKnockout
)

// ApplyTo copies the parameters listed in gs.Set into s.
func (gs *ExtGState) ApplyTo(s *graphics.State) {
	set := gs.Set
	if set&SetLineWidth != 0 {
		s.LineWidth = gs.LineWidth
	}
	if set&SetLineCap != 0 {
		s.LineCap = gs.LineCap
	}
	if set&SetLineJoin != 0 {
		s.LineJoin = gs.LineJoin
	}
	if set&SetMiterLimit != 0 {
		s.MiterLimit = gs.MiterLimit
	}
	if set&SetDash != 0 {
		s.Dash = gs.Dash.Clone()
	}
	if set&SetRenderingIntent != 0 {
		s.RenderingIntent = gs.RenderingIntent
	}
	if set&SetFlatness != 0 {
		s.Flatness = gs.Flatness
	}
	if set&SetFont != 0 {
		s.Text.Font = gs.Font
		s.Text.FontRef = ""
		s.Text.FontSize = gs.FontSize
	}
	if set&SetStrokeAlpha != 0 {
		s.StrokeAlpha = gs.StrokeAlpha
	}
	if set&SetFillAlpha != 0 {
		s.FillAlpha = gs.FillAlpha
	}
	if set&SetTextKnockout != 0 {
		s.Text.Knockout = gs.TextKnockout
	}
}
