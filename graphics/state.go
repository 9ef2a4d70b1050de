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

package graphics

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/font"
)

// State collects the graphical parameters of the PDF processor.
//
// See section 8.4 of PDF 32000-1:2008.
type State struct {
	// CTM is the "current transformation matrix", which maps positions from
	// user coordinates to device coordinates.
	CTM matrix.Matrix

	LineWidth  float64
	LineCap    LineCapStyle
	LineJoin   LineJoinStyle
	MiterLimit float64
	Dash       DashPattern

	StrokeColor Color
	FillColor   Color
	StrokeAlpha float64
	FillAlpha   float64

	// Clip is the bounding box of the current clipping path, in device
	// coordinates.  A nil value means that no clipping path has been set.
	Clip *rect.Rect

	RenderingIntent pdf.Name

	// Flatness is the precision with which curves are rendered
	// (default: 1).
	Flatness float64

	Text TextState
}

// TextState holds the text state parameters.
//
// See section 9.3 of PDF 32000-1:2008.
type TextState struct {
	Font     font.Font
	FontRef  pdf.Name // name of the font in the resource dictionary
	FontSize float64

	CharSpacing  float64 // Tc
	WordSpacing  float64 // Tw
	HorizScaling float64 // Th, 1 means 100%
	Leading      float64 // Tl
	Rise         float64 // Ts
	RenderMode   TextRenderingMode
	Knockout     bool

	// Tm and Tlm are reset at the start of each text object.
	Tm  matrix.Matrix
	Tlm matrix.Matrix
}

// NewState returns the graphics state at the start of a page.
func NewState() *State {
	return &State{
		CTM:             matrix.Identity,
		LineWidth:       1,
		LineCap:         LineCapButt,
		LineJoin:        LineJoinMiter,
		MiterLimit:      10,
		StrokeColor:     DeviceGray.InitialColor(),
		FillColor:       DeviceGray.InitialColor(),
		StrokeAlpha:     1,
		FillAlpha:       1,
		RenderingIntent: "RelativeColorimetric",
		Flatness:        1,
		Text: TextState{
			HorizScaling: 1,
			Knockout:     true,
			Tm:           matrix.Identity,
			Tlm:          matrix.Identity,
		},
	}
}

// Clone returns a deep copy of the graphics state.
// Fonts are immutable and are shared between the copies.
func (s *State) Clone() *State {
	res := *s
	res.Dash = s.Dash.Clone()
	res.StrokeColor = s.StrokeColor.Clone()
	res.FillColor = s.FillColor.Clone()
	if s.Clip != nil {
		clip := *s.Clip
		res.Clip = &clip
	}
	return &res
}

// LineCapStyle is the style of the end of a line.
type LineCapStyle uint8

// Possible values for LineCapStyle.
// See section 8.4.3.3 of PDF 32000-1:2008.
const (
	LineCapButt   LineCapStyle = 0
	LineCapRound  LineCapStyle = 1
	LineCapSquare LineCapStyle = 2
)

// LineJoinStyle is the style of the corner of a line.
type LineJoinStyle uint8

// Possible values for LineJoinStyle.
const (
	LineJoinMiter LineJoinStyle = 0
	LineJoinRound LineJoinStyle = 1
	LineJoinBevel LineJoinStyle = 2
)

// TextRenderingMode is the rendering mode for text.
type TextRenderingMode uint8

// Possible values for TextRenderingMode.
// See section 9.3.6 of ISO 32000-2:2020.
const (
	TextRenderingModeFill TextRenderingMode = iota
	TextRenderingModeStroke
	TextRenderingModeFillStroke
	TextRenderingModeInvisible
	TextRenderingModeFillClip
	TextRenderingModeStrokeClip
	TextRenderingModeFillStrokeClip
	TextRenderingModeClip
)

// Visible reports whether glyphs drawn in this mode leave marks on the page.
func (m TextRenderingMode) Visible() bool {
	return m != TextRenderingModeInvisible && m != TextRenderingModeClip
}
