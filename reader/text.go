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

package reader

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/graphics"
)

// showText shows the glyphs of a string and advances the text matrix.
//
// See section 9.4.4 of PDF 32000-1:2008.
func (r *Reader) showText(name content.OpName, s *graphics.State, str pdf.String) {
	t := &s.Text
	if t.Font == nil {
		r.warn(name, fmt.Errorf("no font selected (%q): %w", t.FontRef, ErrMissingResource))
		return
	}

	descent, ascent := t.Font.Extent()
	bottom, top := descent/1000, ascent/1000

	record := t.RenderMode.Visible() || r.opt.IncludeInvisible
	col := s.FillColor
	if t.RenderMode == graphics.TextRenderingModeStroke ||
		t.RenderMode == graphics.TextRenderingModeStrokeClip {
		col = s.StrokeColor
	}

	degenerate := false
	for _, g := range t.Font.Decode(str) {
		w := g.Width / 1000

		if record {
			trm := renderingMatrix(s)
			if graphics.Det(trm) == 0 {
				degenerate = true
			}
			quad, o := graphics.GlyphQuad(trm, w, bottom, top)
			r.page.Letters = append(r.page.Letters, Letter{
				Text:          g.Text,
				Quad:          quad,
				Orientation:   o,
				StartBaseline: graphics.Point(trm, 0, 0),
				EndBaseline:   graphics.Point(trm, w, 0),
				Font:          t.FontRef,
				FontName:      t.Font.PostScriptName(),
				FontSize:      t.FontSize,
				PointSize:     pointSize(s),
				Color:         col.Clone(),
				RenderMode:    t.RenderMode,
			})
		}

		tx := w*t.FontSize + t.CharSpacing
		if g.IsSpace {
			tx += t.WordSpacing
		}
		t.Tm = matrix.Translate(tx*t.HorizScaling, 0).Mul(t.Tm)
	}

	if degenerate {
		r.warn(name, ErrGeometryDegenerate)
	}
}

// renderingMatrix returns the matrix which maps glyph space, scaled to
// text space units, to default user space.
func renderingMatrix(s *graphics.State) matrix.Matrix {
	t := &s.Text
	M := matrix.Matrix{t.FontSize * t.HorizScaling, 0, 0, t.FontSize, 0, t.Rise}
	return M.Mul(t.Tm).Mul(s.CTM)
}

// pointSize returns the font size in default user space units, measured
// along the vertical axis of the text.
func pointSize(s *graphics.State) float64 {
	M := s.Text.Tm.Mul(s.CTM)
	return math.Abs(s.Text.FontSize) * math.Hypot(M[2], M[3])
}
