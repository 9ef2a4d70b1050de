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
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pagetext/graphics"
)

var approx = cmpopts.EquateApprox(1e-9, 1e-9)

func TestTextAdvance(t *testing.T) {
	// All glyphs of the test font are 500 units wide, so every glyph
	// advances by 5 units at size 10.
	cases := []struct {
		stream string
		want   []float64 // x coordinates of the glyph origins
	}{
		{"BT /F1 10 Tf 100 200 Td (ABC) Tj ET", []float64{100, 105, 110}},
		{"BT /F1 10 Tf 1 Tc 100 200 Td (ABC) Tj ET", []float64{100, 106, 112}},
		{"BT /F1 10 Tf 3 Tw 100 200 Td (A B) Tj ET", []float64{100, 105, 113}},
		{"BT /F1 10 Tf 50 Tz 100 200 Td (ABC) Tj ET", []float64{100, 102.5, 105}},
		{"BT /F1 10 Tf 100 200 Td [(A) -500 (B) 250 (C)] TJ ET", []float64{100, 110, 112.5}},
		{"BT /F1 10 Tf 50 Tz 100 200 Td [(A) -1000 (B)] TJ ET", []float64{100, 107.5}},
		{"2 0 0 2 0 0 cm BT /F1 10 Tf 50 100 Td (AB) Tj ET", []float64{100, 110}},
	}
	for i, c := range cases {
		t.Run(fmt.Sprintf("stream%d", i), func(t *testing.T) {
			page := run(t, testResources(), nil, c.stream)
			var got []float64
			for _, l := range page.Letters {
				got = append(got, l.StartBaseline.X)
				if l.StartBaseline.Y != 200 {
					t.Errorf("%q: baseline y=%g, want 200", l.Text, l.StartBaseline.Y)
				}
			}
			if d := cmp.Diff(c.want, got, approx); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestLetterFields(t *testing.T) {
	page := run(t, testResources(), nil,
		"1 0 0 rg 2 0 0 2 0 0 cm BT /F1 10 Tf 10 20 Td 2 Ts (A) Tj ET")
	if len(page.Letters) != 1 {
		t.Fatalf("got %d letters, want 1", len(page.Letters))
	}
	l := page.Letters[0]

	want := Letter{
		Text: "A",
		Quad: graphics.Quad{
			BottomLeft:  vec.Vec2{X: 20, Y: 40},
			BottomRight: vec.Vec2{X: 30, Y: 40},
			TopLeft:     vec.Vec2{X: 20, Y: 60},
			TopRight:    vec.Vec2{X: 30, Y: 60},
		},
		Orientation:   graphics.Horizontal,
		StartBaseline: vec.Vec2{X: 20, Y: 44},
		EndBaseline:   vec.Vec2{X: 30, Y: 44},
		Font:          "F1",
		FontName:      "Test-Regular",
		FontSize:      10,
		PointSize:     20,
		Color:         graphics.RGB(1, 0, 0),
		RenderMode:    graphics.TextRenderingModeFill,
	}
	if d := cmp.Diff(want, l, approx); d != "" {
		t.Errorf("letter (-want +got):\n%s", d)
	}
}

func TestRotatedText(t *testing.T) {
	cases := []struct {
		tm   string
		want graphics.Orientation
		end  vec.Vec2
	}{
		{"1 0 0 1 100 100", graphics.Horizontal, vec.Vec2{X: 105, Y: 100}},
		{"0 1 -1 0 100 100", graphics.Rotate270, vec.Vec2{X: 100, Y: 105}},
		{"-1 0 0 -1 100 100", graphics.Rotate180, vec.Vec2{X: 95, Y: 100}},
		{"0 -1 1 0 100 100", graphics.Rotate90, vec.Vec2{X: 100, Y: 95}},
	}
	for _, c := range cases {
		t.Run(c.want.String(), func(t *testing.T) {
			page := run(t, testResources(), nil, "BT /F1 10 Tf "+c.tm+" Tm (A) Tj ET")
			if len(page.Letters) != 1 {
				t.Fatalf("got %d letters", len(page.Letters))
			}
			l := page.Letters[0]
			if l.Orientation != c.want {
				t.Errorf("orientation: got %v, want %v", l.Orientation, c.want)
			}
			if d := cmp.Diff(c.end, l.EndBaseline, approx); d != "" {
				t.Errorf("end of baseline: %s", d)
			}
			if w := l.Quad.Width(l.Orientation); !approxEqual(w, 5) {
				t.Errorf("width: got %g, want 5", w)
			}
			if h := l.Quad.Height(l.Orientation); !approxEqual(h, 10) {
				t.Errorf("height: got %g, want 10", h)
			}
		})
	}
}

func TestNextLine(t *testing.T) {
	stream := `BT /F1 10 Tf 12 TL 100 700 Td (A) Tj T* (B) Tj (C) ' 0 -20 TD (D) Tj
		5 1 (E F) " ET`
	page := run(t, testResources(), nil, stream)

	type pos struct {
		Text string
		X, Y float64
	}
	var got []pos
	for _, l := range page.Letters {
		got = append(got, pos{l.Text, l.StartBaseline.X, l.StartBaseline.Y})
	}
	want := []pos{
		{"A", 100, 700},
		{"B", 100, 688},
		{"C", 100, 676},
		{"D", 100, 656},
		{"E", 100, 636},
		{" ", 106, 636},
		{"F", 117, 636},
	}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Error(d)
	}
}

func TestInvisibleText(t *testing.T) {
	stream := "BT /F1 10 Tf (A) Tj 3 Tr (B) Tj 7 Tr (C) Tj 1 Tr (D) Tj ET"

	page := run(t, testResources(), nil, stream)
	if got := letterText(page); got != "AD" {
		t.Errorf("got %q, want %q", got, "AD")
	}

	page = run(t, testResources(), &Options{IncludeInvisible: true}, stream)
	if got := letterText(page); got != "ABCD" {
		t.Errorf("with invisible text: got %q, want %q", got, "ABCD")
	}
}

func TestStrokedTextColor(t *testing.T) {
	page := run(t, testResources(), nil, "0 0 1 RG 0 1 0 rg BT /F1 10 Tf 1 Tr (A) Tj 0 Tr (B) Tj ET")
	if len(page.Letters) != 2 {
		t.Fatalf("got %d letters", len(page.Letters))
	}
	if d := cmp.Diff(graphics.RGB(0, 0, 1), page.Letters[0].Color); d != "" {
		t.Errorf("stroked text: %s", d)
	}
	if d := cmp.Diff(graphics.RGB(0, 1, 0), page.Letters[1].Color); d != "" {
		t.Errorf("filled text: %s", d)
	}
}

func TestDegenerateGlyph(t *testing.T) {
	page := run(t, testResources(), nil, "BT /F1 10 Tf 1 0 0 0 0 0 Tm (AB) Tj ET")
	if len(page.Letters) != 2 {
		t.Fatalf("got %d letters, want 2", len(page.Letters))
	}
	for _, l := range page.Letters {
		if a := l.Quad.Area(); a != 0 {
			t.Errorf("%q: area %g, want 0", l.Text, a)
		}
	}
	checkWarnings(t, "degenerate", page, []error{ErrGeometryDegenerate})
}

func TestTextWithoutFont(t *testing.T) {
	page := run(t, testResources(), nil, "BT (A) Tj ET")
	if len(page.Letters) != 0 {
		t.Errorf("got %d letters, want 0", len(page.Letters))
	}
	if len(page.Warnings) != 1 || !errors.Is(page.Warnings[0], ErrMissingResource) {
		t.Errorf("unexpected warnings %v", page.Warnings)
	}
}

func letterText(page *Page) string {
	var s string
	for _, l := range page.Letters {
		s += l.Text
	}
	return s
}

func approxEqual(a, b float64) bool {
	return cmp.Equal(a, b, approx)
}
