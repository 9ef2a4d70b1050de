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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/font"
	"seehuhn.de/go/pagetext/graphics"
	"seehuhn.de/go/pagetext/resource"
)

// testFont is a font where every glyph has the same width.  The text of a
// glyph is the byte value of the character code.
type testFont float64

func (testFont) PostScriptName() string { return "Test-Regular" }

func (f testFont) Decode(s pdf.String) []font.Glyph {
	res := make([]font.Glyph, len(s))
	for i, c := range s {
		res[i] = font.Glyph{
			Code:    uint32(c),
			Text:    string(rune(c)),
			Width:   float64(f),
			IsSpace: c == ' ',
		}
	}
	return res
}

func (testFont) Extent() (descent, ascent float64) { return -200, 800 }

func testResources() *resource.Map {
	return &resource.Map{
		Fonts: map[pdf.Name]font.Font{"F1": testFont(500)},
	}
}

func parse(t *testing.T, stream string) []content.Operator {
	t.Helper()
	ops, err := content.Parse([]byte(stream))
	if err != nil {
		t.Fatal(err)
	}
	return ops
}

func run(t *testing.T, res resource.Store, opt *Options, stream string) *Page {
	t.Helper()
	return New(res, opt).Run(parse(t, stream))
}

// TestConcatOrder checks that "cm" premultiplies the CTM, so that the
// operand is applied before the previous transformation.
func TestConcatOrder(t *testing.T) {
	cases := []struct {
		stream string
		want   matrix.Matrix
	}{
		{"2 0 0 2 0 0 cm 1 0 0 1 10 0 cm", matrix.Matrix{2, 0, 0, 2, 20, 0}},
		{"1 0 0 1 10 0 cm 2 0 0 2 0 0 cm", matrix.Matrix{2, 0, 0, 2, 10, 0}},
		{"0 1 -1 0 0 0 cm 1 0 0 1 5 0 cm", matrix.Matrix{0, 1, -1, 0, 0, 5}},
	}
	for _, c := range cases {
		r := New(nil, nil)
		for _, op := range parse(t, c.stream) {
			r.Step(op)
		}
		if got := r.State().CTM; got != c.want {
			t.Errorf("%s: got %v, want %v", c.stream, got, c.want)
		}
	}
}

func TestSaveRestore(t *testing.T) {
	r := New(testResources(), nil)
	prefix := parse(t, "0.5 w 1 J [3 1] 2 d 1 0 0 rg 0 0 1 RG /F1 12 Tf 2 Tc 0 0 100 100 re W n")
	for _, op := range prefix {
		r.Step(op)
	}
	before := r.State().Clone()

	body := parse(t, `q
		2 0 0 2 5 5 cm 4 w 2 j [] 0 d 0 g /DeviceCMYK CS
		BT /F1 24 Tf 3 Tc 90 Tz 12 TL 5 Ts 3 Tr 1 2 Td (x) Tj ET
		10 10 20 20 re W n
		Q`)
	for _, op := range body {
		r.Step(op)
	}

	if d := cmp.Diff(before, r.State()); d != "" {
		t.Errorf("state not restored (-want +got):\n%s", d)
	}

	page := r.Finish()
	if page.StackDepth != 1 {
		t.Errorf("stack depth %d, want 1", page.StackDepth)
	}
	if len(page.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", page.Warnings)
	}
}

// TestSnapshotIndependence checks that changes to compound fields after
// "q" do not leak into the saved state.
func TestSnapshotIndependence(t *testing.T) {
	r := New(nil, nil)
	for _, op := range parse(t, "[4 2] 0 d 0 0 10 10 re W n q 5 5 20 20 re W n") {
		r.Step(op)
	}
	s := r.State()
	s.Dash.Array[0] = 99
	s.Clip.LLx = -1

	r.Step(content.Operator{Name: "Q"})
	s = r.State()
	if s.Dash.Array[0] != 4 {
		t.Errorf("dash array modified through snapshot: %v", s.Dash)
	}
	want := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10}
	if *s.Clip != want {
		t.Errorf("clip: got %v, want %v", *s.Clip, want)
	}
}

func TestMalformedOperator(t *testing.T) {
	page := run(t, testResources(), nil, "BT /F1 10 Tf (AB) Tj Tj (CD) Tj ET")

	var text string
	for _, l := range page.Letters {
		text += l.Text
	}
	if text != "ABCD" {
		t.Errorf("got text %q, want %q", text, "ABCD")
	}

	if len(page.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(page.Warnings), page.Warnings)
	}
	err := page.Warnings[0]
	if !errors.Is(err, ErrMalformedOperator) {
		t.Errorf("got %v, want ErrMalformedOperator", err)
	}
	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("warning has type %T", err)
	}
	if opErr.Index != 3 || opErr.Op != content.OpTextShow {
		t.Errorf("got operator %d %q, want 3 \"Tj\"", opErr.Index, opErr.Op)
	}
}

func TestStackErrors(t *testing.T) {
	cases := []struct {
		stream string
		depth  int
		want   []error
	}{
		{"q Q", 1, nil},
		{"Q", 1, []error{ErrStackUnderflow}},
		{"q Q Q q Q", 1, []error{ErrStackUnderflow}},
		{"q q Q", 2, []error{ErrUnbalancedStack}},
	}
	for _, c := range cases {
		page := run(t, nil, nil, c.stream)
		if page.StackDepth != c.depth {
			t.Errorf("%s: depth %d, want %d", c.stream, page.StackDepth, c.depth)
		}
		checkWarnings(t, c.stream, page, c.want)
	}
}

func TestUnsupportedOperator(t *testing.T) {
	page := run(t, nil, nil, "1 2 foo BX 3 bar BX baz EX qux EX quux")
	checkWarnings(t, "compat", page, []error{ErrUnsupportedOperator, ErrUnsupportedOperator})

	var names []content.OpName
	for _, w := range page.Warnings {
		names = append(names, w.(*OpError).Op)
	}
	if d := cmp.Diff([]content.OpName{"foo", "quux"}, names); d != "" {
		t.Error(d)
	}
}

func TestMissingResources(t *testing.T) {
	stream := "/GS1 gs /CS1 cs /Fx Do BT /F9 12 Tf (A) Tj ET"
	page := run(t, testResources(), nil, stream)
	checkWarnings(t, stream, page, []error{
		ErrMissingResource, ErrMissingResource, ErrMissingResource,
		ErrMissingResource, ErrMissingResource,
	})
	if len(page.Letters) != 0 {
		t.Errorf("got %d letters, want 0", len(page.Letters))
	}
}

func TestExtGState(t *testing.T) {
	res := testResources()
	res.ExtGStates = map[pdf.Name]*resource.ExtGState{
		"GS1": {
			Set:       resource.SetLineWidth | resource.SetDash | resource.SetFillAlpha,
			LineWidth: 7,
			Dash:      graphics.DashPattern{Array: []float64{2}, Phase: 1},
			FillAlpha: 0.5,
		},
	}
	r := New(res, nil)
	for _, op := range parse(t, "3 w /GS1 gs") {
		r.Step(op)
	}
	s := r.State()
	if s.LineWidth != 7 || s.FillAlpha != 0.5 || s.Dash.String() != "[2] 1" {
		t.Errorf("got w=%g ca=%g d=%s", s.LineWidth, s.FillAlpha, s.Dash)
	}
}

func TestColorOperators(t *testing.T) {
	res := testResources()
	res.ColorSpaces = map[pdf.Name]graphics.ColorSpace{
		"Spot": {Family: "Separation", N: 1},
	}

	r := New(res, nil)
	for _, op := range parse(t, "0.1 0.2 0.3 0.4 K /Spot cs") {
		r.Step(op)
	}
	s := r.State()
	if d := cmp.Diff(graphics.CMYK(0.1, 0.2, 0.3, 0.4), s.StrokeColor); d != "" {
		t.Errorf("stroke color: %s", d)
	}
	want := graphics.Color{Space: graphics.ColorSpace{Family: "Separation", N: 1}, Values: []float64{1}}
	if d := cmp.Diff(want, s.FillColor); d != "" {
		t.Errorf("initial fill color: %s", d)
	}

	r.Step(content.Operator{Name: "sc", Args: []pdf.Object{pdf.Real(0.5)}})
	if v := r.State().FillColor.Values; len(v) != 1 || v[0] != 0.5 {
		t.Errorf("fill color values: %v", v)
	}

	// wrong number of components
	r.Step(content.Operator{Name: "sc", Args: []pdf.Object{pdf.Real(0.5), pdf.Real(0.5)}})
	page := r.Finish()
	checkWarnings(t, "sc", page, []error{ErrMalformedOperator})
}

func checkWarnings(t *testing.T, label string, page *Page, want []error) {
	t.Helper()
	if len(page.Warnings) != len(want) {
		t.Errorf("%s: got %d warnings, want %d: %v", label, len(page.Warnings), len(want), page.Warnings)
		return
	}
	for i, err := range page.Warnings {
		if !errors.Is(err, want[i]) {
			t.Errorf("%s: warning %d: got %v, want %v", label, i, err, want[i])
		}
	}
}
