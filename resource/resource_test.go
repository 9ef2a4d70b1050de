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
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/font/standard"
	"seehuhn.de/go/pagetext/graphics"
)

func TestMapNotFound(t *testing.T) {
	m := &Map{}
	if _, err := m.Font("F1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Font: got %v", err)
	}
	if _, err := m.ExtGState("GS1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ExtGState: got %v", err)
	}
	if _, err := m.ColorSpace("CS1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ColorSpace: got %v", err)
	}
	if _, err := m.XObject("X1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("XObject: got %v", err)
	}
}

func TestFromDictFonts(t *testing.T) {
	metrics, err := standard.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	res := pdf.Dict{
		"Font": pdf.Dict{
			"F1": pdf.Dict{
				"Type":     pdf.Name("Font"),
				"Subtype":  pdf.Name("Type1"),
				"BaseFont": pdf.Name("Courier"),
			},
			"F2": pdf.Dict{
				"Type":      pdf.Name("Font"),
				"Subtype":   pdf.Name("TrueType"),
				"BaseFont":  pdf.Name("ABCDEF+Arial,Bold"),
				"FirstChar": pdf.Integer(65),
				"Widths":    pdf.Array{pdf.Integer(700), pdf.Real(650.5)},
				"Encoding":  pdf.Name("WinAnsiEncoding"),
				"FontDescriptor": pdf.Dict{
					"Ascent":       pdf.Integer(900),
					"Descent":      pdf.Integer(-200),
					"MissingWidth": pdf.Integer(333),
				},
			},
			"F3": pdf.Dict{
				"Subtype":  pdf.Name("Type0"),
				"BaseFont": pdf.Name("Whatever"),
			},
		},
	}
	m := FromDict(nil, res, &Options{Metrics: metrics})

	F1, err := m.Font("F1")
	if err != nil {
		t.Fatal(err)
	}
	if F1.PostScriptName() != "Courier" {
		t.Errorf("wrong name %q", F1.PostScriptName())
	}
	for _, g := range F1.Decode(pdf.String("Hi!")) {
		if g.Width != 600 {
			t.Errorf("%q: width %g, want 600", g.Text, g.Width)
		}
	}

	F2, err := m.Font("F2")
	if err != nil {
		t.Fatal(err)
	}
	if F2.PostScriptName() != "Arial,Bold" {
		t.Errorf("wrong name %q", F2.PostScriptName())
	}
	gg := F2.Decode(pdf.String("ABC\x80"))
	var widths []float64
	var text string
	for _, g := range gg {
		widths = append(widths, g.Width)
		text += g.Text
	}
	if d := cmp.Diff([]float64{700, 650.5, 333, 333}, widths); d != "" {
		t.Error(d)
	}
	if text != "ABC€" {
		t.Errorf("got text %q", text)
	}
	if descent, ascent := F2.Extent(); descent != -200 || ascent != 900 {
		t.Errorf("extent [%g, %g]", descent, ascent)
	}

	if _, err := m.Font("F3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("composite font was not skipped: %v", err)
	}
}

func TestExtGState(t *testing.T) {
	res := pdf.Dict{
		"ExtGState": pdf.Dict{
			"GS1": pdf.Dict{
				"LW": pdf.Integer(3),
				"D":  pdf.Array{pdf.Array{pdf.Integer(2), pdf.Integer(1)}, pdf.Integer(0)},
				"CA": pdf.Real(0.5),
				"TK": pdf.Boolean(false),
			},
			"Bad": pdf.Dict{
				"D": pdf.Array{pdf.Array{pdf.Integer(-2)}, pdf.Integer(0)},
			},
		},
	}
	m := FromDict(nil, res, nil)

	if _, err := m.ExtGState("Bad"); !errors.Is(err, ErrNotFound) {
		t.Errorf("invalid ExtGState was not skipped: %v", err)
	}

	gs, err := m.ExtGState("GS1")
	if err != nil {
		t.Fatal(err)
	}
	want := SetLineWidth | SetDash | SetStrokeAlpha | SetTextKnockout
	if gs.Set != want {
		t.Errorf("Set = %b, want %b", gs.Set, want)
	}

	s := graphics.NewState()
	s.MiterLimit = 4
	gs.ApplyTo(s)
	if s.LineWidth != 3 || s.StrokeAlpha != 0.5 || s.Text.Knockout {
		t.Errorf("parameters not applied: %v %v %v", s.LineWidth, s.StrokeAlpha, s.Text.Knockout)
	}
	if d := cmp.Diff(graphics.DashPattern{Array: []float64{2, 1}}, s.Dash); d != "" {
		t.Error(d)
	}
	if s.MiterLimit != 4 || s.FillAlpha != 1 {
		t.Error("unset parameters were modified")
	}

	// the dash array must not be shared with the ExtGState
	s.Dash.Array[0] = 9
	if gs.Dash.Array[0] != 2 {
		t.Error("dash array is shared")
	}
}

func TestParseColorSpace(t *testing.T) {
	cases := []struct {
		obj  pdf.Object
		want graphics.ColorSpace
	}{
		{pdf.Name("DeviceRGB"), graphics.DeviceRGB},
		{pdf.Array{pdf.Name("DeviceCMYK")}, graphics.DeviceCMYK},
		{pdf.Array{pdf.Name("CalRGB"), pdf.Dict{}}, graphics.ColorSpace{Family: "CalRGB", N: 3}},
		{pdf.Array{pdf.Name("ICCBased"), &pdf.Stream{Dict: pdf.Dict{"N": pdf.Integer(4)}}}, graphics.ColorSpace{Family: "ICCBased", N: 4}},
		{pdf.Array{pdf.Name("Indexed"), pdf.Name("DeviceRGB"), pdf.Integer(255), pdf.String("")}, graphics.ColorSpace{Family: "Indexed", N: 1}},
		{pdf.Array{pdf.Name("Separation"), pdf.Name("Gold"), pdf.Name("DeviceCMYK"), pdf.Dict{}}, graphics.ColorSpace{Family: "Separation", N: 1}},
		{pdf.Array{pdf.Name("DeviceN"), pdf.Array{pdf.Name("A"), pdf.Name("B")}, pdf.Name("DeviceCMYK"), pdf.Dict{}}, graphics.ColorSpace{Family: "DeviceN", N: 2}},
		{pdf.Array{pdf.Name("Pattern"), pdf.Name("DeviceGray")}, graphics.ColorSpace{Family: "Pattern", N: 1}},
		{pdf.Name("Pattern"), graphics.ColorSpace{Family: "Pattern"}},
	}
	for _, c := range cases {
		got, err := ParseColorSpace(nil, c.obj)
		if err != nil {
			t.Errorf("%v: %v", c.obj, err)
			continue
		}
		if got != c.want {
			t.Errorf("%v: got %v, want %v", c.obj, got, c.want)
		}
	}

	for _, bad := range []pdf.Object{pdf.Name("RGB"), pdf.Array{}, pdf.Integer(1), pdf.Array{pdf.Name("ICCBased")}} {
		if _, err := ParseColorSpace(nil, bad); err == nil {
			t.Errorf("%v: missing error", bad)
		}
	}
}

func TestXObjects(t *testing.T) {
	res := pdf.Dict{
		"XObject": pdf.Dict{
			"Im1": &pdf.Stream{Dict: pdf.Dict{
				"Subtype": pdf.Name("Image"),
				"Width":   pdf.Integer(640),
				"Height":  pdf.Integer(480),
			}},
			"Fm1": &pdf.Stream{Dict: pdf.Dict{
				"Subtype": pdf.Name("Form"),
				"BBox":    pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(100), pdf.Integer(50)},
				"Matrix":  pdf.Array{pdf.Integer(2), pdf.Integer(0), pdf.Integer(0), pdf.Integer(2), pdf.Integer(10), pdf.Integer(10)},
				"Resources": pdf.Dict{
					"ColorSpace": pdf.Dict{"CS0": pdf.Name("DeviceRGB")},
				},
			}},
		},
	}
	m := FromDict(nil, res, &Options{
		StreamData: func(*pdf.Stream) ([]byte, error) { return []byte("BT ET"), nil },
	})

	x, err := m.XObject("Im1")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(&Image{Width: 640, Height: 480}, x); d != "" {
		t.Error(d)
	}

	x, err = m.XObject("Fm1")
	if err != nil {
		t.Fatal(err)
	}
	form, ok := x.(*Form)
	if !ok {
		t.Fatalf("got %T, want *Form", x)
	}
	if form.Matrix != (matrix.Matrix{2, 0, 0, 2, 10, 10}) {
		t.Errorf("wrong matrix %v", form.Matrix)
	}
	if form.BBox != (rect.Rect{LLx: 0, LLy: 0, URx: 100, URy: 50}) {
		t.Errorf("wrong bbox %v", form.BBox)
	}
	if d := cmp.Diff([]content.Operator{{Name: "BT"}, {Name: "ET"}}, form.Content); d != "" {
		t.Errorf("wrong content %v", form.Content)
	}
	cs, err := form.Resources.ColorSpace("CS0")
	if err != nil || cs != graphics.DeviceRGB {
		t.Errorf("form resources: %v %v", cs, err)
	}

	// without stream data, forms are skipped
	m = FromDict(nil, res, nil)
	if _, err := m.XObject("Fm1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v", err)
	}
}

const testCMap = `/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def
/CMapName /Adobe-Identity-UCS def
/CMapType 2 def
1 begincodespacerange
<00> <FF>
endcodespacerange
2 beginbfchar
<01> <0066006C>
<02> <D835DC00>
endbfchar
2 beginbfrange
<41> <43> <0061>
<10> <11> [<00DF> <0020>]
endbfrange
endcmap
CMapName currentdict /CMap defineresource pop
end
end`

func TestParseToUnicode(t *testing.T) {
	m, err := ParseToUnicode([]byte(testCMap))
	if err != nil {
		t.Fatal(err)
	}
	want := map[byte]string{
		0x01: "fl",
		0x02: "\U0001D400",
		0x41: "a",
		0x42: "b",
		0x43: "c",
		0x10: "\u00df",
		0x11: " ",
	}
	if d := cmp.Diff(want, m); d != "" {
		t.Error(d)
	}

	// mappings before a syntax error are kept
	m, err = ParseToUnicode([]byte("1 beginbfchar <01> <0041> endbfchar ) junk"))
	if err != nil {
		t.Fatal(err)
	}
	if m[1] != "A" {
		t.Errorf("got %q", m[1])
	}

	if _, err := ParseToUnicode([]byte(")")); err == nil {
		t.Error("missing error")
	}
}

func TestFromDictToUnicode(t *testing.T) {
	res := pdf.Dict{
		"Font": pdf.Dict{
			"F1": pdf.Dict{
				"Subtype":   pdf.Name("Type1"),
				"BaseFont":  pdf.Name("Custom"),
				"FirstChar": pdf.Integer(65),
				"Widths":    pdf.Array{pdf.Integer(500), pdf.Integer(500)},
				"ToUnicode": &pdf.Stream{
					Dict: pdf.Dict{},
					R:    strings.NewReader(testCMap),
				},
			},
		},
	}
	opt := &Options{
		StreamData: func(stm *pdf.Stream) ([]byte, error) { return io.ReadAll(stm.R) },
	}
	m := FromDict(nil, res, opt)

	F, err := m.Font("F1")
	if err != nil {
		t.Fatal(err)
	}
	var text string
	for _, g := range F.Decode(pdf.String("AB\x01")) {
		text += g.Text
	}
	if text != "abfl" {
		t.Errorf("got %q", text)
	}
}

// memFile holds indirect objects in memory.
type memFile map[pdf.Reference]pdf.Native

func (memFile) GetMeta() *pdf.MetaInfo { return &pdf.MetaInfo{} }

func (f memFile) Get(ref pdf.Reference, _ bool) (pdf.Native, error) {
	obj, ok := f[ref]
	if !ok {
		return nil, errors.New("object not found")
	}
	return obj, nil
}

func TestFromDictIndirect(t *testing.T) {
	widthsRef := pdf.NewReference(1, 0)
	fdRef := pdf.NewReference(2, 0)
	ascentRef := pdf.NewReference(3, 0)
	bboxRef := pdf.NewReference(4, 0)
	formRef := pdf.NewReference(5, 0)
	file := memFile{
		widthsRef: pdf.Array{pdf.Integer(500), pdf.Integer(600)},
		fdRef: pdf.Dict{
			"Ascent":  ascentRef,
			"Descent": pdf.Integer(-150),
		},
		ascentRef: pdf.Integer(750),
		bboxRef:   pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(20), pdf.Integer(30)},
		formRef: &pdf.Stream{Dict: pdf.Dict{
			"Subtype": pdf.Name("Form"),
			"BBox":    bboxRef,
		}},
	}
	res := pdf.Dict{
		"Font": pdf.Dict{
			"F1": pdf.Dict{
				"Subtype":        pdf.Name("TrueType"),
				"BaseFont":       pdf.Name("Demo"),
				"FirstChar":      pdf.Integer(65),
				"Widths":         widthsRef,
				"FontDescriptor": fdRef,
			},
		},
		"XObject": pdf.Dict{"Fm1": formRef},
	}
	opt := &Options{
		StreamData: func(*pdf.Stream) ([]byte, error) { return nil, nil },
	}

	m := FromDict(file, res, opt)
	F, err := m.Font("F1")
	if err != nil {
		t.Fatal(err)
	}
	var widths []float64
	for _, g := range F.Decode(pdf.String("AB")) {
		widths = append(widths, g.Width)
	}
	if d := cmp.Diff([]float64{500, 600}, widths); d != "" {
		t.Error(d)
	}
	if descent, ascent := F.Extent(); descent != -150 || ascent != 750 {
		t.Errorf("extent [%g, %g]", descent, ascent)
	}
	x, err := m.XObject("Fm1")
	if err != nil {
		t.Fatal(err)
	}
	if form := x.(*Form); form.BBox != (rect.Rect{URx: 20, URy: 30}) {
		t.Errorf("wrong bbox %v", form.BBox)
	}

	// Without a reader, references count as missing values.
	m = FromDict(nil, res, opt)
	F, err = m.Font("F1")
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range F.Decode(pdf.String("AB")) {
		if g.Width != 0 {
			t.Errorf("%q: width %g, want 0", g.Text, g.Width)
		}
	}
	if _, err := m.XObject("Fm1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v", err)
	}
}
