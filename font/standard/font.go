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

// Package standard provides metrics for the 14 standard PDF fonts.
//
// The metrics are read from the AFM files bundled with
// [seehuhn.de/go/pdf/font/loader].  Font names which PDF writers commonly use
// for the standard fonts, like "Arial,Bold" or "TimesNewRoman", are mapped to
// the corresponding standard font.
package standard

import (
	"fmt"
	"strings"

	"seehuhn.de/go/pdf/font/loader"
	"seehuhn.de/go/postscript/afm"

	"seehuhn.de/go/pagetext/font"
)

// Font identifies the individual fonts.
type Font string

// Constants for the 14 standard PDF fonts.
const (
	Courier              Font = "Courier"
	CourierBold          Font = "Courier-Bold"
	CourierBoldOblique   Font = "Courier-BoldOblique"
	CourierOblique       Font = "Courier-Oblique"
	Helvetica            Font = "Helvetica"
	HelveticaBold        Font = "Helvetica-Bold"
	HelveticaBoldOblique Font = "Helvetica-BoldOblique"
	HelveticaOblique     Font = "Helvetica-Oblique"
	TimesRoman           Font = "Times-Roman"
	TimesBold            Font = "Times-Bold"
	TimesBoldItalic      Font = "Times-BoldItalic"
	TimesItalic          Font = "Times-Italic"
	Symbol               Font = "Symbol"
	ZapfDingbats         Font = "ZapfDingbats"
)

// All lists the 14 standard PDF fonts defined in this package.
var All = []Font{
	Courier,
	CourierBold,
	CourierBoldOblique,
	CourierOblique,
	Helvetica,
	HelveticaBold,
	HelveticaBoldOblique,
	HelveticaOblique,
	TimesRoman,
	TimesBold,
	TimesBoldItalic,
	TimesItalic,
	Symbol,
	ZapfDingbats,
}

// aliases maps alternative font names to the standard fonts.
var aliases = map[string]Font{
	"CourierCourierNew":        Courier,
	"CourierNew":               Courier,
	"CourierNew,Italic":        CourierOblique,
	"CourierNew,Bold":          CourierBold,
	"CourierNew,BoldItalic":    CourierBoldOblique,
	"Arial":                    Helvetica,
	"Arial,Italic":             HelveticaOblique,
	"Arial,Bold":               HelveticaBold,
	"Arial,BoldItalic":         HelveticaBoldOblique,
	"TimesNewRoman":            TimesRoman,
	"TimesNewRoman,Italic":     TimesItalic,
	"TimesNewRoman,Bold":       TimesBold,
	"TimesNewRoman,BoldItalic": TimesBoldItalic,
	"Symbol,Italic":            Symbol,
	"Symbol,Bold":              Symbol,
	"Symbol,BoldItalic":        Symbol,
	"Times":                    TimesRoman,
	"Times,Italic":             TimesItalic,
	"Times,Bold":               TimesBold,
	"Times,BoldItalic":         TimesBoldItalic,
}

// Lookup returns the standard font for the given font name.
// Subset tags like "ABCDEF+" are ignored.
func Lookup(name string) (Font, bool) {
	if len(name) > 7 && name[6] == '+' && isSubsetTag(name[:6]) {
		name = name[7:]
	}
	for _, f := range All {
		if string(f) == name {
			return f, true
		}
	}
	f, ok := aliases[name]
	return f, ok
}

func isSubsetTag(tag string) bool {
	for _, c := range tag {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// Provider is a [font.MetricsProvider] for the 14 standard fonts.
//
// All metrics are loaded when the Provider is created.  A Provider is
// read-only afterwards and can be shared between goroutines.
type Provider struct {
	metrics map[Font]*font.Metrics
}

var _ font.MetricsProvider = (*Provider)(nil)

// New loads the metrics for all standard fonts.
// If l is nil, a loader for the fonts built into the PDF library is used.
func New(l *loader.FontLoader) (*Provider, error) {
	if l == nil {
		l = loader.NewFontLoader()
	}
	p := &Provider{
		metrics: make(map[Font]*font.Metrics, len(All)),
	}
	for _, f := range All {
		m, err := load(l, f)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", f, err)
		}
		p.metrics[f] = m
	}
	return p, nil
}

// Metrics implements the [font.MetricsProvider] interface.
func (p *Provider) Metrics(name string) (*font.Metrics, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, font.ErrUnknownFont)
	}
	return p.metrics[f], nil
}

func load(l *loader.FontLoader, f Font) (*font.Metrics, error) {
	name := string(f)

	afmData, err := l.Open(name, loader.FontTypeAFM)
	if err != nil {
		return nil, err
	}
	metrics, err := afm.Read(afmData)
	afmData.Close()
	if err != nil {
		return nil, err
	}

	res := &font.Metrics{
		FontName:     name,
		Widths:       make(map[string]float64, len(metrics.Glyphs)),
		Ascent:       metrics.Ascent,
		Descent:      metrics.Descent,
		IsFixedPitch: metrics.IsFixedPitch,
	}
	for glyphName, g := range metrics.Glyphs {
		res.Widths[glyphName] = float64(g.WidthX)
	}

	switch f {
	case Symbol:
		res.Encoding = font.SymbolEncoding
	case ZapfDingbats:
		res.Encoding = font.DingbatsEncoding
	default:
		res.Encoding = font.StandardEncoding
	}

	// Ascent and descent are missing from the bundled .afm files.  We infer
	// values for these from glyph metrics.
	for _, glyphName := range []string{"d", "bracketleft", "bar"} {
		if glyph, ok := metrics.Glyphs[glyphName]; ok {
			res.Ascent = max(res.Ascent, float64(glyph.BBox.URy))
		}
	}
	for _, glyphName := range []string{"p", "bracketleft", "bar"} {
		if glyph, ok := metrics.Glyphs[glyphName]; ok {
			res.Descent = min(res.Descent, float64(glyph.BBox.LLy))
		}
	}
	if res.Ascent == 0 && res.Descent == 0 {
		// ZapfDingbats has none of the glyphs above
		for _, glyph := range metrics.Glyphs {
			res.Ascent = max(res.Ascent, float64(glyph.BBox.URy))
			res.Descent = min(res.Descent, float64(glyph.BBox.LLy))
		}
	}

	family, _, _ := strings.Cut(name, "-")
	if family == "Courier" {
		res.IsFixedPitch = true
	}

	return res, nil
}
