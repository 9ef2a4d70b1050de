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

package font

import (
	"unicode"

	"seehuhn.de/go/pdf"
)

// SimpleInfo describes a simple font with single-byte character codes.
//
// See section 9.6 of PDF 32000-1:2008.
type SimpleInfo struct {
	// PostScriptName is the value of /BaseFont, without a subset tag.
	PostScriptName string

	// Encoding maps character codes to glyph names.
	// If this is nil, the built-in encoding from Metrics is used, or
	// StandardEncoding if no metrics are available.
	Encoding *Encoding

	// FirstChar is the character code of Widths[0].
	FirstChar int

	// Widths holds the advance widths for the codes starting at FirstChar.
	// Codes outside this range use MissingWidth.  If Widths is nil, the
	// widths are taken from Metrics.
	Widths []float64

	MissingWidth float64

	// Ascent and Descent are taken from the font descriptor.  If both are
	// zero, the values from Metrics are used.
	Ascent  float64
	Descent float64

	// Metrics are the metrics of a standard font, if available.
	Metrics *Metrics

	// ToUnicode overrides the text derived from glyph names.
	ToUnicode map[byte]string
}

// Simple is a [Font] with single-byte character codes.
type Simple struct {
	name            string
	text            [256]string
	width           [256]float64
	ascent, descent float64
}

var _ Font = (*Simple)(nil)

// NewSimple returns a font for the given description.
func NewSimple(info *SimpleInfo) *Simple {
	f := &Simple{
		name:    info.PostScriptName,
		ascent:  info.Ascent,
		descent: info.Descent,
	}

	enc := StandardEncoding
	switch {
	case info.Encoding != nil:
		enc = *info.Encoding
	case info.Metrics != nil:
		enc = info.Metrics.Encoding
	}
	fontName := info.PostScriptName
	if info.Metrics != nil {
		fontName = info.Metrics.FontName
	}

	for c := range 256 {
		name := enc[c]
		if name == ".notdef" {
			name = ""
		}

		w := info.MissingWidth
		if info.Widths != nil {
			if i := c - info.FirstChar; i >= 0 && i < len(info.Widths) {
				w = info.Widths[i]
			}
		} else if info.Metrics != nil {
			if mw, ok := info.Metrics.Width(name); ok {
				w = mw
			}
		}
		f.width[c] = w

		if s, ok := info.ToUnicode[byte(c)]; ok {
			f.text[c] = s
		} else if name != "" {
			f.text[c] = GlyphText(name, fontName)
		} else if c < 128 && unicode.IsPrint(rune(c)) {
			f.text[c] = string(rune(c))
		}
	}

	if f.ascent == 0 && f.descent == 0 {
		if info.Metrics != nil {
			f.ascent = info.Metrics.Ascent
			f.descent = info.Metrics.Descent
		}
		if f.ascent <= f.descent {
			f.ascent = 1000
			f.descent = 0
		}
	}

	return f
}

// PostScriptName implements the [Font] interface.
func (f *Simple) PostScriptName() string {
	return f.name
}

// Decode implements the [Font] interface.
func (f *Simple) Decode(s pdf.String) []Glyph {
	res := make([]Glyph, len(s))
	for i, c := range s {
		res[i] = Glyph{
			Code:    uint32(c),
			Text:    f.text[c],
			Width:   f.width[c],
			IsSpace: c == ' ',
		}
	}
	return res
}

// Extent implements the [Font] interface.
func (f *Simple) Extent() (descent, ascent float64) {
	return f.descent, f.ascent
}
