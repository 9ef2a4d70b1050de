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

import "seehuhn.de/go/pdf"

// Font is a font used to show text.
//
// Implementations must be safe for concurrent use, since a font may be
// shared between pages which are interpreted in parallel.
type Font interface {
	// PostScriptName returns the name of the font, or the empty string if
	// the name is not known.
	PostScriptName() string

	// Decode splits a PDF string into glyphs.
	Decode(s pdf.String) []Glyph

	// Extent returns the lowest and highest point of the glyphs, in glyph
	// space units.  These are used as the bottom and top of the glyph boxes.
	Extent() (descent, ascent float64)
}

// Glyph is one character code of a shown string.
type Glyph struct {
	Code uint32

	// Text is the Unicode text represented by the glyph.
	Text string

	// Width is the advance width in glyph space units.
	Width float64

	// IsSpace is true for the single-byte character code 32.  Word spacing
	// is applied to these glyphs.
	IsSpace bool
}

// Metrics holds the font metrics of a font which is not embedded.
//
// Metrics values are shared between users and must not be modified.
type Metrics struct {
	FontName string

	// Widths maps glyph names to advance widths.
	Widths map[string]float64

	// Encoding is the built-in encoding of the font.
	Encoding [256]string

	Ascent  float64
	Descent float64

	IsFixedPitch bool
}

// Width returns the advance width of the named glyph.
func (m *Metrics) Width(glyphName string) (float64, bool) {
	w, ok := m.Widths[glyphName]
	return w, ok
}

// MetricsProvider looks up font metrics by font name.
type MetricsProvider interface {
	// Metrics returns the metrics for the named font.  If the font is not
	// known, an error wrapping [ErrUnknownFont] is returned.
	Metrics(name string) (*Metrics, error)
}
