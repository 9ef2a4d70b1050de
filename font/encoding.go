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
	"fmt"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/font/pdfenc"
	"seehuhn.de/go/postscript/type1/names"
)

// Encoding maps single-byte character codes to glyph names.
// Unused codes map to ".notdef".  The empty string is also treated as unused.
type Encoding [256]string

// Predefined encodings for simple fonts.
// See appendix D.2 of PDF 32000-1:2008.
var (
	StandardEncoding  = Encoding(pdfenc.Standard.Encoding)
	WinAnsiEncoding   = Encoding(pdfenc.WinAnsi.Encoding)
	MacRomanEncoding  = Encoding(pdfenc.MacRoman.Encoding)
	MacExpertEncoding = Encoding(pdfenc.MacExpert.Encoding)
	SymbolEncoding    = Encoding(pdfenc.Symbol.Encoding)
	DingbatsEncoding  = Encoding(pdfenc.ZapfDingbats.Encoding)
)

// NamedEncoding returns the encoding for a value of the /Encoding or
// /BaseEncoding entry in a font dictionary.
func NamedEncoding(name pdf.Name) (Encoding, bool) {
	switch name {
	case "StandardEncoding":
		return StandardEncoding, true
	case "WinAnsiEncoding":
		return WinAnsiEncoding, true
	case "MacRomanEncoding":
		return MacRomanEncoding, true
	case "MacExpertEncoding":
		return MacExpertEncoding, true
	}
	return Encoding{}, false
}

// ParseEncoding interprets the /Encoding entry of a simple font dictionary.
// The argument builtin is the encoding used when obj is nil, and the base
// encoding for a /Differences array without /BaseEncoding.
//
// On error, builtin is returned together with the error.
func ParseEncoding(obj pdf.Object, builtin Encoding) (Encoding, error) {
	switch obj := obj.(type) {
	case nil:
		return builtin, nil
	case pdf.Name:
		enc, ok := NamedEncoding(obj)
		if !ok {
			return builtin, &InvalidFontError{
				SubSystem: "font/encoding",
				Reason:    fmt.Sprintf("unknown encoding %q", obj),
			}
		}
		return enc, nil
	case pdf.Dict:
		enc := builtin
		if base, ok := obj["BaseEncoding"].(pdf.Name); ok {
			if e, ok := NamedEncoding(base); ok {
				enc = e
			}
		}
		diff, _ := obj["Differences"].(pdf.Array)
		code := -1
		for _, x := range diff {
			switch x := x.(type) {
			case pdf.Integer:
				code = int(x)
			case pdf.Name:
				if code >= 0 && code < 256 {
					enc[code] = string(x)
				}
				if code >= 0 {
					code++
				}
			}
		}
		return enc, nil
	default:
		return builtin, &InvalidFontError{
			SubSystem: "font/encoding",
			Reason:    fmt.Sprintf("unexpected encoding object %T", obj),
		}
	}
}

// GlyphText returns the Unicode text for a glyph name.  The PostScript name
// of the font selects the glyph list: ZapfDingbats has its own glyph names.
func GlyphText(glyphName, fontName string) string {
	if glyphName == "" || glyphName == ".notdef" {
		return ""
	}
	return string(names.ToUnicode(glyphName, fontName))
}
