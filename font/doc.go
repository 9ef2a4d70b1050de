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

// Package font provides the font information needed to position text.
//
// A [Font] splits the bytes of a PDF string into glyphs and reports the
// advance width and the Unicode text of each glyph.  Glyph outlines are not
// decoded.  Metrics for fonts which are not embedded are looked up through a
// [MetricsProvider], for example the one for the 14 standard PDF fonts in
// [seehuhn.de/go/pagetext/font/standard].
//
// All widths and vertical extents are given in glyph space units, i.e. in
// thousandths of the font size.
package font
