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

// Package graphics implements the graphics state used while interpreting
// PDF content streams.
//
// The package provides helpers for transformation matrices, the graphics
// state ([State]) together with the save/restore stack ([Stack]), line dash
// patterns, colors, and the oriented quadrilaterals ([Quad]) which describe
// the position of individual glyphs on the page.
//
// All coordinates use the PDF convention, with the origin in the bottom-left
// corner of the page and the y-axis pointing upwards.  Use [Quad.FlipY] to
// convert to a top-left origin.
package graphics
