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

package graphics

import "seehuhn.de/go/pdf"

// ColorSpace describes the color space used by a stroke or fill color.
//
// Only the information needed to track colors through a content stream is
// kept: the family and the number of color components.
type ColorSpace struct {
	Family pdf.Name

	// N is the number of color components.  For the Pattern family this is
	// the number of components of the underlying color space, or 0 for
	// colored patterns.
	N int
}

// The device color spaces.
var (
	DeviceGray = ColorSpace{Family: "DeviceGray", N: 1}
	DeviceRGB  = ColorSpace{Family: "DeviceRGB", N: 3}
	DeviceCMYK = ColorSpace{Family: "DeviceCMYK", N: 4}
)

// DeviceSpace returns the color space for the names which can be used with
// the "CS" and "cs" operators without a resource dictionary entry.
func DeviceSpace(name pdf.Name) (ColorSpace, bool) {
	switch name {
	case "DeviceGray":
		return DeviceGray, true
	case "DeviceRGB":
		return DeviceRGB, true
	case "DeviceCMYK":
		return DeviceCMYK, true
	case "Pattern":
		return ColorSpace{Family: "Pattern"}, true
	}
	return ColorSpace{}, false
}

// InitialColor returns the color which is selected when the color space is
// set using the "CS" or "cs" operator.
//
// See table 73 in section 8.6.8 of PDF 32000-1:2008.
func (cs ColorSpace) InitialColor() Color {
	values := make([]float64, cs.N)
	switch cs.Family {
	case "DeviceCMYK":
		values[3] = 1
	case "Separation", "DeviceN":
		for i := range values {
			values[i] = 1
		}
	case "Pattern":
		values = nil
	}
	return Color{Space: cs, Values: values}
}

// Color is a stroke or fill color.
type Color struct {
	Space  ColorSpace
	Values []float64

	// Pattern is the name of the pattern resource, for colors in the Pattern
	// color space.
	Pattern pdf.Name
}

// Gray returns a color in the DeviceGray color space.
func Gray(g float64) Color {
	return Color{Space: DeviceGray, Values: []float64{g}}
}

// RGB returns a color in the DeviceRGB color space.
func RGB(r, g, b float64) Color {
	return Color{Space: DeviceRGB, Values: []float64{r, g, b}}
}

// CMYK returns a color in the DeviceCMYK color space.
func CMYK(c, m, y, k float64) Color {
	return Color{Space: DeviceCMYK, Values: []float64{c, m, y, k}}
}

// Clone returns a copy of c which does not share the component slice.
func (c Color) Clone() Color {
	if c.Values != nil {
		c.Values = append([]float64(nil), c.Values...)
	}
	return c
}
