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
	"fmt"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/graphics"
)

// ParseColorSpace determines the family and the number of components of a
// color space object.  Indirect references are resolved using r, which may
// be nil if obj is already resolved.
//
// See section 8.6 of PDF 32000-1:2008.
func ParseColorSpace(r pdf.Getter, obj pdf.Object) (graphics.ColorSpace, error) {
	r = getter(r)
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return graphics.ColorSpace{}, err
	}
	switch obj := obj.(type) {
	case pdf.Name:
		if cs, ok := graphics.DeviceSpace(obj); ok {
			return cs, nil
		}
		return graphics.ColorSpace{}, fmt.Errorf("unknown color space %q", obj)
	case pdf.Array:
		return parseColorSpaceArray(r, obj)
	default:
		return graphics.ColorSpace{}, fmt.Errorf("invalid color space object %T", obj)
	}
}

func parseColorSpaceArray(r pdf.Getter, a pdf.Array) (graphics.ColorSpace, error) {
	if len(a) == 0 {
		return graphics.ColorSpace{}, fmt.Errorf("empty color space array")
	}
	family, err := pdf.GetName(r, a[0])
	if err != nil || family == "" {
		return graphics.ColorSpace{}, fmt.Errorf("invalid color space family %v", a[0])
	}

	n := 0
	switch family {
	case "DeviceGray", "DeviceRGB", "DeviceCMYK":
		cs, _ := graphics.DeviceSpace(family)
		return cs, nil
	case "CalGray", "Indexed", "Separation":
		n = 1
	case "CalRGB", "Lab":
		n = 3
	case "ICCBased":
		if len(a) > 1 {
			if stm, _ := pdf.GetStream(r, a[1]); stm != nil {
				x, _ := pdf.GetInteger(r, stm.Dict["N"])
				n = int(x)
			}
		}
		if n != 1 && n != 3 && n != 4 {
			return graphics.ColorSpace{}, fmt.Errorf("invalid ICCBased color space")
		}
	case "DeviceN":
		if len(a) > 1 {
			names, _ := pdf.GetArray(r, a[1])
			n = len(names)
		}
		if n == 0 {
			return graphics.ColorSpace{}, fmt.Errorf("invalid DeviceN color space")
		}
	case "Pattern":
		// uncolored tiling patterns specify the underlying color space
		if len(a) > 1 {
			base, err := ParseColorSpace(r, a[1])
			if err != nil {
				return graphics.ColorSpace{}, err
			}
			n = base.N
		}
	default:
		return graphics.ColorSpace{}, fmt.Errorf("unknown color space %q", family)
	}
	return graphics.ColorSpace{Family: family, N: n}, nil
}
