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

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidDash indicates a dash pattern which does not satisfy the
// constraints from section 8.4.3.6 of PDF 32000-1:2008.
var ErrInvalidDash = errors.New("invalid dash pattern")

// DashPattern describes the pattern of dashes and gaps used to stroke paths.
// An empty Array denotes a solid line.
type DashPattern struct {
	Array []float64
	Phase float64
}

// NewDashPattern validates and returns a dash pattern.
//
// The phase and all array entries must be non-negative, and a non-empty array
// must contain at least one non-zero entry.
func NewDashPattern(array []float64, phase float64) (DashPattern, error) {
	if phase < 0 {
		return DashPattern{}, ErrInvalidDash
	}
	allZero := true
	for _, x := range array {
		if x < 0 {
			return DashPattern{}, ErrInvalidDash
		}
		if x != 0 {
			allZero = false
		}
	}
	if len(array) > 0 && allZero {
		return DashPattern{}, ErrInvalidDash
	}
	return DashPattern{Array: array, Phase: phase}, nil
}

// IsSolid reports whether the pattern describes a solid line.
func (d DashPattern) IsSolid() bool {
	return len(d.Array) == 0
}

// Clone returns a copy of d which does not share the array.
func (d DashPattern) Clone() DashPattern {
	if d.Array != nil {
		d.Array = append([]float64(nil), d.Array...)
	}
	return d
}

// String formats the pattern as the operands of the "d" operator,
// for example "[3, 1] 2".
func (d DashPattern) String() string {
	b := &strings.Builder{}
	b.WriteByte('[')
	for i, x := range d.Array {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	}
	b.WriteString("] ")
	b.WriteString(strconv.FormatFloat(d.Phase, 'f', -1, 64))
	return b.String()
}
