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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// TestMulOrder pins the composition order used throughout the package:
// A.Mul(B) first applies A and then B.
func TestMulOrder(t *testing.T) {
	A := matrix.Scale(2, 3)
	B := matrix.Translate(10, 20)

	if d := cmp.Diff(vec.Vec2{X: 12, Y: 23}, Point(A.Mul(B), 1, 1)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(vec.Vec2{X: 22, Y: 63}, Point(B.Mul(A), 1, 1)); d != "" {
		t.Error(d)
	}
}

func TestDet(t *testing.T) {
	cases := []struct {
		M    matrix.Matrix
		want float64
	}{
		{matrix.Identity, 1},
		{matrix.Scale(2, 3), 6},
		{matrix.Translate(5, 7), 1},
		{matrix.Matrix{0, 1, -1, 0, 4, 4}, 1},
		{matrix.Matrix{1, 2, 2, 4, 5, 6}, 0},
		{matrix.Matrix{0, 0, 0, 10, 0, 0}, 0},
	}
	for _, c := range cases {
		if got := Det(c.M); got != c.want {
			t.Errorf("Det(%v) = %g, want %g", c.M, got, c.want)
		}
	}
}
