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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// All matrices use the element order of the "cm" operator: M = [a b c d e f]
// maps a point (x, y) to (a*x+c*y+e, b*x+d*y+f).  The product A.Mul(B)
// first applies A and then B.  For example, "cm" with operand M replaces
// the CTM by M.Mul(CTM), and the text rendering matrix is
//
//	[Tfs*Th 0 0 Tfs 0 Trise].Mul(Tm).Mul(CTM)

// Det returns the determinant of the linear part of M.
// Glyphs drawn with a matrix of determinant zero have no area.
func Det(M matrix.Matrix) float64 {
	return M[0]*M[3] - M[1]*M[2]
}

// Point maps (x, y) through M.
func Point(M matrix.Matrix, x, y float64) vec.Vec2 {
	x, y = M.Apply(x, y)
	return vec.Vec2{X: x, Y: y}
}
