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
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Orientation is the direction in which text runs on the page, restricted to
// multiples of 90 degrees.
type Orientation uint8

// Possible values for Orientation.
const (
	// Horizontal text runs left to right.
	Horizontal Orientation = iota

	// Rotate90 text is rotated clockwise by 90 degrees and runs top to
	// bottom.
	Rotate90

	// Rotate180 text is upside down and runs right to left.
	Rotate180

	// Rotate270 text is rotated counter-clockwise by 90 degrees and runs
	// bottom to top.
	Rotate270
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Rotate90:
		return "Rotate90"
	case Rotate180:
		return "Rotate180"
	case Rotate270:
		return "Rotate270"
	default:
		return fmt.Sprintf("Orientation(%d)", o)
	}
}

// Axis returns the unit vector along which text with orientation o is read.
func (o Orientation) Axis() vec.Vec2 {
	switch o {
	case Rotate90:
		return vec.Vec2{X: 0, Y: -1}
	case Rotate180:
		return vec.Vec2{X: -1, Y: 0}
	case Rotate270:
		return vec.Vec2{X: 0, Y: 1}
	default:
		return vec.Vec2{X: 1, Y: 0}
	}
}

// Normal returns the unit vector pointing "up" for text with orientation o.
func (o Orientation) Normal() vec.Vec2 {
	return o.Axis().Rot90()
}

// OrientationOf classifies the rotation of a glyph matrix.
//
// The angle of the image of the glyph x-axis is rounded to the nearest
// multiple of 90 degrees.  Skew is ignored.
func OrientationOf(M matrix.Matrix) Orientation {
	x, y := M[0], M[1]
	if x == 0 && y == 0 {
		// the x-axis collapsed, use the image of the y-axis instead
		x, y = M[3], -M[2]
	}
	if x == 0 && y == 0 {
		return Horizontal
	}
	phi := math.Atan2(y, x) * 180 / math.Pi
	switch {
	case phi > -45 && phi <= 45:
		return Horizontal
	case phi > 45 && phi <= 135:
		return Rotate270
	case phi > -135 && phi <= -45:
		return Rotate90
	default:
		return Rotate180
	}
}

// Quad is a quadrilateral in page space, for example the bounding box of a
// glyph.  The corners are named relative to the text, not relative to the
// page: for rotated text, TopLeft need not be the top-left corner on the
// page.  The quadrilateral is not assumed to be axis-aligned.
type Quad struct {
	TopLeft     vec.Vec2
	TopRight    vec.Vec2
	BottomLeft  vec.Vec2
	BottomRight vec.Vec2
}

// OrientedQuad labels the four corners of a box given in text order: p00 is
// the start of the bottom edge, p10 its end, and p01 and p11 are the
// corresponding points on the top edge.
func OrientedQuad(o Orientation, p00, p10, p01, p11 vec.Vec2) Quad {
	q := Quad{BottomLeft: p00, TopRight: p11}
	switch o {
	case Rotate90, Rotate270:
		q.TopLeft = p10
		q.BottomRight = p01
	default:
		q.TopLeft = p01
		q.BottomRight = p10
	}
	return q
}

// GlyphQuad transforms the glyph box [0, width] x [bottom, top] by M.
// The orientation of the result is derived from M using [OrientationOf].
func GlyphQuad(M matrix.Matrix, width, bottom, top float64) (Quad, Orientation) {
	o := OrientationOf(M)
	q := OrientedQuad(o,
		Point(M, 0, bottom), Point(M, width, bottom),
		Point(M, 0, top), Point(M, width, top))
	return q, o
}

// Width returns the extent of q along the reading direction of o.
func (q Quad) Width(o Orientation) float64 {
	switch o {
	case Rotate90:
		return dist(q.BottomLeft, q.TopLeft)
	case Rotate180:
		return dist(q.BottomRight, q.BottomLeft)
	case Rotate270:
		return dist(q.TopRight, q.BottomRight)
	default:
		return dist(q.TopLeft, q.TopRight)
	}
}

// Height returns the extent of q perpendicular to the reading direction of o.
func (q Quad) Height(o Orientation) float64 {
	switch o {
	case Rotate90:
		return dist(q.BottomLeft, q.BottomRight)
	case Rotate180:
		return dist(q.BottomRight, q.TopRight)
	case Rotate270:
		return dist(q.TopRight, q.TopLeft)
	default:
		return dist(q.TopLeft, q.BottomLeft)
	}
}

// Bounds returns the smallest axis-aligned rectangle which contains q.
func (q Quad) Bounds() rect.Rect {
	r := rect.Rect{LLx: q.TopLeft.X, LLy: q.TopLeft.Y, URx: q.TopLeft.X, URy: q.TopLeft.Y}
	for _, p := range [3]vec.Vec2{q.TopRight, q.BottomLeft, q.BottomRight} {
		r.Add(p.X, p.Y)
	}
	return r
}

// Area returns the area enclosed by q.
func (q Quad) Area() float64 {
	// shoelace formula, going around the quad
	pts := [4]vec.Vec2{q.BottomLeft, q.BottomRight, q.TopRight, q.TopLeft}
	var a float64
	for i := range pts {
		p, r := pts[i], pts[(i+1)%4]
		a += p.X*r.Y - r.X*p.Y
	}
	return math.Abs(a) / 2
}

// FlipY mirrors q vertically for a page of the given height, so that the
// origin moves to the top-left corner of the page.  Corner names are kept.
func (q Quad) FlipY(height float64) Quad {
	flip := func(p vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: p.X, Y: height - p.Y}
	}
	return Quad{
		TopLeft:     flip(q.TopLeft),
		TopRight:    flip(q.TopRight),
		BottomLeft:  flip(q.BottomLeft),
		BottomRight: flip(q.BottomRight),
	}
}

func dist(a, b vec.Vec2) float64 {
	return b.Sub(a).Length()
}
