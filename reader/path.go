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

package reader

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/graphics"
)

var errNoCurrentPoint = fmt.Errorf("%w: no current point", ErrMalformedOperator)

// pathBuilder collects the segments of the current path, in default user
// space.
type pathBuilder struct {
	segments []Segment

	hasCurrent bool
	start      vec.Vec2 // start of the current subpath
	current    vec.Vec2

	// clip is set by "W" and "W*" and takes effect at the next painting
	// operator.
	clip bool
}

func (p *pathBuilder) reset() {
	*p = pathBuilder{}
}

func (p *pathBuilder) moveTo(a vec.Vec2) {
	p.segments = append(p.segments, Segment{Op: content.OpMoveTo, Points: []vec.Vec2{a}})
	p.start = a
	p.current = a
	p.hasCurrent = true
}

func (p *pathBuilder) lineTo(a vec.Vec2) error {
	if !p.hasCurrent {
		return errNoCurrentPoint
	}
	p.segments = append(p.segments, Segment{Op: content.OpLineTo, Points: []vec.Vec2{a}})
	p.current = a
	return nil
}

func (p *pathBuilder) curveTo(a, b, c vec.Vec2) error {
	if !p.hasCurrent {
		return errNoCurrentPoint
	}
	p.segments = append(p.segments, Segment{Op: content.OpCurveTo, Points: []vec.Vec2{a, b, c}})
	p.current = c
	return nil
}

func (p *pathBuilder) closePath() {
	if !p.hasCurrent {
		return
	}
	p.segments = append(p.segments, Segment{Op: content.OpClosePath})
	p.current = p.start
}

// rectangle appends a closed subpath for the rectangle with corner (x, y)
// and the given width and height in user space.
func (p *pathBuilder) rectangle(ctm matrix.Matrix, x, y, w, h float64) {
	p.moveTo(graphics.Point(ctm, x, y))
	p.segments = append(p.segments,
		Segment{Op: content.OpLineTo, Points: []vec.Vec2{graphics.Point(ctm, x+w, y)}},
		Segment{Op: content.OpLineTo, Points: []vec.Vec2{graphics.Point(ctm, x+w, y+h)}},
		Segment{Op: content.OpLineTo, Points: []vec.Vec2{graphics.Point(ctm, x, y+h)}},
		Segment{Op: content.OpClosePath})
}

// bounds returns the bounding box of all points on the path.
func (p *pathBuilder) bounds() (rect.Rect, bool) {
	var b rect.Rect
	first := true
	for _, seg := range p.segments {
		for _, pt := range seg.Points {
			if first {
				b = rect.Rect{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
				first = false
				continue
			}
			b.Add(pt.X, pt.Y)
		}
	}
	return b, !first
}

// paint ends the current path.  Stroked and filled paths are recorded on
// the page.
func (r *Reader) paint(s *graphics.State, op content.PaintPath) {
	p := &r.path
	if op.Close() {
		p.closePath()
	}

	if p.clip {
		if b, ok := p.bounds(); ok {
			s.Clip = intersect(s.Clip, b)
		}
	}

	if len(p.segments) > 0 && (op.Stroke() || op.Fill()) {
		r.page.Paths = append(r.page.Paths, Path{
			Segments:    p.segments,
			Stroke:      op.Stroke(),
			Fill:        op.Fill(),
			EvenOdd:     op.EvenOdd(),
			LineWidth:   s.LineWidth,
			Dash:        s.Dash.Clone(),
			StrokeColor: s.StrokeColor.Clone(),
			FillColor:   s.FillColor.Clone(),
		})
	}

	p.reset()
}

// intersect returns the intersection of a clipping rectangle with b.
// A nil clip means that nothing is clipped.  If the rectangles are
// disjoint, the result has zero area.
func intersect(clip *rect.Rect, b rect.Rect) *rect.Rect {
	if clip == nil {
		return &b
	}
	res := rect.Rect{
		LLx: max(clip.LLx, b.LLx),
		LLy: max(clip.LLy, b.LLy),
		URx: min(clip.URx, b.URx),
		URy: min(clip.URy, b.URy),
	}
	res.URx = max(res.URx, res.LLx)
	res.URy = max(res.URy, res.LLy)
	return &res
}

// transformRect returns the bounding box of the image of b under M.
func transformRect(M matrix.Matrix, b rect.Rect) rect.Rect {
	q := graphics.Quad{
		BottomLeft:  graphics.Point(M, b.LLx, b.LLy),
		BottomRight: graphics.Point(M, b.URx, b.LLy),
		TopLeft:     graphics.Point(M, b.LLx, b.URy),
		TopRight:    graphics.Point(M, b.URx, b.URy),
	}
	return q.Bounds()
}

// unitSquare returns the outline of an image painted with the given CTM.
func unitSquare(ctm matrix.Matrix) graphics.Quad {
	o := graphics.OrientationOf(ctm)
	return graphics.OrientedQuad(o,
		graphics.Point(ctm, 0, 0), graphics.Point(ctm, 1, 0),
		graphics.Point(ctm, 0, 1), graphics.Point(ctm, 1, 1))
}
