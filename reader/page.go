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
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/graphics"
)

// Letter is one glyph shown on a page.
//
// All coordinates are in default user space, with the origin in the
// bottom-left corner of the page.
type Letter struct {
	// Text is the Unicode text represented by the glyph.  This may be
	// empty if the text cannot be determined.
	Text string

	// Quad is the glyph box.  The box spans the advance width of the glyph
	// and the font's descent to ascent range.
	Quad        graphics.Quad
	Orientation graphics.Orientation

	// StartBaseline and EndBaseline are the ends of the glyph's baseline
	// segment.
	StartBaseline vec.Vec2
	EndBaseline   vec.Vec2

	// Font is the name of the font in the resource dictionary, and
	// FontName is the PostScript name of the font.
	Font     pdf.Name
	FontName string

	// FontSize is the size set by the "Tf" operator.  PointSize is the
	// resulting em size on the page.
	FontSize  float64
	PointSize float64

	Color      graphics.Color
	RenderMode graphics.TextRenderingMode
}

// Segment is one element of a path, in default user space.
type Segment struct {
	// Op is one of "m", "l", "c" and "h".
	Op content.OpName

	// Points holds one point for "m" and "l", three points for "c", and
	// none for "h".
	Points []vec.Vec2
}

// Path is a painted path.
type Path struct {
	Segments []Segment

	Stroke  bool
	Fill    bool
	EvenOdd bool

	LineWidth   float64
	Dash        graphics.DashPattern
	StrokeColor graphics.Color
	FillColor   graphics.Color
}

// Page is the result of interpreting a content stream.
type Page struct {
	// Letters holds the glyphs in content stream order.
	Letters []Letter

	Paths []Path

	// Images holds the outlines of image XObjects and inline images.
	Images []graphics.Quad

	// StackDepth is the depth of the graphics state stack at the end of
	// the content stream.  This is 1 for well-formed content.
	StackDepth int

	// Warnings lists the problems found while interpreting the content
	// stream.  All elements are of type *OpError.
	Warnings []error
}

// FlipY converts all coordinates on the page to a coordinate system with
// the origin in the top-left corner of a page of the given height.
// The page is modified in place.
func (p *Page) FlipY(height float64) {
	flip := func(v vec.Vec2) vec.Vec2 {
		return vec.Vec2{X: v.X, Y: height - v.Y}
	}
	for i := range p.Letters {
		l := &p.Letters[i]
		l.Quad = l.Quad.FlipY(height)
		l.StartBaseline = flip(l.StartBaseline)
		l.EndBaseline = flip(l.EndBaseline)
	}
	for i := range p.Paths {
		for _, seg := range p.Paths[i].Segments {
			for j, pt := range seg.Points {
				seg.Points[j] = flip(pt)
			}
		}
	}
	for i, q := range p.Images {
		p.Images[i] = q.FlipY(height)
	}
}
