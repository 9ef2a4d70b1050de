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

// Package layout groups the glyphs on a page into words.
//
// Words are found by nearest-neighbour clustering: every glyph is appended
// to the closest word which ends just before the glyph, along the reading
// direction of the text.  Glyphs are considered in content stream order, so
// the result does not depend on the page position of the text.
package layout

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pagetext/graphics"
	"seehuhn.de/go/pagetext/reader"
)

// Options control the word extraction.  All distances are given as
// multiples of the glyph height.  Zero values select the defaults.
type Options struct {
	// MaxGap is the largest gap between the end of a word and the start of
	// the next glyph, along the reading direction (default: 0.2).
	MaxGap float64

	// MaxOverlap is the largest distance by which a glyph may start before
	// the end of the word, for example because of kerning (default: 0.5).
	MaxOverlap float64

	// MaxOffset is the largest baseline offset perpendicular to the reading
	// direction (default: 0.3).
	MaxOffset float64
}

// Word is a sequence of glyphs without whitespace between them.
type Word struct {
	// Letters holds the glyphs of the word, in content stream order.
	Letters []reader.Letter

	// Text is the text of the word, in Unicode normalization form C.
	Text string

	Orientation graphics.Orientation

	// Quad is the smallest rectangle aligned with the reading direction
	// which contains the glyph boxes of all letters.
	Quad graphics.Quad

	// Bounds is the axis-aligned bounding box of Quad.
	Bounds rect.Rect
}

// Extractor groups letters into words.
// An Extractor has no mutable state and can be used concurrently.
type Extractor struct {
	maxGap, maxOverlap, maxOffset float64
}

// New returns an Extractor with the given options.
// If opt is nil, the defaults are used.
func New(opt *Options) *Extractor {
	e := &Extractor{maxGap: 0.2, maxOverlap: 0.5, maxOffset: 0.3}
	if opt != nil {
		if opt.MaxGap > 0 {
			e.maxGap = opt.MaxGap
		}
		if opt.MaxOverlap > 0 {
			e.maxOverlap = opt.MaxOverlap
		}
		if opt.MaxOffset > 0 {
			e.maxOffset = opt.MaxOffset
		}
	}
	return e
}

// candidate is a word under construction.
type candidate struct {
	letters []reader.Letter
	o       graphics.Orientation

	// end is the end of the baseline of the last letter.
	end    vec.Vec2
	height float64

	closed bool
}

// Words groups the letters into words.  Letters with empty or whitespace
// text end the nearest word and are not part of any word.  The words are
// returned in the order of their first letter.
//
// For a given input, the result is always the same.  If two words are at
// the same distance from a letter, the letter is added to the word which
// was started first.
func (e *Extractor) Words(letters []reader.Letter) []Word {
	var words []*candidate
	for _, l := range letters {
		space := isSpace(l.Text)
		best := e.nearest(words, &l, space)

		switch {
		case space:
			if best != nil {
				best.closed = true
			}
		case best != nil:
			best.letters = append(best.letters, l)
			best.end = l.EndBaseline
			best.height = max(best.height, letterHeight(&l))
		default:
			words = append(words, &candidate{
				letters: []reader.Letter{l},
				o:       l.Orientation,
				end:     l.EndBaseline,
				height:  letterHeight(&l),
			})
		}
	}

	res := make([]Word, len(words))
	for i, w := range words {
		res[i] = w.finish()
	}
	return res
}

// nearest returns the open word which l can extend, or nil if there is none.
// For whitespace letters, the gap is measured from the end of the whitespace,
// so that any word ending inside the whitespace is found.
func (e *Extractor) nearest(words []*candidate, l *reader.Letter, space bool) *candidate {
	var best *candidate
	bestDist := math.Inf(1)
	for _, w := range words {
		if w.closed || w.o != l.Orientation {
			continue
		}

		h := max(w.height, letterHeight(l))
		axis, normal := w.o.Axis(), w.o.Normal()
		d := l.StartBaseline.Sub(w.end)
		gap := d.Dot(axis)
		offset := math.Abs(d.Dot(normal))

		if space {
			// whitespace may start anywhere between the word and the gap limit
			gap = max(gap, 0)
		}
		if gap > e.maxGap*h || gap < -e.maxOverlap*h || offset > e.maxOffset*h {
			continue
		}

		dist := math.Abs(gap) + offset
		if dist < bestDist {
			best = w
			bestDist = dist
		}
	}
	return best
}

// finish computes the text and geometry of a word.
func (w *candidate) finish() Word {
	var b strings.Builder
	for _, l := range w.letters {
		b.WriteString(l.Text)
	}

	axis, normal := w.o.Axis(), w.o.Normal()
	origin := w.letters[0].StartBaseline
	sMin, sMax := math.Inf(1), math.Inf(-1)
	tMin, tMax := math.Inf(1), math.Inf(-1)
	for _, l := range w.letters {
		q := l.Quad
		for _, p := range []vec.Vec2{q.BottomLeft, q.BottomRight, q.TopLeft, q.TopRight} {
			d := p.Sub(origin)
			s, t := d.Dot(axis), d.Dot(normal)
			sMin, sMax = min(sMin, s), max(sMax, s)
			tMin, tMax = min(tMin, t), max(tMax, t)
		}
	}
	at := func(s, t float64) vec.Vec2 {
		return origin.Add(axis.Mul(s)).Add(normal.Mul(t))
	}
	quad := graphics.OrientedQuad(w.o,
		at(sMin, tMin), at(sMax, tMin), at(sMin, tMax), at(sMax, tMax))

	return Word{
		Letters:     w.letters,
		Text:        norm.NFC.String(b.String()),
		Orientation: w.o,
		Quad:        quad,
		Bounds:      quad.Bounds(),
	}
}

// letterHeight returns the height of a glyph box, falling back to the
// font size for degenerate boxes.
func letterHeight(l *reader.Letter) float64 {
	h := l.Quad.Height(l.Orientation)
	if h > 0 {
		return h
	}
	return l.PointSize
}

func isSpace(text string) bool {
	return strings.TrimSpace(text) == ""
}
