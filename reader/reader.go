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

// Package reader interprets the content stream of a PDF page.
//
// A [Reader] applies content stream operators to a graphics state and
// records one [Letter] for every glyph shown, together with the painted
// paths and the outlines of images.  Problems in the content stream are
// recorded as warnings in the resulting [Page]; interpretation always
// continues with the next operator.
package reader

import (
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/graphics"
	"seehuhn.de/go/pagetext/resource"
)

// Options control the interpretation of content streams.
// The zero value selects the defaults.
type Options struct {
	// Logger receives the warnings for each page.  If this is nil, no
	// messages are logged.
	Logger *slog.Logger

	// MaxFormDepth is the maximum nesting depth of form XObjects.
	// The default is 16.
	MaxFormDepth int

	// Workers is the number of pages which [ReadPages] interprets in
	// parallel.  The default is runtime.GOMAXPROCS(0).
	Workers int

	// IncludeInvisible selects whether glyphs in text rendering modes 3
	// and 7 are recorded.  Such text is used, for example, for the OCR
	// layer of scanned documents.
	IncludeInvisible bool
}

const defaultMaxFormDepth = 16

// A Reader interprets content streams.
//
// A Reader is not safe for concurrent use.  Use one Reader per goroutine,
// or use [ReadPages].
type Reader struct {
	res    resource.Store
	opt    Options
	logger *slog.Logger

	stack *graphics.Stack
	page  *Page

	// index is the position of the current operator in the content stream.
	index int

	// minDepth is the stack depth below which "Q" is not allowed.  This
	// is increased while a form XObject is executed.
	minDepth  int
	formDepth int

	// compat counts the open "BX" operators.
	compat int

	path pathBuilder
}

// New returns a Reader which looks up resources in res.
// If opt is nil, the default options are used.
func New(res resource.Store, opt *Options) *Reader {
	r := &Reader{res: res}
	if opt != nil {
		r.opt = *opt
	}
	if r.opt.MaxFormDepth <= 0 {
		r.opt.MaxFormDepth = defaultMaxFormDepth
	}
	r.logger = r.opt.Logger
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.res == nil {
		r.res = &resource.Map{}
	}
	r.Reset()
	return r
}

// Reset discards all state and starts a new page.
func (r *Reader) Reset() {
	r.stack = graphics.NewStack(nil)
	r.page = &Page{}
	r.index = 0
	r.minDepth = 1
	r.formDepth = 0
	r.compat = 0
	r.path.reset()
}

// State returns the current graphics state.
// The returned value must not be modified by the caller.
func (r *Reader) State() *graphics.State {
	return r.stack.Current()
}

// Run interprets a complete content stream and returns the result.
func (r *Reader) Run(ops []content.Operator) *Page {
	r.Reset()
	for _, op := range ops {
		r.Step(op)
	}
	return r.Finish()
}

// Step interprets a single operator.  Calls to Step can be interleaved with
// inspection of [Reader.State].
func (r *Reader) Step(raw content.Operator) {
	r.step(raw)
	r.index++
}

// Finish completes the current page and returns the result.
// After Finish, the Reader is ready for a new page.
func (r *Reader) Finish() *Page {
	p := r.page
	p.StackDepth = r.stack.Depth()
	if p.StackDepth != 1 {
		r.warn("", fmt.Errorf("%w: depth %d at end of content", ErrUnbalancedStack, p.StackDepth))
	}
	r.Reset()
	return p
}

func (r *Reader) step(raw content.Operator) {
	op, err := content.Decode(raw)
	if errors.Is(err, content.ErrUnsupported) && r.compat > 0 {
		r.logger.Debug("skipping operator in compatibility section",
			slog.String("op", string(raw.Name)))
		return
	}
	if err != nil {
		r.warn(raw.Name, err)
		return
	}
	r.apply(op)
}

// warn records a problem with the current operator.
func (r *Reader) warn(name content.OpName, err error) {
	opErr := &OpError{Index: r.index, Op: name, Err: err}
	r.page.Warnings = append(r.page.Warnings, opErr)
	r.logger.Warn("content stream",
		slog.Int("index", r.index),
		slog.String("op", string(name)),
		slog.Any("error", err))
}

// apply updates the graphics state for a decoded operator.
func (r *Reader) apply(op content.Op) {
	s := r.stack.Current()

	switch op := op.(type) {

	// == General graphics state =========================================

	case content.PushState:
		r.stack.Push()

	case content.PopState:
		if r.stack.Depth() <= r.minDepth {
			r.warn(op.Name(), ErrStackUnderflow)
			break
		}
		if err := r.stack.Pop(); err != nil {
			r.warn(op.Name(), err)
		}

	case content.Concat:
		s.CTM = op.Matrix.Mul(s.CTM)

	case content.SetLineWidth:
		s.LineWidth = op.Width

	case content.SetLineCap:
		s.LineCap = op.Cap

	case content.SetLineJoin:
		s.LineJoin = op.Join

	case content.SetMiterLimit:
		s.MiterLimit = op.Limit

	case content.SetLineDash:
		s.Dash = op.Pattern.Clone()

	case content.SetRenderingIntent:
		s.RenderingIntent = op.Intent

	case content.SetFlatness:
		s.Flatness = op.Flatness

	case content.SetExtGState:
		gs, err := r.res.ExtGState(op.Dict)
		if err != nil {
			r.warn(op.Name(), err)
			break
		}
		gs.ApplyTo(s)

	// == Paths ==========================================================

	case content.MoveTo:
		r.path.moveTo(graphics.Point(s.CTM, op.X, op.Y))

	case content.LineTo:
		if err := r.path.lineTo(graphics.Point(s.CTM, op.X, op.Y)); err != nil {
			r.warn(op.Name(), err)
		}

	case content.CurveTo:
		err := r.path.curveTo(
			graphics.Point(s.CTM, op.X1, op.Y1),
			graphics.Point(s.CTM, op.X2, op.Y2),
			graphics.Point(s.CTM, op.X3, op.Y3))
		if err != nil {
			r.warn(op.Name(), err)
		}

	case content.CurveToV:
		err := r.path.curveTo(
			r.path.current,
			graphics.Point(s.CTM, op.X2, op.Y2),
			graphics.Point(s.CTM, op.X3, op.Y3))
		if err != nil {
			r.warn(op.Name(), err)
		}

	case content.CurveToY:
		p3 := graphics.Point(s.CTM, op.X3, op.Y3)
		err := r.path.curveTo(graphics.Point(s.CTM, op.X1, op.Y1), p3, p3)
		if err != nil {
			r.warn(op.Name(), err)
		}

	case content.ClosePath:
		r.path.closePath()

	case content.Rectangle:
		r.path.rectangle(s.CTM, op.X, op.Y, op.Width, op.Height)

	case content.PaintPath:
		r.paint(s, op)

	case content.Clip:
		r.path.clip = true

	// == Text ===========================================================

	case content.BeginText:
		s.Text.Tm = matrix.Identity
		s.Text.Tlm = matrix.Identity

	case content.EndText:

	case content.SetCharSpacing:
		s.Text.CharSpacing = op.Spacing

	case content.SetWordSpacing:
		s.Text.WordSpacing = op.Spacing

	case content.SetHorizScaling:
		s.Text.HorizScaling = op.Percent / 100

	case content.SetLeading:
		s.Text.Leading = op.Leading

	case content.SetFont:
		s.Text.FontRef = op.Font
		s.Text.FontSize = op.Size
		F, err := r.res.Font(op.Font)
		if err != nil {
			s.Text.Font = nil
			r.warn(op.Name(), err)
			break
		}
		s.Text.Font = F

	case content.SetRenderMode:
		s.Text.RenderMode = op.Mode

	case content.SetRise:
		s.Text.Rise = op.Rise

	case content.MoveText:
		moveText(&s.Text, op.Tx, op.Ty)

	case content.MoveTextSetLeading:
		s.Text.Leading = -op.Ty
		moveText(&s.Text, op.Tx, op.Ty)

	case content.SetTextMatrix:
		s.Text.Tm = op.Matrix
		s.Text.Tlm = op.Matrix

	case content.NextLine:
		moveText(&s.Text, 0, -s.Text.Leading)

	case content.ShowText:
		r.showText(op.Name(), s, op.Text)

	case content.ShowTextArray:
		for _, item := range op.Items {
			if item.Text != nil {
				r.showText(op.Name(), s, item.Text)
				continue
			}
			tx := -item.Kern / 1000 * s.Text.FontSize * s.Text.HorizScaling
			s.Text.Tm = matrix.Translate(tx, 0).Mul(s.Text.Tm)
		}

	case content.NextLineShowText:
		moveText(&s.Text, 0, -s.Text.Leading)
		r.showText(op.Name(), s, op.Text)

	case content.NextLineShowTextSpacing:
		s.Text.WordSpacing = op.WordSpacing
		s.Text.CharSpacing = op.CharSpacing
		moveText(&s.Text, 0, -s.Text.Leading)
		r.showText(op.Name(), s, op.Text)

	// == Type 3 fonts ===================================================

	case content.SetGlyphWidth, content.SetGlyphWidthAndBBox:
		// only used inside glyph descriptions

	// == Color ==========================================================

	case content.SetColorSpace:
		cs, ok := graphics.DeviceSpace(op.Space)
		if !ok {
			var err error
			cs, err = r.res.ColorSpace(op.Space)
			if err != nil {
				r.warn(op.Name(), err)
				break
			}
		}
		if op.Stroke {
			s.StrokeColor = cs.InitialColor()
		} else {
			s.FillColor = cs.InitialColor()
		}

	case content.SetColor:
		target := &s.FillColor
		if op.Stroke {
			target = &s.StrokeColor
		}
		space := target.Space
		if space.Family != "Pattern" && (len(op.Values) != space.N || op.Pattern != "") {
			r.warn(op.Name(), fmt.Errorf("%w: %d values for color space %s",
				ErrMalformedOperator, len(op.Values), space.Family))
			break
		}
		*target = graphics.Color{
			Space:   space,
			Values:  append([]float64(nil), op.Values...),
			Pattern: op.Pattern,
		}

	case content.SetGray:
		r.setColor(s, op.Stroke, graphics.Gray(op.Gray))

	case content.SetRGB:
		r.setColor(s, op.Stroke, graphics.RGB(op.R, op.G, op.B))

	case content.SetCMYK:
		r.setColor(s, op.Stroke, graphics.CMYK(op.C, op.M, op.Y, op.K))

	// == Shading, XObjects and images ===================================

	case content.PaintShading:
		// shadings are clipped to the current clipping path and leave no
		// geometry of their own

	case content.PaintXObject:
		r.paintXObject(s, op)

	case content.InlineImage:
		if op.Op == content.OpEndInlineImage {
			r.page.Images = append(r.page.Images, unitSquare(s.CTM))
		}

	// == Marked content and compatibility ===============================

	case content.MarkedContent, content.EndMarkedContent:

	case content.BeginCompatibility:
		r.compat++

	case content.EndCompatibility:
		if r.compat > 0 {
			r.compat--
		}

	default:
		panic(fmt.Sprintf("reader: unexpected operator type %T", op))
	}
}

func (r *Reader) setColor(s *graphics.State, stroke bool, c graphics.Color) {
	if stroke {
		s.StrokeColor = c
	} else {
		s.FillColor = c
	}
}

func (r *Reader) paintXObject(s *graphics.State, op content.PaintXObject) {
	x, err := r.res.XObject(op.XObject)
	if err != nil {
		r.warn(op.Name(), err)
		return
	}

	switch x := x.(type) {
	case *resource.Image:
		r.page.Images = append(r.page.Images, unitSquare(s.CTM))
	case *resource.Form:
		if r.formDepth >= r.opt.MaxFormDepth {
			r.warn(op.Name(), fmt.Errorf("form %q: %w", op.XObject, ErrFormRecursion))
			return
		}
		r.runForm(x)
	}
}

// runForm executes the content stream of a form XObject.
//
// See section 8.10.1 of PDF 32000-1:2008.
func (r *Reader) runForm(form *resource.Form) {
	depth := r.stack.Depth()
	r.stack.Push()
	s := r.stack.Current()

	M := form.Matrix
	if M == (matrix.Matrix{}) {
		M = matrix.Identity
	}
	s.CTM = M.Mul(s.CTM)
	if form.BBox != (rect.Rect{}) {
		s.Clip = intersect(s.Clip, transformRect(s.CTM, form.BBox))
	}

	savedRes, savedMin, savedCompat := r.res, r.minDepth, r.compat
	if form.Resources != nil {
		r.res = form.Resources
	}
	r.minDepth = depth + 1
	r.compat = 0
	r.formDepth++
	r.path.reset()

	for _, raw := range form.Content {
		r.step(raw)
	}

	r.formDepth--
	r.res, r.minDepth, r.compat = savedRes, savedMin, savedCompat
	r.path.reset()
	for r.stack.Depth() > depth {
		_ = r.stack.Pop()
	}
}

func moveText(t *graphics.TextState, tx, ty float64) {
	t.Tlm = matrix.Translate(tx, ty).Mul(t.Tlm)
	t.Tm = t.Tlm
}
