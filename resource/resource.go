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

// Package resource implements the named resources used by content streams.
//
// Operators in a content stream refer to fonts, graphics state parameter
// dictionaries, color spaces and XObjects by name.  A [Store] resolves these
// names.  [Map] is a Store backed by Go maps, and [FromDict] builds a Map from
// a PDF resource dictionary.
//
// Stores are read-only during content stream interpretation and may be shared
// between pages which are interpreted concurrently.
package resource

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/font"
	"seehuhn.de/go/pagetext/graphics"
)

// ErrNotFound is returned if a resource name is not defined.
var ErrNotFound = errors.New("resource not found")

// Store resolves resource names.
//
// All methods return an error wrapping ErrNotFound if the name is not
// defined.  Implementations must be safe for concurrent use.
type Store interface {
	Font(name pdf.Name) (font.Font, error)
	ExtGState(name pdf.Name) (*ExtGState, error)
	ColorSpace(name pdf.Name) (graphics.ColorSpace, error)
	XObject(name pdf.Name) (XObject, error)
}

// XObject is either a [*Form] or an [*Image].
type XObject interface {
	isXObject()
}

// Form is a form XObject.
//
// See section 8.10 of PDF 32000-1:2008.
type Form struct {
	// Matrix maps form space to the user space of the invoking content
	// stream.
	Matrix matrix.Matrix

	// BBox is the bounding box of the form in form space.
	BBox rect.Rect

	// Content is the tokenized content stream of the form.
	Content []content.Operator

	// Resources are the resources of the form.  If this is nil, the
	// resources of the invoking content stream are used.
	Resources Store
}

// Image is an image XObject.  Images occupy the unit square in user space.
type Image struct {
	Width, Height int
}

func (*Form) isXObject()  {}
func (*Image) isXObject() {}

// Map is a [Store] backed by Go maps.
//
// A Map must not be modified once it is used to interpret content streams.
type Map struct {
	Fonts       map[pdf.Name]font.Font
	ExtGStates  map[pdf.Name]*ExtGState
	ColorSpaces map[pdf.Name]graphics.ColorSpace
	XObjects    map[pdf.Name]XObject
}

var _ Store = (*Map)(nil)

// Font implements the [Store] interface.
func (m *Map) Font(name pdf.Name) (font.Font, error) {
	if F, ok := m.Fonts[name]; ok {
		return F, nil
	}
	return nil, fmt.Errorf("font %q: %w", name, ErrNotFound)
}

// ExtGState implements the [Store] interface.
func (m *Map) ExtGState(name pdf.Name) (*ExtGState, error) {
	if gs, ok := m.ExtGStates[name]; ok {
		return gs, nil
	}
	return nil, fmt.Errorf("ExtGState %q: %w", name, ErrNotFound)
}

// ColorSpace implements the [Store] interface.
func (m *Map) ColorSpace(name pdf.Name) (graphics.ColorSpace, error) {
	if cs, ok := m.ColorSpaces[name]; ok {
		return cs, nil
	}
	return graphics.ColorSpace{}, fmt.Errorf("color space %q: %w", name, ErrNotFound)
}

// XObject implements the [Store] interface.
func (m *Map) XObject(name pdf.Name) (XObject, error) {
	if x, ok := m.XObjects[name]; ok {
		return x, nil
	}
	return nil, fmt.Errorf("XObject %q: %w", name, ErrNotFound)
}
