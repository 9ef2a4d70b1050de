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
	"errors"
	"fmt"

	"seehuhn.de/go/pagetext/content"
	"seehuhn.de/go/pagetext/graphics"
	"seehuhn.de/go/pagetext/resource"
)

// These errors are recorded as warnings while a page is interpreted.
// None of them stops the interpretation.
var (
	// ErrMalformedOperator indicates an operator with the wrong number or
	// type of operands.  The operator is skipped.
	ErrMalformedOperator = content.ErrMalformed

	// ErrStackUnderflow indicates a "Q" operator without a matching "q".
	// The operator is ignored.
	ErrStackUnderflow = graphics.ErrStackUnderflow

	// ErrMissingResource indicates a reference to an undefined font,
	// graphics state parameter dictionary, color space or XObject.
	ErrMissingResource = resource.ErrNotFound

	// ErrUnsupportedOperator indicates an unknown operator outside a
	// "BX"/"EX" compatibility section.
	ErrUnsupportedOperator = content.ErrUnsupported

	// ErrGeometryDegenerate indicates a glyph transformation with zero
	// determinant.  The glyphs are still emitted, with zero area.
	ErrGeometryDegenerate = errors.New("degenerate glyph transformation")

	// ErrUnbalancedStack indicates that "q" and "Q" operators do not match
	// at the end of the content stream.
	ErrUnbalancedStack = errors.New("unbalanced graphics state stack")

	// ErrFormRecursion indicates that form XObjects are nested too deeply.
	ErrFormRecursion = errors.New("form XObjects nested too deeply")
)

// OpError describes a problem with one operator of a content stream.
type OpError struct {
	// Index is the position of the operator in the content stream.
	// For problems inside a form XObject, this is the position of the "Do"
	// operator.
	Index int

	Op  content.OpName
	Err error
}

func (err *OpError) Error() string {
	return fmt.Sprintf("operator %d %q: %v", err.Index, err.Op, err.Err)
}

func (err *OpError) Unwrap() error {
	return err.Err
}
