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

package content

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdf"
)

var (
	// ErrMalformed is returned when the operands of an operator have the
	// wrong number or type.
	ErrMalformed = errors.New("malformed operator")

	// ErrUnsupported is returned when an operator is not recognized.
	ErrUnsupported = errors.New("unsupported operator")
)

// Operator represents a content stream operator with its arguments,
// as produced by the tokenizer.
type Operator struct {
	Name OpName
	Args []pdf.Object
}

// Decode checks the operands of raw and returns the corresponding operator
// value.
//
// If the operator name is not known, the error wraps ErrUnsupported.  If the
// operands are invalid, the error wraps ErrMalformed.
func Decode(raw Operator) (Op, error) {
	dec, ok := decoders[raw.Name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", raw.Name, ErrUnsupported)
	}
	p := &argParser{args: raw.Args}
	op := dec(p)
	if err := p.Check(); err != nil {
		return nil, fmt.Errorf("%q: %w", raw.Name, err)
	}
	return op, nil
}

// argParser provides a scanner-style API for parsing operator arguments.
// After the first error, all methods return zero values.
type argParser struct {
	args []pdf.Object
	err  error
}

var errNotEnough = fmt.Errorf("%w: not enough arguments", ErrMalformed)

func (p *argParser) next() pdf.Object {
	if p.err != nil {
		return nil
	}
	if len(p.args) == 0 {
		p.err = errNotEnough
		return nil
	}
	arg := p.args[0]
	p.args = p.args[1:]
	return arg
}

func (p *argParser) fail(format string, a ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, a...)...)
	}
}

func (p *argParser) GetFloat() float64 {
	arg := p.next()
	if p.err != nil {
		return 0
	}
	x, ok := getNumber(arg)
	if !ok {
		p.fail("expected number, got %T", arg)
	}
	return x
}

func (p *argParser) GetInt() int {
	arg := p.next()
	if p.err != nil {
		return 0
	}
	i, ok := arg.(pdf.Integer)
	if !ok {
		p.fail("expected integer, got %T", arg)
		return 0
	}
	return int(i)
}

func (p *argParser) GetName() pdf.Name {
	arg := p.next()
	if p.err != nil {
		return ""
	}
	name, ok := arg.(pdf.Name)
	if !ok {
		p.fail("expected name, got %T", arg)
		return ""
	}
	return name
}

func (p *argParser) GetArray() pdf.Array {
	arg := p.next()
	if p.err != nil {
		return nil
	}
	arr, ok := arg.(pdf.Array)
	if !ok {
		p.fail("expected array, got %T", arg)
		return nil
	}
	return arr
}

func (p *argParser) GetString() pdf.String {
	arg := p.next()
	if p.err != nil {
		return nil
	}
	str, ok := arg.(pdf.String)
	if !ok {
		p.fail("expected string, got %T", arg)
		return nil
	}
	return str
}

// GetProperties reads the property list operand of "DP" and "BDC", which is
// either an inline dictionary or the name of a resource.
func (p *argParser) GetProperties() pdf.Object {
	arg := p.next()
	if p.err != nil {
		return nil
	}
	switch arg.(type) {
	case pdf.Dict, pdf.Name:
		return arg
	default:
		p.fail("expected dict or name, got %T", arg)
		return nil
	}
}

// Rest returns all remaining arguments.
func (p *argParser) Rest() []pdf.Object {
	rest := p.args
	p.args = nil
	return rest
}

func (p *argParser) Check() error {
	if p.err == nil && len(p.args) > 0 {
		p.err = fmt.Errorf("%w: too many arguments", ErrMalformed)
	}
	return p.err
}

// getNumber converts a numeric operand.  Operands are never references.
func getNumber(obj pdf.Object) (float64, bool) {
	if _, isRef := obj.(pdf.Reference); isRef || obj == nil {
		return 0, false
	}
	x, err := pdf.GetNumber(nil, obj)
	return float64(x), err == nil
}
