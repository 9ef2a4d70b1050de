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
	"io"
	"math"
	"strconv"

	"seehuhn.de/go/pdf"
)

// ErrSyntax is returned by [Parse] if a content stream cannot be tokenized.
var ErrSyntax = errors.New("content stream syntax error")

// Parse splits a decoded content stream into operators.
//
// Parsing stops at the first syntax error.  In this case the operators read
// so far are returned, together with an error wrapping ErrSyntax.  Operands
// which are not followed by an operator at the end of the stream are a
// syntax error.
//
// The data of inline images is skipped.  The image dictionary entries are
// the operands of the "ID" operator, which is followed by an "EI" operator.
func Parse(data []byte) ([]Operator, error) {
	l := &lexer{data: data}

	var ops []Operator
	var args []pdf.Object
	for {
		obj, kw, err := l.next()
		if err == io.EOF {
			if len(args) > 0 {
				return ops, l.errorf("%d operands without operator", len(args))
			}
			break
		} else if err != nil {
			return ops, err
		}

		switch kw {
		case "":
			args = append(args, obj)
			continue
		case "]", ">>":
			return ops, l.errorf("unexpected %q", kw)
		}

		ops = append(ops, Operator{Name: OpName(kw), Args: args})
		args = nil

		if OpName(kw) == OpInlineImageData {
			err := l.skipImageData()
			if err != nil {
				return ops, err
			}
			ops = append(ops, Operator{Name: OpEndInlineImage})
		}
	}
	return ops, nil
}

// lexer breaks a content stream into PDF objects and keywords.
type lexer struct {
	data []byte
	pos  int
}

// next returns the next object in the input.  If the next token is an
// operator or a closing delimiter, kw is set instead.
func (l *lexer) next() (obj pdf.Object, kw string, err error) {
	l.skipWhiteSpace()
	if l.pos >= len(l.data) {
		return nil, "", io.EOF
	}

	b := l.data[l.pos]
	switch b {
	case '(':
		l.pos++
		s, err := l.readString()
		return s, "", err
	case '<':
		if l.peek(1) == '<' {
			l.pos += 2
			d, err := l.readDict()
			return d, "", err
		}
		l.pos++
		s, err := l.readHexString()
		return s, "", err
	case '>':
		if l.peek(1) == '>' {
			l.pos += 2
			return nil, ">>", nil
		}
		return nil, "", l.errorf("unexpected '>'")
	case '[':
		l.pos++
		a, err := l.readArray()
		return a, "", err
	case ']':
		l.pos++
		return nil, "]", nil
	case '/':
		l.pos++
		name, err := l.readName()
		return name, "", err
	case ')', '{', '}':
		return nil, "", l.errorf("unexpected %q", b)
	}

	start := l.pos
	for l.pos < len(l.data) && class[l.data[l.pos]] == regular {
		l.pos++
	}
	word := l.data[start:l.pos]

	if x, ok := parseNumber(word); ok {
		return x, "", nil
	}
	switch string(word) {
	case "true":
		return pdf.Boolean(true), "", nil
	case "false":
		return pdf.Boolean(false), "", nil
	case "null":
		return nil, "", nil
	}
	return nil, string(word), nil
}

func (l *lexer) readArray() (pdf.Array, error) {
	var a pdf.Array
	for {
		obj, kw, err := l.next()
		if err == io.EOF {
			return nil, l.errorf("unterminated array")
		} else if err != nil {
			return nil, err
		}
		switch kw {
		case "":
			a = append(a, obj)
		case "]":
			return a, nil
		default:
			return nil, l.errorf("unexpected %q in array", kw)
		}
	}
}

func (l *lexer) readDict() (pdf.Dict, error) {
	var entries []pdf.Object
	for {
		obj, kw, err := l.next()
		if err == io.EOF {
			return nil, l.errorf("unterminated dictionary")
		} else if err != nil {
			return nil, err
		}
		if kw == ">>" {
			break
		} else if kw != "" {
			return nil, l.errorf("unexpected %q in dictionary", kw)
		}
		entries = append(entries, obj)
	}

	if len(entries)%2 != 0 {
		return nil, l.errorf("odd number of dictionary entries")
	}
	d := pdf.Dict{}
	for i := 0; i < len(entries); i += 2 {
		key, ok := entries[i].(pdf.Name)
		if !ok {
			return nil, l.errorf("invalid dictionary key %v", entries[i])
		}
		if entries[i+1] != nil {
			d[key] = entries[i+1]
		}
	}
	return d, nil
}

// readString reads a literal string.  The opening parenthesis has already
// been consumed.
func (l *lexer) readString() (pdf.String, error) {
	var res []byte
	level := 1
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		l.pos++
		switch b {
		case '(':
			level++
		case ')':
			level--
			if level == 0 {
				return pdf.String(res), nil
			}
		case '\r':
			// an end-of-line marker is read as a single LF
			if l.peek(0) == '\n' {
				l.pos++
			}
			b = '\n'
		case '\\':
			if l.pos >= len(l.data) {
				break
			}
			b = l.data[l.pos]
			l.pos++
			switch b {
			case 'n':
				b = '\n'
			case 'r':
				b = '\r'
			case 't':
				b = '\t'
			case 'b':
				b = '\b'
			case 'f':
				b = '\f'
			case '\r':
				if l.peek(0) == '\n' {
					l.pos++
				}
				continue
			case '\n':
				continue
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := b - '0'
				for i := 0; i < 2; i++ {
					c := l.peek(0)
					if c < '0' || c > '7' {
						break
					}
					l.pos++
					oct = oct*8 + (c - '0')
				}
				b = oct
			}
		}
		res = append(res, b)
	}
	return nil, l.errorf("unterminated string")
}

// readHexString reads a hexadecimal string.  The opening angle bracket has
// already been consumed.
func (l *lexer) readHexString() (pdf.String, error) {
	var res []byte
	var hi byte
	first := true
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		l.pos++
		if b == '>' {
			if !first {
				res = append(res, hi)
			}
			return pdf.String(res), nil
		}
		if class[b] == space {
			continue
		}
		lo, ok := hexDigit(b)
		if !ok {
			return nil, l.errorf("invalid hex digit %q", b)
		}
		if first {
			hi = lo << 4
		} else {
			res = append(res, hi|lo)
		}
		first = !first
	}
	return nil, l.errorf("unterminated hex string")
}

// readName reads a name object.  The leading slash has already been
// consumed.
func (l *lexer) readName() (pdf.Name, error) {
	var name []byte
	for l.pos < len(l.data) {
		b := l.data[l.pos]
		if class[b] != regular {
			break
		}
		l.pos++
		if b == '#' {
			if l.pos+2 > len(l.data) {
				return "", l.errorf("truncated name escape")
			}
			hi, ok1 := hexDigit(l.data[l.pos])
			lo, ok2 := hexDigit(l.data[l.pos+1])
			if !ok1 || !ok2 {
				return "", l.errorf("invalid name escape")
			}
			l.pos += 2
			b = hi<<4 | lo
		}
		name = append(name, b)
	}
	return pdf.Name(name), nil
}

// skipImageData skips the data of an inline image, including the closing
// "EI" operator.
func (l *lexer) skipImageData() error {
	// a single white-space character separates "ID" from the data
	if l.pos < len(l.data) {
		l.pos++
	}
	for i := l.pos; i+2 <= len(l.data); i++ {
		if l.data[i] != 'E' || l.data[i+1] != 'I' {
			continue
		}
		if i > 0 && class[l.data[i-1]] != space {
			continue
		}
		if i+2 < len(l.data) && class[l.data[i+2]] != space {
			continue
		}
		l.pos = i + 2
		return nil
	}
	l.pos = len(l.data)
	return l.errorf("missing EI after inline image data")
}

func (l *lexer) skipWhiteSpace() {
	for l.pos < len(l.data) {
		switch b := l.data[l.pos]; {
		case class[b] == space:
			l.pos++
		case b == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

// peek returns the byte at offset k from the current position, or 0 at the
// end of input.
func (l *lexer) peek(k int) byte {
	if l.pos+k < len(l.data) {
		return l.data[l.pos+k]
	}
	return 0
}

func (l *lexer) errorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return fmt.Errorf("%w: offset %d: %s", ErrSyntax, l.pos, msg)
}

func parseNumber(s []byte) (pdf.Object, bool) {
	if len(s) == 0 {
		return nil, false
	}
	if x, err := strconv.ParseInt(string(s), 10, 64); err == nil {
		return pdf.Integer(x), true
	}

	seenDigit := false
	for i, c := range s {
		switch {
		case i == 0 && (c == '+' || c == '-'):
		case c == '.':
		case c >= '0' && c <= '9':
			seenDigit = true
		default:
			return nil, false
		}
	}
	if !seenDigit {
		return nil, false
	}
	y, err := strconv.ParseFloat(string(s), 64)
	if err != nil || math.IsInf(y, 0) || math.IsNaN(y) {
		return nil, false
	}
	return pdf.Real(y), true
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

type characterClass byte

const (
	regular characterClass = iota
	space
	delimiter
)

var class [256]characterClass

func init() {
	for _, b := range []byte{0, 9, 10, 12, 13, 32} {
		class[b] = space
	}
	for _, b := range []byte("()<>[]{}/%") {
		class[b] = delimiter
	}
}
