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

// Package content decodes the operators of PDF content streams.
//
// The tokenizer, which is not part of this package, turns a content stream
// into a sequence of [Operator] values.  [Decode] checks the operands of an
// operator and converts it into one of the operator types defined in this
// package, for example [Concat] for "cm" or [ShowText] for "Tj".  The set of
// operator types is closed: every value of type [Op] has one of the types
// listed in this package, so that interpreters can use an exhaustive type
// switch.
package content
