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

package resource

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pagetext/content"
)

func (c *converter) toUnicode(stm *pdf.Stream) (map[byte]string, error) {
	data, err := c.opt.StreamData(stm)
	if err != nil {
		return nil, err
	}
	return ParseToUnicode(data)
}

// ParseToUnicode reads the bfchar and bfrange sections of a ToUnicode CMap
// for a simple font.  Only single-byte codes are used.
//
// CMap files are PostScript, but the subset used in ToUnicode CMaps can be
// tokenized like a content stream.  If the data is malformed, the mappings
// found before the error are returned.
func ParseToUnicode(data []byte) (map[byte]string, error) {
	ops, err := content.Parse(data)

	res := make(map[byte]string)
	for _, op := range ops {
		switch op.Name {
		case "endbfchar":
			for i := 0; i+1 < len(op.Args); i += 2 {
				src, ok1 := op.Args[i].(pdf.String)
				dst, ok2 := op.Args[i+1].(pdf.String)
				if !ok1 || !ok2 || len(src) != 1 {
					continue
				}
				res[src[0]] = utf16Text(dst)
			}

		case "endbfrange":
			for i := 0; i+2 < len(op.Args); i += 3 {
				lo, ok1 := op.Args[i].(pdf.String)
				hi, ok2 := op.Args[i+1].(pdf.String)
				if !ok1 || !ok2 || len(lo) != 1 || len(hi) != 1 || lo[0] > hi[0] {
					continue
				}
				first, last := int(lo[0]), int(hi[0])
				switch dst := op.Args[i+2].(type) {
				case pdf.String:
					// the last byte of the destination is incremented
					for code := first; code <= last; code++ {
						buf := bytes.Clone([]byte(dst))
						if len(buf) > 0 {
							buf[len(buf)-1] += byte(code - first)
						}
						res[byte(code)] = utf16Text(buf)
					}
				case pdf.Array:
					for k, obj := range dst {
						if first+k > last {
							break
						}
						if s, ok := obj.(pdf.String); ok {
							res[byte(first+k)] = utf16Text(s)
						}
					}
				}
			}
		}
	}

	if err != nil && len(res) == 0 {
		return nil, fmt.Errorf("ToUnicode cmap: %w", err)
	}
	return res, nil
}

var utf16 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func utf16Text(b []byte) string {
	s, err := utf16.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(s)
}
