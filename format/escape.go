// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package format

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Escape escapes s for use inside a C++ string literal. Quotes, backslashes
// and the usual control characters get their short escapes; any other byte
// outside printable ASCII is written as a three digit octal escape.
//
// Every '?' is also escaped as "\?" so that no "??x" trigraph can appear in
// the literal.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := range len(s) {
		c := s[i]
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if c < 0x20 || c >= 0x7f {
				b.WriteByte('\\')
				b.WriteByte('0' + c>>6)
				b.WriteByte('0' + (c>>3)&7)
				b.WriteByte('0' + c&7)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return escapeTrigraphs(b.String())
}

func escapeTrigraphs(s string) string {
	return strings.ReplaceAll(s, "?", `\?`)
}

// Unescape reverses C-style escaping. Malformed escapes are copied through
// unchanged.
func Unescape(s string) string {
	out := make([]byte, 0, len(s))
	var buf [4]byte
	for len(s) > 0 {
		switch {
		case s[0] != '\\' || len(s) < 2:
			// not escape sequence, or too short to be well-formed escape
			out = append(out, s[0])
			s = s[1:]
		case s[1] == 'x' || s[1] == 'X':
			n := matchPrefix(s[2:], 2, isHex)
			if n == 0 {
				out = append(out, s[:2]...)
				s = s[2:]
				continue
			}
			c, _ := strconv.ParseUint(s[2:2+n], 16, 8)
			out = append(out, byte(c))
			s = s[2+n:]
		case s[1] >= '0' && s[1] <= '7':
			n := 1 + matchPrefix(s[2:], 2, isOctal)
			c, err := strconv.ParseUint(s[1:1+n], 8, 16)
			if err != nil || c > 0xff {
				out = append(out, s[:1+n]...)
			} else {
				out = append(out, byte(c))
			}
			s = s[1+n:]
		case s[1] == 'u' || s[1] == 'U':
			width := 4
			if s[1] == 'U' {
				width = 8
			}
			if len(s) < 2+width {
				out = append(out, s...)
				s = ""
				continue
			}
			c, err := strconv.ParseUint(s[2:2+width], 16, 32)
			if err != nil || c > utf8.MaxRune {
				out = append(out, s[:2+width]...)
			} else {
				w := utf8.EncodeRune(buf[:], rune(c))
				out = append(out, buf[:w]...)
			}
			s = s[2+width:]
		default:
			if c, ok := simpleEscapes[s[1]]; ok {
				out = append(out, c)
			} else {
				out = append(out, s[:2]...)
			}
			s = s[2:]
		}
	}
	return string(out)
}

var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
}

func isOctal(b byte) bool { return b >= '0' && b <= '7' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func matchPrefix(s string, limit int, fn func(byte) bool) int {
	l := min(len(s), limit)
	i := 0
	for ; i < l; i++ {
		if !fn(s[i]) {
			break
		}
	}
	return i
}
