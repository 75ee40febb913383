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

package insert

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// indentUnit is the text added per indentation level.
const indentUnit = "  "

// Printer writes lines of generated text to an artifact, indenting each line
// to the current level.
//
// The first write error is latched: later calls do nothing and Err reports
// it.
type Printer struct {
	w     io.Writer
	point string
	level int
	buf   strings.Builder
	err   error
}

// NewPrinter returns a Printer writing to w. The name is used in error
// messages only.
func NewPrinter(w io.Writer, name string) *Printer {
	return &Printer{w: w, point: name}
}

// P writes the concatenation of the string forms of v, followed by a
// newline. If the text contains newlines, every line is indented. Empty
// lines are not.
func (p *Printer) P(v ...any) {
	p.buf.Reset()
	for _, x := range v {
		fmt.Fprint(&p.buf, x)
	}
	p.write(p.buf.String())
}

// Pf writes a formatted line, like P(fmt.Sprintf(format, args...)).
func (p *Printer) Pf(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...))
}

func (p *Printer) write(text string) {
	if p.err != nil {
		return
	}
	prefix := strings.Repeat(indentUnit, p.level)
	var out strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line != "" {
			out.WriteString(prefix)
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}
	if _, err := io.WriteString(p.w, out.String()); err != nil {
		p.err = fmt.Errorf("writing to %s: %w", p.point, err)
	}
}

// Indent increases the indentation of subsequent lines by one level.
func (p *Printer) Indent() {
	p.level++
}

// Outdent decreases the indentation of subsequent lines by one level. An
// unmatched Outdent is an error.
func (p *Printer) Outdent() {
	if p.level == 0 {
		if p.err == nil {
			p.err = fmt.Errorf("%s: %w", p.point, errUnbalanced)
		}
		return
	}
	p.level--
}

var errUnbalanced = errors.New("outdent without matching indent")

// Err returns the first error encountered while writing.
func (p *Printer) Err() error {
	return p.err
}
