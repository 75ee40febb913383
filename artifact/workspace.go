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

// Package artifact holds generated artifacts in memory and applies
// insertions to them the way protoc does.
//
// A Workspace is a host for generators: it implements
// insert.ArtifactContext. Output is staged until Commit, so a file whose
// generation fails can be dropped with Discard without touching any
// artifact.
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bufbuild/protoinject/insert"
)

var (
	// ErrNotFound is returned when inserting into an artifact that does not
	// exist.
	ErrNotFound = errors.New("artifact not found")
	// ErrNoInsertionPoint is returned when an artifact has no marker for the
	// requested insertion point.
	ErrNoInsertionPoint = errors.New("insertion point not found")
	// ErrExists is returned when creating an artifact that already exists.
	ErrExists = errors.New("artifact already exists")
)

// Marker returns the text that marks an insertion point in an artifact.
func Marker(point string) string {
	return "@@protoc_insertion_point(" + point + ")"
}

type artifact struct {
	content []byte
	changed bool
}

// staged output, applied on Commit.
type insertion struct {
	artifact string
	point    string
	buf      bytes.Buffer
}

type creation struct {
	name string
	buf  bytes.Buffer
}

// Workspace is an in-memory set of artifacts.
type Workspace struct {
	artifacts  map[string]*artifact
	insertions []*insertion
	creations  []*creation
}

var _ insert.ArtifactContext = (*Workspace)(nil)

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{artifacts: make(map[string]*artifact)}
}

// Add adds an existing artifact, replacing any artifact of the same name.
func (w *Workspace) Add(name string, content []byte) {
	w.artifacts[name] = &artifact{content: content}
}

// Get returns the committed content of an artifact.
func (w *Workspace) Get(name string) ([]byte, bool) {
	a, ok := w.artifacts[name]
	if !ok {
		return nil, false
	}
	return a.content, true
}

// Names returns the names of all committed artifacts, sorted.
func (w *Workspace) Names() []string {
	names := make([]string, 0, len(w.artifacts))
	for name := range w.artifacts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Changed returns the names of artifacts that were created or modified by
// commits, sorted.
func (w *Workspace) Changed() []string {
	var names []string
	for name, a := range w.artifacts {
		if a.changed {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (w *Workspace) staged(name string) *creation {
	for _, c := range w.creations {
		if c.name == name {
			return c
		}
	}
	return nil
}

// OpenForInsert implements insert.ArtifactContext. The artifact must exist,
// either committed or created earlier in the same batch. For committed
// artifacts the marker is checked right away; for staged ones, on Commit.
func (w *Workspace) OpenForInsert(name, point string) (io.Writer, error) {
	if a, ok := w.artifacts[name]; ok {
		if !bytes.Contains(a.content, []byte(Marker(point))) {
			return nil, fmt.Errorf("%w: %s in %s", ErrNoInsertionPoint, point, name)
		}
	} else if w.staged(name) == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	ins := &insertion{artifact: name, point: point}
	w.insertions = append(w.insertions, ins)
	return &ins.buf, nil
}

// OpenNew implements insert.ArtifactContext.
func (w *Workspace) OpenNew(name string) (io.Writer, error) {
	if _, ok := w.artifacts[name]; ok || w.staged(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}
	c := &creation{name: name}
	w.creations = append(w.creations, c)
	return &c.buf, nil
}

// Commit applies staged output: new artifacts first, then insertions in the
// order they were opened. If any insertion cannot be applied, nothing is
// committed, and the staged output is discarded.
func (w *Workspace) Commit() error {
	defer w.Discard()

	updated := make(map[string][]byte)
	current := func(name string) ([]byte, bool) {
		if content, ok := updated[name]; ok {
			return content, true
		}
		return w.Get(name)
	}
	for _, c := range w.creations {
		updated[c.name] = c.buf.Bytes()
	}
	for _, ins := range w.insertions {
		content, ok := current(ins.artifact)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, ins.artifact)
		}
		spliced, err := Splice(content, ins.point, ins.buf.Bytes())
		if err != nil {
			return fmt.Errorf("%s: %w", ins.artifact, err)
		}
		updated[ins.artifact] = spliced
	}

	for name, content := range updated {
		a, ok := w.artifacts[name]
		if !ok {
			a = &artifact{}
			w.artifacts[name] = a
		}
		a.content = content
		a.changed = true
	}
	return nil
}

// Discard drops staged output.
func (w *Workspace) Discard() {
	w.insertions = nil
	w.creations = nil
}

// Splice inserts text into content immediately above the line holding the
// marker of point. Each non-empty inserted line is prefixed with the
// whitespace that starts the marker's line.
func Splice(content []byte, point string, text []byte) ([]byte, error) {
	pos := bytes.Index(content, []byte(Marker(point)))
	if pos < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInsertionPoint, point)
	}
	lineStart := bytes.LastIndexByte(content[:pos], '\n') + 1
	indent := content[lineStart:pos]
	indent = indent[:len(indent)-len(bytes.TrimLeft(indent, " \t"))]

	var out bytes.Buffer
	out.Grow(len(content) + len(text))
	out.Write(content[:lineStart])
	lines := strings.SplitAfter(string(text), "\n")
	for _, line := range lines {
		if line == "" {
			continue
		}
		if line != "\n" {
			out.Write(indent)
		}
		out.WriteString(line)
	}
	if len(text) > 0 && text[len(text)-1] != '\n' {
		out.WriteByte('\n')
	}
	out.Write(content[lineStart:])
	return out.Bytes(), nil
}
