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

// Package trace generates marker statements into every insertion point of
// the C++ source file, which shows at run time when each point executes:
//
//	std::cout << "@@arena_constructor:example.Foo\n";  // ::example::Foo
package trace

import (
	"github.com/bufbuild/protoinject"
	"github.com/bufbuild/protoinject/format"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/naming"
	"github.com/bufbuild/protoinject/reporter"
	"github.com/bufbuild/protoinject/walk"
)

// Generator writes trace statements.
type Generator struct {
	// Nested enables tracing of messages nested in other messages.
	Nested bool
	// Slots restricts the traced message-scoped slots. The default is every
	// message-scoped slot of the source file.
	Slots []insert.Slot
}

var _ protoinject.Generator = (*Generator)(nil)

// Name implements protoinject.Generator.
func (g *Generator) Name() string {
	return "trace"
}

// Generate implements protoinject.Generator.
func (g *Generator) Generate(fc *protoinject.FileContext) error {
	artifact := naming.SourceFile(fc.File)

	if err := g.emit(fc, insert.Point{Artifact: artifact, Slot: insert.Includes}, "#include <iostream>"); err != nil {
		return err
	}

	slots := g.Slots
	if len(slots) == 0 {
		slots = insert.MessageSlots(insert.Source)
	}
	err := walk.Messages(fc.File, walk.Options{Nested: g.Nested}, func(v walk.Visit) error {
		for _, slot := range slots {
			point := insert.Point{Artifact: artifact, Slot: slot, Message: v.Message.FullName()}
			marker := format.CPP.Dialect.String("@@" + point.Name() + "\n")
			if err := g.emit(fc, point, "std::cout << %s;  // %s", marker, naming.Scoped(v.Message)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, slot := range []insert.Slot{insert.NamespaceScope, insert.GlobalScope} {
		point := insert.Point{Artifact: artifact, Slot: slot}
		if err := g.emit(fc, point, "// inserted at %s", slot); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emit(fc *protoinject.FileContext, point insert.Point, tmpl string, args ...any) error {
	p, err := insert.Open(fc.Artifacts, point)
	if err != nil {
		return fc.Handler.HandleError(reporter.Error(fc.File, err))
	}
	if point.Message != "" {
		p.Indent()
	}
	p.Pf(tmpl, args...)
	if err := p.Err(); err != nil {
		return fc.Handler.HandleError(reporter.Error(fc.File, err))
	}
	return nil
}
