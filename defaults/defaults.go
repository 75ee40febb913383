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

// Package defaults generates C++ statements that initialize fields to the
// values given by their protoinject.field_default option.
//
// For every message with at least one such field, one statement per field
// is written, in field declaration order, into the message's constructor
// insertion point of the ".pb.cc" file:
//
//	set_version((-2147483647) - 1);
//	set_name("a\?b");
package defaults

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject"
	"github.com/bufbuild/protoinject/format"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/naming"
	"github.com/bufbuild/protoinject/options"
	"github.com/bufbuild/protoinject/reporter"
	"github.com/bufbuild/protoinject/value"
	"github.com/bufbuild/protoinject/walk"
)

// Generator writes field initialization statements.
type Generator struct {
	// Nested enables generation for messages nested in other messages.
	Nested bool
	// Slot is the message-scoped slot statements are written to. The
	// default is insert.ArenaConstructor.
	Slot insert.Slot
}

var _ protoinject.Generator = (*Generator)(nil)

// Name implements protoinject.Generator.
func (g *Generator) Name() string {
	return "defaults"
}

func (g *Generator) slot() insert.Slot {
	if g.Slot == "" {
		return insert.ArenaConstructor
	}
	return g.Slot
}

// Generate implements protoinject.Generator. Messages are processed in
// declaration order; the first hard error stops the file.
func (g *Generator) Generate(fc *protoinject.FileContext) error {
	artifact := naming.SourceFile(fc.File)
	return walk.Messages(fc.File, walk.Options{Nested: g.Nested}, func(v walk.Visit) error {
		return g.message(fc, artifact, v)
	})
}

func (g *Generator) message(fc *protoinject.FileContext, artifact string, v walk.Visit) error {
	msg := v.Message
	var (
		printer *insert.Printer
		count   int
	)
	err := walk.Fields(msg, func(fd protoreflect.FieldDescriptor) error {
		stmt, ok, err := g.statement(fc, fd)
		if err != nil || !ok {
			return err
		}
		// Opened on first use: messages without defaults leave the artifact
		// untouched.
		if printer == nil {
			point := insert.Point{Artifact: artifact, Slot: g.slot(), Message: msg.FullName()}
			printer, err = insert.Open(fc.Artifacts, point)
			if err != nil {
				return fc.Handler.HandleErrorf(msg, "initializing %s: %w", naming.Scoped(msg), err)
			}
		}
		printer.P(stmt)
		if err := printer.Err(); err != nil {
			return fc.Handler.HandleError(reporter.Error(msg, err))
		}
		count++
		return nil
	})
	if err != nil {
		return err
	}
	if count > 0 {
		fc.Log.WithField("message", msg.FullName()).WithField("depth", v.Depth).Debugf("initialized %d field(s)", count)
	}
	return nil
}

// statement returns the initialization statement for fd, or false if the
// field has no default that can be written.
func (g *Generator) statement(fc *protoinject.FileContext, fd protoreflect.FieldDescriptor) (string, bool, error) {
	payload, ok := fc.Options.Resolve(fd.Options(), options.FieldDefault)
	if !ok {
		return "", false, nil
	}
	v, ok := value.FromFieldDefault(payload)
	if !ok {
		return "", false, nil
	}
	if fd.IsList() || fd.IsMap() {
		fc.Handler.HandleWarning(fd, fmt.Errorf("%w: %v field cannot be set from a single value", format.ErrUnsupported, fd.Cardinality()))
		return "", false, nil
	}
	lit, err := format.CPP.Literal(v, fd)
	switch {
	case errors.Is(err, format.ErrUnsupported):
		fc.Handler.HandleWarning(fd, err)
		return "", false, nil
	case err != nil:
		return "", false, fc.Handler.HandleError(reporter.Error(fd, err))
	}
	return "set_" + naming.Accessor(fd) + "(" + lit + ");", true, nil
}
