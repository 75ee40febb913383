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

// Package forms generates a JSON form description for every message carrying
// a protoinject.widget option.
//
// The document for message Person is written to "forms/Person.json":
//
//	{
//	  "title": "Person",
//	  "fields": [
//	    {
//	      "label": "Age"
//	    }
//	  ]
//	}
//
// The widget option's populated fields become top-level keys, in declaration
// order. They are followed by "fields", holding the populated control option
// of each field that has one, in field order. Fields without a control
// option are left out. Messages without a widget option get no document.
//
// Documents are named after the message alone, without its package. Two
// messages with the same flattened name in one run map to the same document,
// and the second one fails to generate.
package forms

import (
	"path"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/naming"
	"github.com/bufbuild/protoinject/options"
	"github.com/bufbuild/protoinject/reporter"
	"github.com/bufbuild/protoinject/walk"
)

// DefaultDir is the directory form documents are written to.
const DefaultDir = "forms"

// FieldsKey is the key of the array of control options.
const FieldsKey = "fields"

// Generator writes form documents.
type Generator struct {
	// Nested enables documents for messages nested in other messages. Their
	// documents are named after the flattened message name, e.g.
	// "Outer_Inner.json".
	Nested bool
	// Dir is the directory documents are written to. The default is
	// DefaultDir.
	Dir string
}

var _ protoinject.Generator = (*Generator)(nil)

// Name implements protoinject.Generator.
func (g *Generator) Name() string {
	return "forms"
}

// Generate implements protoinject.Generator.
func (g *Generator) Generate(fc *protoinject.FileContext) error {
	return walk.Messages(fc.File, walk.Options{Nested: g.Nested}, func(v walk.Visit) error {
		return g.message(fc, v.Message)
	})
}

// Artifact returns the name of the document generated for msg.
func (g *Generator) Artifact(msg protoreflect.MessageDescriptor) string {
	dir := g.Dir
	if dir == "" {
		dir = DefaultDir
	}
	return path.Join(dir, naming.Flat(msg)+".json")
}

func (g *Generator) message(fc *protoinject.FileContext, msg protoreflect.MessageDescriptor) error {
	widget, ok := fc.Options.Resolve(msg.Options(), options.Widget)
	if !ok {
		return nil
	}

	// Build the document in full before creating the artifact.
	doc, controls, err := g.document(fc, msg, widget)
	if err != nil || doc == nil {
		return err
	}

	artifact := g.Artifact(msg)
	p, err := insert.Create(fc.Artifacts, artifact)
	if err != nil {
		return fc.Handler.HandleError(reporter.Error(msg, err))
	}
	doc.print(p, "", "")
	if err := p.Err(); err != nil {
		return fc.Handler.HandleError(reporter.Error(msg, err))
	}
	fc.Log.WithField("message", msg.FullName()).Debugf("wrote %s with %d control(s)", artifact, controls)
	return nil
}

// document builds the form document of msg, also returning the number of
// controls it holds.
func (g *Generator) document(fc *protoinject.FileContext, msg protoreflect.MessageDescriptor, widget protoreflect.Message) (*object, int, error) {
	doc, err := encodeMessage(widget)
	if err != nil {
		return nil, 0, fc.Handler.HandleError(reporter.Error(msg, err))
	}

	controls := array{}
	err = walk.Fields(msg, func(fd protoreflect.FieldDescriptor) error {
		control, ok := fc.Options.Resolve(fd.Options(), options.Control)
		if !ok {
			return nil
		}
		obj, err := encodeMessage(control)
		if err != nil {
			return fc.Handler.HandleError(reporter.Error(fd, err))
		}
		controls = append(controls, obj)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	doc.push(FieldsKey, controls)
	return doc, len(controls), nil
}
