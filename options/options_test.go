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

package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoinject/internal/prototest"
	"github.com/bufbuild/protoinject/options"
)

const schema = `
syntax = "proto3";
package test;
import "protoinject/options.proto";

message Form {
  option (protoinject.widget) = { title: "Form" columns: 2 };
  int32 age = 1 [(protoinject.field_default).int_value = 18, (protoinject.control) = { label: "Age" }];
  string note = 2;
}
`

func TestResolve(t *testing.T) {
	t.Parallel()
	file := prototest.CompileFile(t, schema)
	r, err := options.ForFile(file)
	require.NoError(t, err)
	for _, id := range []options.ExtensionID{options.FieldDefault, options.Widget, options.Control} {
		assert.True(t, r.Known(id), id)
	}

	form := file.Messages().ByName("Form")
	widget, ok := r.Resolve(form.Options(), options.Widget)
	require.True(t, ok)
	fields := widget.Descriptor().Fields()
	assert.Equal(t, "Form", widget.Get(fields.ByName("title")).String())
	assert.Equal(t, int64(2), widget.Get(fields.ByName("columns")).Int())
	assert.False(t, widget.Has(fields.ByName("description")))

	age := form.Fields().ByName("age")
	def, ok := r.Resolve(age.Options(), options.FieldDefault)
	require.True(t, ok)
	assert.Equal(t, int64(18), def.Get(def.Descriptor().Fields().ByName("int_value")).Int())
	assert.True(t, r.Has(age.Options(), options.Control))

	note := form.Fields().ByName("note")
	assert.False(t, r.Has(note.Options(), options.FieldDefault))
	assert.False(t, r.Has(note.Options(), options.Control))

	// An option block of the wrong kind never carries the extension.
	assert.False(t, r.Has(form.Options(), options.FieldDefault))
	assert.False(t, r.Has(nil, options.Widget))
}

func TestResolveWithoutOptionSchema(t *testing.T) {
	t.Parallel()
	file := prototest.CompileFile(t, `
		syntax = "proto3";
		message Plain { string name = 1; }`)
	r, err := options.ForFile(file)
	require.NoError(t, err)
	assert.False(t, r.Known(options.Widget))
	assert.False(t, r.Has(file.Messages().Get(0).Options(), options.Widget))
}

func TestResolveUninitialized(t *testing.T) {
	t.Parallel()
	file := prototest.CompileFile(t, schema)
	r, err := options.ForFile(file)
	require.NoError(t, err)

	widgetNumber := protowire.Number(50101)
	encode := func(payload []byte) *descriptorpb.MessageOptions {
		var b []byte
		b = protowire.AppendTag(b, widgetNumber, protowire.BytesType)
		b = protowire.AppendBytes(b, payload)
		opts := new(descriptorpb.MessageOptions)
		opts.ProtoReflect().SetUnknown(protoreflect.RawFields(b))
		return opts
	}

	// Widget.title is required.
	assert.False(t, r.Has(encode(nil), options.Widget))

	var title []byte
	title = protowire.AppendTag(title, 1, protowire.BytesType)
	title = protowire.AppendString(title, "Form")
	widget, ok := r.Resolve(encode(title), options.Widget)
	require.True(t, ok)
	assert.Equal(t, "Form", widget.Get(widget.Descriptor().Fields().ByName("title")).String())

	// Garbage in the option block is treated as absent.
	bad := new(descriptorpb.MessageOptions)
	bad.ProtoReflect().SetUnknown(protoreflect.RawFields(protowire.AppendTag(nil, widgetNumber, protowire.BytesType)))
	assert.False(t, r.Has(bad, options.Widget))
}

func TestResolvePartialSibling(t *testing.T) {
	t.Parallel()
	file := prototest.CompileFile(t, schema)
	r, err := options.ForFile(file)
	require.NoError(t, err)

	// field_default { int_value: 5 }
	var def []byte
	def = protowire.AppendTag(def, 7, protowire.VarintType)
	def = protowire.AppendVarint(def, protowire.EncodeZigZag(5))
	var b []byte
	b = protowire.AppendTag(b, 50100, protowire.BytesType)
	b = protowire.AppendBytes(b, def)
	opts := new(descriptorpb.FieldOptions)
	opts.ProtoReflect().SetUnknown(protoreflect.RawFields(b))
	require.True(t, r.Has(opts, options.FieldDefault))

	// An empty control lacks its required label.
	b = protowire.AppendTag(b, 50102, protowire.BytesType)
	b = protowire.AppendBytes(b, nil)
	opts = new(descriptorpb.FieldOptions)
	opts.ProtoReflect().SetUnknown(protoreflect.RawFields(b))
	assert.False(t, r.Has(opts, options.Control))
	payload, ok := r.Resolve(opts, options.FieldDefault)
	require.True(t, ok)
	assert.Equal(t, int64(5), payload.Get(payload.Descriptor().Fields().ByName("int_value")).Int())
}

func TestNewResolverRejectsNonExtensions(t *testing.T) {
	t.Parallel()
	file := prototest.CompileFile(t, `
		syntax = "proto3";
		package protoinject;
		message widget {}`)
	files := new(protoregistry.Files)
	require.NoError(t, files.RegisterFile(file))
	_, err := options.NewResolver(files)
	require.Error(t, err)
}

func TestSource(t *testing.T) {
	t.Parallel()
	assert.Contains(t, options.Source(), "extend google.protobuf.MessageOptions")
	files := prototest.Compile(t, nil, options.Path)
	require.Len(t, files, 1)
	assert.Equal(t, options.Path, files[0].Path())
	assert.NotNil(t, files[0].Extensions().ByName("field_default"))
}
