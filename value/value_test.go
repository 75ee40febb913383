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

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/bufbuild/protoinject/internal/prototest"
	"github.com/bufbuild/protoinject/value"
)

const schema = `
syntax = "proto3";
package test;
import "protoinject/options.proto";

enum Color {
  COLOR_UNSPECIFIED = 0;
  COLOR_RED = 1;
}

message Sample {
  bool flag = 1;
  string text = 2;
  bytes data = 3;
  Color color = 4;
  sint32 small = 5;
  fixed64 big = 6;
  float ratio = 7;
  Sample child = 8;
}
`

func fieldDefaultType(t *testing.T, file protoreflect.FileDescriptor) protoreflect.MessageDescriptor {
	t.Helper()
	imports := file.Imports()
	for i := range imports.Len() {
		if md := imports.Get(i).Messages().ByName("FieldDefault"); md != nil {
			return md
		}
	}
	t.Fatal("FieldDefault not found")
	return nil
}

func TestFromFieldDefault(t *testing.T) {
	t.Parallel()
	file := prototest.CompileFile(t, schema)
	md := fieldDefaultType(t, file)

	set := func(name string, v protoreflect.Value) protoreflect.Message {
		msg := dynamicpb.NewMessage(md)
		msg.Set(md.Fields().ByName(protoreflect.Name(name)), v)
		return msg
	}

	testCases := []struct {
		name string
		msg  protoreflect.Message
		want value.Value
	}{
		{name: "number", msg: set("number_value", protoreflect.ValueOfFloat64(2.5)), want: value.Float(2.5)},
		{name: "int", msg: set("int_value", protoreflect.ValueOfInt64(-9)), want: value.Int(-9)},
		{name: "uint", msg: set("uint_value", protoreflect.ValueOfUint64(9)), want: value.Uint(9)},
		{name: "string", msg: set("string_value", protoreflect.ValueOfString("x")), want: value.String("x")},
		{name: "bool", msg: set("bool_value", protoreflect.ValueOfBool(true)), want: value.Bool(true)},
		{name: "null", msg: set("null_value", protoreflect.ValueOfEnum(0)), want: value.Null{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := value.FromFieldDefault(tc.msg)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("struct", func(t *testing.T) {
		t.Parallel()
		fd := md.Fields().ByName("struct_value")
		msg := dynamicpb.NewMessage(md)
		msg.Set(fd, protoreflect.ValueOfMessage(dynamicpb.NewMessage(fd.Message())))
		got, ok := value.FromFieldDefault(msg)
		require.True(t, ok)
		assert.IsType(t, value.Struct{}, got)
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		fd := md.Fields().ByName("list_value")
		msg := dynamicpb.NewMessage(md)
		msg.Set(fd, protoreflect.ValueOfMessage(dynamicpb.NewMessage(fd.Message())))
		got, ok := value.FromFieldDefault(msg)
		require.True(t, ok)
		list, isList := got.(value.List)
		require.True(t, isList)
		assert.Equal(t, 0, list.List.Len())
	})

	t.Run("unset", func(t *testing.T) {
		t.Parallel()
		_, ok := value.FromFieldDefault(dynamicpb.NewMessage(md))
		assert.False(t, ok)
	})
}

func TestFromField(t *testing.T) {
	t.Parallel()
	file := prototest.CompileFile(t, schema)
	fields := file.Messages().ByName("Sample").Fields()
	field := func(name string) protoreflect.FieldDescriptor {
		return fields.ByName(protoreflect.Name(name))
	}

	assert.Equal(t, value.Bool(true), value.FromField(protoreflect.ValueOfBool(true), field("flag")))
	assert.Equal(t, value.String("t"), value.FromField(protoreflect.ValueOfString("t"), field("text")))
	assert.Equal(t, value.String("d"), value.FromField(protoreflect.ValueOfBytes([]byte("d")), field("data")))
	assert.Equal(t, value.Int(1), value.FromField(protoreflect.ValueOfEnum(1), field("color")))
	assert.Equal(t, value.Int(-3), value.FromField(protoreflect.ValueOfInt32(-3), field("small")))
	assert.Equal(t, value.Uint(8), value.FromField(protoreflect.ValueOfUint64(8), field("big")))
	assert.Equal(t, value.Float(float64(float32(0.5))), value.FromField(protoreflect.ValueOfFloat32(0.5), field("ratio")))
	assert.IsType(t, value.Struct{}, value.FromField(protoreflect.ValueOfMessage(dynamicpb.NewMessage(field("child").Message())), field("child")))
}
