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

package format_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject/format"
	"github.com/bufbuild/protoinject/internal/prototest"
	"github.com/bufbuild/protoinject/value"
)

const schema = `
syntax = "proto3";
package foo.bar;

enum Level {
  LEVEL_UNSPECIFIED = 0;
  LEVEL_HIGH = 2;
}

message Scalars {
  enum Mode {
    MODE_UNSPECIFIED = 0;
    MODE_FAST = 1;
  }
  int32 i32 = 1;
  sint64 i64 = 2;
  fixed32 u32 = 3;
  uint64 u64 = 4;
  float f = 5;
  double d = 6;
  bool b = 7;
  string s = 8;
  bytes raw = 9;
  Level level = 10;
  Mode mode = 11;
  Scalars child = 12;
}
`

func fields(t *testing.T) func(string) protoreflect.FieldDescriptor {
	t.Helper()
	msg := prototest.CompileFile(t, schema).Messages().ByName("Scalars")
	return func(name string) protoreflect.FieldDescriptor {
		fd := msg.Fields().ByName(protoreflect.Name(name))
		require.NotNil(t, fd, name)
		return fd
	}
}

func TestCPPLiteral(t *testing.T) {
	t.Parallel()
	field := fields(t)
	testCases := []struct {
		field string
		v     value.Value
		want  string
	}{
		{field: "i32", v: value.Int(math.MinInt32), want: "(-2147483647) - 1"},
		{field: "i32", v: value.Float(-2147483648), want: "(-2147483647) - 1"},
		{field: "i32", v: value.Int(42), want: "42"},
		{field: "i64", v: value.Int(math.MinInt64), want: "int64_t{-9223372036854775807} - 1"},
		{field: "i64", v: value.Int(-5), want: "int64_t{-5}"},
		{field: "u32", v: value.Uint(math.MaxUint32), want: "4294967295u"},
		{field: "u64", v: value.Uint(math.MaxUint64), want: "uint64_t{18446744073709551615u}"},
		{field: "f", v: value.Float(1.5), want: "1.5f"},
		{field: "f", v: value.Float(2), want: "2"},
		{field: "f", v: value.Float(math.Inf(1)), want: "std::numeric_limits<float>::infinity()"},
		{field: "d", v: value.Float(0.1), want: "0.1"},
		{field: "d", v: value.Float(math.Inf(-1)), want: "-std::numeric_limits<double>::infinity()"},
		{field: "d", v: value.Float(math.NaN()), want: "std::numeric_limits<double>::quiet_NaN()"},
		{field: "d", v: value.Int(3), want: "3"},
		{field: "b", v: value.Bool(true), want: "true"},
		{field: "s", v: value.String("a?b"), want: `"a\?b"`},
		{field: "s", v: value.String("say \"hi\"\n"), want: `"say \"hi\"\n"`},
		{field: "raw", v: value.String("\x00\xff"), want: `"\000\377"`},
		{field: "level", v: value.Int(2), want: "::foo::bar::LEVEL_HIGH"},
		{field: "mode", v: value.Float(1), want: "::foo::bar::Scalars_Mode_MODE_FAST"},
	}
	for _, tc := range testCases {
		t.Run(tc.field+"="+tc.v.String(), func(t *testing.T) {
			t.Parallel()
			got, err := format.CPP.Literal(tc.v, field(tc.field))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJSONLiteral(t *testing.T) {
	t.Parallel()
	field := fields(t)
	testCases := []struct {
		field string
		v     value.Value
		want  string
	}{
		{field: "i32", v: value.Int(math.MinInt32), want: "-2147483648"},
		{field: "i64", v: value.Int(math.MinInt64), want: `"-9223372036854775808"`},
		{field: "u64", v: value.Uint(7), want: `"7"`},
		{field: "f", v: value.Float(1.5), want: "1.5"},
		{field: "d", v: value.Float(math.Inf(1)), want: `"Infinity"`},
		{field: "d", v: value.Float(math.NaN()), want: `"NaN"`},
		{field: "s", v: value.String("<a href=\"x\">"), want: `"<a href=\"x\">"`},
		{field: "s", v: value.String("a?b\n"), want: `"a?b\n"`},
		{field: "level", v: value.Int(2), want: `"LEVEL_HIGH"`},
	}
	for _, tc := range testCases {
		t.Run(tc.field+"="+tc.v.String(), func(t *testing.T) {
			t.Parallel()
			got, err := format.JSON.Literal(tc.v, field(tc.field))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLiteralErrors(t *testing.T) {
	t.Parallel()
	field := fields(t)

	unsupported := []struct {
		field string
		v     value.Value
	}{
		{field: "child", v: value.Int(1)},
		{field: "s", v: value.Int(1)},
		{field: "i32", v: value.String("1")},
		{field: "i32", v: value.Bool(true)},
		{field: "b", v: value.String("true")},
		{field: "s", v: value.Null{}},
		{field: "s", v: value.Struct{}},
		{field: "s", v: value.List{}},
		{field: "s", v: nil},
	}
	for _, tc := range unsupported {
		_, err := format.CPP.Literal(tc.v, field(tc.field))
		require.ErrorIs(t, err, format.ErrUnsupported, "%s = %v", tc.field, tc.v)
	}

	_, err := format.CPP.Literal(value.Int(7), field("level"))
	require.ErrorIs(t, err, format.ErrEnumValue)
	assert.Contains(t, err.Error(), "foo.bar.Level")
	assert.NotErrorIs(t, err, format.ErrUnsupported)

	_, err = format.CPP.Literal(value.Int(math.MaxInt32+1), field("i32"))
	require.ErrorIs(t, err, format.ErrRange)
	_, err = format.CPP.Literal(value.Float(0.5), field("u64"))
	require.ErrorIs(t, err, format.ErrRange)
	_, err = format.CPP.Literal(value.Float(math.MaxFloat64), field("f"))
	require.ErrorIs(t, err, format.ErrRange)
}
