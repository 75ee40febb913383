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

package defaults_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protoinject"
	"github.com/bufbuild/protoinject/artifact"
	"github.com/bufbuild/protoinject/defaults"
	"github.com/bufbuild/protoinject/format"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/internal/prototest"
	"github.com/bufbuild/protoinject/reporter"
)

// generate runs gen over source and returns the committed workspace and the
// warnings reported.
func generate(t *testing.T, source string, gen *defaults.Generator) (*artifact.Workspace, []reporter.ErrorWithDescriptor, error) {
	t.Helper()
	file := prototest.CompileFile(t, source)
	ws := prototest.Workspace(t, file)
	var warnings []reporter.ErrorWithDescriptor
	rep := reporter.NewReporter(nil, func(err reporter.ErrorWithDescriptor) {
		warnings = append(warnings, err)
	})
	err := protoinject.Run(file, nil, ws, rep, nil, gen)
	if err != nil {
		ws.Discard()
		return ws, warnings, err
	}
	require.NoError(t, ws.Commit())
	return ws, warnings, nil
}

func source(t *testing.T, ws *artifact.Workspace) string {
	t.Helper()
	content, ok := ws.Get("test.pb.cc")
	require.True(t, ok)
	return string(content)
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	ws, warnings, err := generate(t, `
		syntax = "proto3";
		package example;
		import "protoinject/options.proto";
		message Foo {
		  int32 version = 1 [(protoinject.field_default).number_value = -2147483648];
		  string name = 2 [(protoinject.field_default).string_value = "a?b"];
		  string unset = 3;
		}`, &defaults.Generator{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Contains(t, source(t, ws), ""+
		"class Foo {\n"+
		"  set_version((-2147483647) - 1);\n"+
		"  set_name(\"a\\?b\");\n"+
		"  // @@protoc_insertion_point(arena_constructor:example.Foo)\n")
	assert.Equal(t, []string{"test.pb.cc"}, ws.Changed())
}

func TestGenerateKinds(t *testing.T) {
	t.Parallel()
	ws, warnings, err := generate(t, `
		syntax = "proto2";
		package example;
		import "protoinject/options.proto";
		message Kinds {
		  enum Mode {
		    MODE_UNSPECIFIED = 0;
		    MODE_FAST = 1;
		  }
		  optional Mode mode = 1 [(protoinject.field_default).number_value = 1];
		  optional int64 big = 2 [(protoinject.field_default).int_value = -9223372036854775808];
		  optional uint64 huge = 3 [(protoinject.field_default).uint_value = 18446744073709551615];
		  optional bool on = 4 [(protoinject.field_default).bool_value = true];
		  optional float ratio = 5 [(protoinject.field_default).number_value = 0.5];
		  optional double limit = 6 [(protoinject.field_default).number_value = inf];
		  optional bytes Blob = 7 [(protoinject.field_default).string_value = "\001"];
		}`, &defaults.Generator{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Contains(t, source(t, ws), ""+
		"  set_mode(::example::Kinds_Mode_MODE_FAST);\n"+
		"  set_big(int64_t{-9223372036854775807} - 1);\n"+
		"  set_huge(uint64_t{18446744073709551615u});\n"+
		"  set_on(true);\n"+
		"  set_ratio(0.5f);\n"+
		"  set_limit(std::numeric_limits<double>::infinity());\n"+
		"  set_blob(\"\\001\");\n"+
		"  // @@protoc_insertion_point(arena_constructor:example.Kinds)\n")
}

func TestGenerateKeywordFields(t *testing.T) {
	t.Parallel()
	ws, warnings, err := generate(t, `
		syntax = "proto3";
		package example;
		import "protoinject/options.proto";
		message Foo {
		  int32 class = 1 [(protoinject.field_default).number_value = 3];
		  bool New = 2 [(protoinject.field_default).bool_value = true];
		}`, &defaults.Generator{})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	out := source(t, ws)
	assert.Contains(t, out, ""+
		"  set_class_(3);\n"+
		"  set_new_(true);\n"+
		"  // @@protoc_insertion_point(arena_constructor:example.Foo)\n")
	assert.NotContains(t, out, "set_class(")
}

func TestGenerateSkipsUnsupported(t *testing.T) {
	t.Parallel()
	ws, warnings, err := generate(t, `
		syntax = "proto3";
		package example;
		import "protoinject/options.proto";
		message Skips {
		  string obj = 1 [(protoinject.field_default).struct_value = { fields { key: "a" value { bool_value: true } } }];
		  int32 text = 2 [(protoinject.field_default).string_value = "12"];
		  repeated int32 many = 3 [(protoinject.field_default).number_value = 1];
		  string nothing = 4 [(protoinject.field_default).null_value = NULL_VALUE];
		  int32 kept = 5 [(protoinject.field_default).number_value = 7];
		}`, &defaults.Generator{})
	require.NoError(t, err)

	require.Len(t, warnings, 4)
	names := make([]string, len(warnings))
	for i, w := range warnings {
		assert.ErrorIs(t, w, format.ErrUnsupported)
		names[i] = string(w.GetDescriptor().Name())
	}
	assert.Equal(t, []string{"obj", "text", "many", "nothing"}, names)

	out := source(t, ws)
	assert.Contains(t, out, "  set_kept(7);\n  // @@protoc_insertion_point(arena_constructor:example.Skips)\n")
	assert.Equal(t, 1, strings.Count(out, "set_"))
}

func TestGenerateEnumMismatch(t *testing.T) {
	t.Parallel()
	ws, _, err := generate(t, `
		syntax = "proto3";
		package example;
		import "protoinject/options.proto";
		enum Level {
		  LEVEL_UNSPECIFIED = 0;
		  LEVEL_HIGH = 1;
		}
		message Good {
		  int32 a = 1 [(protoinject.field_default).number_value = 1];
		}
		message Bad {
		  Level level = 1 [(protoinject.field_default).number_value = 5];
		}`, &defaults.Generator{})
	require.ErrorIs(t, err, format.ErrEnumValue)
	assert.Contains(t, err.Error(), "example.Bad.level")

	var ewd reporter.ErrorWithDescriptor
	require.ErrorAs(t, err, &ewd)
	assert.Equal(t, "level", string(ewd.GetDescriptor().Name()))

	// Nothing from the failed file reaches the artifact.
	assert.Empty(t, ws.Changed())
	assert.NotContains(t, source(t, ws), "set_a")
}

func TestGenerateRange(t *testing.T) {
	t.Parallel()
	_, _, err := generate(t, `
		syntax = "proto3";
		package example;
		import "protoinject/options.proto";
		message Foo {
		  uint32 count = 1 [(protoinject.field_default).number_value = -1];
		}`, &defaults.Generator{})
	require.ErrorIs(t, err, format.ErrRange)
	assert.Contains(t, err.Error(), "example.Foo.count")
}

const nestedSchema = `
	syntax = "proto3";
	package example;
	import "protoinject/options.proto";
	message Outer {
	  message Inner {
	    string label = 1 [(protoinject.field_default).string_value = "in"];
	  }
	  string label = 1 [(protoinject.field_default).string_value = "out"];
	}`

func TestGenerateNested(t *testing.T) {
	t.Parallel()

	ws, _, err := generate(t, nestedSchema, &defaults.Generator{})
	require.NoError(t, err)
	out := source(t, ws)
	assert.Contains(t, out, "  set_label(\"out\");\n  // @@protoc_insertion_point(arena_constructor:example.Outer)\n")
	assert.NotContains(t, out, `set_label("in")`)

	ws, _, err = generate(t, nestedSchema, &defaults.Generator{Nested: true})
	require.NoError(t, err)
	assert.Contains(t, source(t, ws), "  set_label(\"in\");\n  // @@protoc_insertion_point(arena_constructor:example.Outer.Inner)\n")
}

func TestGenerateLogsDepth(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logrus.New()
	log.Out = &buf
	log.Level = logrus.DebugLevel
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true, DisableColors: true}

	file := prototest.CompileFile(t, nestedSchema)
	ws := prototest.Workspace(t, file)
	require.NoError(t, protoinject.Run(file, nil, ws, nil, log, &defaults.Generator{Nested: true}))
	depths := map[string]string{}
	for _, line := range strings.Split(buf.String(), "\n") {
		var message, depth string
		for _, kv := range strings.Fields(line) {
			if v, ok := strings.CutPrefix(kv, "message="); ok {
				message = v
			}
			if v, ok := strings.CutPrefix(kv, "depth="); ok {
				depth = v
			}
		}
		if message != "" {
			depths[message] = depth
		}
	}
	assert.Equal(t, map[string]string{"example.Outer": "0", "example.Outer.Inner": "1"}, depths)
}

func TestGenerateSlot(t *testing.T) {
	t.Parallel()
	ws, _, err := generate(t, nestedSchema, &defaults.Generator{Slot: insert.MessageClearStart})
	require.NoError(t, err)
	assert.Contains(t, source(t, ws), "  set_label(\"out\");\n  // @@protoc_insertion_point(message_clear_start:example.Outer)\n")

	_, _, err = generate(t, nestedSchema, &defaults.Generator{Slot: insert.ClassScope})
	require.ErrorIs(t, err, insert.ErrSlotScope)
	assert.Contains(t, err.Error(), "initializing ::example::Outer: ")
}

func TestGenerateNoOptions(t *testing.T) {
	t.Parallel()
	ws, warnings, err := generate(t, `
		syntax = "proto3";
		message Plain { string name = 1; }`, &defaults.Generator{})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, ws.Changed())
}
