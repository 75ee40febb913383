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

package prototest

import (
	"strings"
	"testing"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject/artifact"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/naming"
	"github.com/bufbuild/protoinject/walk"
)

// Workspace returns a workspace holding skeletal C++ artifacts for each
// file, with a marker for every insertion point that protoc's C++ generator
// emits, including those of nested messages.
func Workspace(t *testing.T, files ...protoreflect.FileDescriptor) *artifact.Workspace {
	t.Helper()
	ws := artifact.NewWorkspace()
	for _, file := range files {
		ws.Add(naming.HeaderFile(file), []byte(skeleton(t, file, insert.Header)))
		ws.Add(naming.SourceFile(file), []byte(skeleton(t, file, insert.Source)))
	}
	return ws
}

func skeleton(t *testing.T, file protoreflect.FileDescriptor, kind insert.ArtifactKind) string {
	t.Helper()
	var b strings.Builder
	marker := func(indent, point string) {
		b.WriteString(indent + "// " + artifact.Marker(point) + "\n")
	}
	b.WriteString("// Generated by the protocol buffer compiler.  DO NOT EDIT!\n")
	marker("", string(insert.Includes))
	ns := strings.TrimPrefix(naming.Namespace(file), "::")
	if ns != "" {
		b.WriteString("namespace " + ns + " {\n")
	}
	err := walk.Messages(file, walk.Options{Nested: true}, func(v walk.Visit) error {
		b.WriteString("\nclass " + naming.Flat(v.Message) + " {\n")
		for _, slot := range insert.MessageSlots(kind) {
			marker("  ", insert.Point{Slot: slot, Message: v.Message.FullName()}.Name())
		}
		b.WriteString("};\n")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	marker("", string(insert.NamespaceScope))
	if ns != "" {
		b.WriteString("}  // namespace " + ns + "\n")
	}
	marker("", string(insert.GlobalScope))
	return b.String()
}
