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

// Command protoc-gen-insertiontrace is a protoc plugin that prints a line
// from every insertion point of the generated C++ source at run time.
//
//	protoc --cpp_out=gen --insertiontrace_out=gen foo.proto
package main

import (
	"github.com/bufbuild/protoinject/plugin"
	"github.com/bufbuild/protoinject/trace"
)

func main() {
	plugin.Main(&trace.Generator{Nested: true})
}
