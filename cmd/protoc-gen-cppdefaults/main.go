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

// Command protoc-gen-cppdefaults is a protoc plugin that initializes fields
// of C++ messages to their protoinject.field_default values.
//
//	protoc --cpp_out=gen --cppdefaults_out=gen foo.proto
package main

import (
	"github.com/bufbuild/protoinject/defaults"
	"github.com/bufbuild/protoinject/plugin"
)

func main() {
	plugin.Main(&defaults.Generator{Nested: true})
}
