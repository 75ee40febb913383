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

// Package protoinject generates C++ field initialization code and JSON form
// descriptions from custom options on protobuf schemas.
//
// Generation runs as a protoc plugin (see the plugin package and the
// commands under cmd/), or from the protoinject command, which compiles
// schemas itself and edits existing generated files in place.
//
// # Options
//
// Schemas import "protoinject/options.proto" and annotate their elements:
//
//	import "protoinject/options.proto";
//
//	message Foo {
//	  option (protoinject.widget) = { title: "Foo" };
//
//	  int32 version = 1 [
//	    (protoinject.field_default).int_value = 2,
//	    (protoinject.control) = { label: "Version" }
//	  ];
//	}
//
// # Generators
//
// The defaults generator writes a setter call for every field carrying a
// field_default option into the constructor of the message's C++ class:
//
//	set_version(2);
//
// The text goes into the "arena_constructor:<message>" insertion point of the
// ".pb.cc" file previously generated by protoc's C++ plugin. Insertion points
// form a closed vocabulary defined by that plugin; see the insert package.
//
// The forms generator writes "forms/<Message>.json" for every message
// carrying a widget option. The document holds the widget option's fields
// and a "fields" array with the control option of each field that has one.
//
// The trace generator writes a marker statement into every insertion point of
// every message, which helps finding out when each point runs.
//
// # Failure
//
// Output for a file is all or nothing. Options that are absent, or values
// that cannot be expressed for their field, are skipped; an enum number
// without a matching enumerator, a value out of range for its field, or an
// insertion point the host rejects fail the whole file. Hosts discard a
// failed file's output.
package protoinject
