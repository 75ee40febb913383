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

// Package naming derives the C++ names that protoc's C++ generator gives to
// schema elements.
package naming

import (
	"slices"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Separator between scopes in C++.
const scopeSeparator = "::"

// path returns the names of d and each enclosing message, outermost first.
// It follows the Parent back reference until reaching the file.
func path(d protoreflect.Descriptor) []string {
	var names []string
	for d != nil {
		if _, ok := d.(protoreflect.FileDescriptor); ok {
			break
		}
		names = append(names, string(d.Name()))
		d = d.Parent()
	}
	slices.Reverse(names)
	return names
}

// Namespace returns the C++ namespace of the file's package, with a leading
// "::", e.g. "::foo::bar" for package "foo.bar". It is empty for files
// without a package.
func Namespace(file protoreflect.FileDescriptor) string {
	pkg := string(file.Package())
	if pkg == "" {
		return ""
	}
	return scopeSeparator + strings.ReplaceAll(pkg, ".", scopeSeparator)
}

// Scoped returns the fully-qualified C++ name of a message or enum, each
// nesting level joined by "::", e.g. "::foo::Outer::Inner".
func Scoped(d protoreflect.Descriptor) string {
	return Namespace(d.ParentFile()) + scopeSeparator + strings.Join(path(d), scopeSeparator)
}

// Flat returns the name of a message or enum with nesting levels joined by
// an underscore, e.g. "Outer_Inner". This is the name of the C++ class
// generated for a nested message.
func Flat(d protoreflect.Descriptor) string {
	return strings.Join(path(d), "_")
}

// EnumValue returns the C++ constant for an enum value, e.g.
// "::foo::Outer_Kind_KIND_A" for a value of enum Kind nested in Outer, or
// "::foo::KIND_A" for a value of a top-level enum.
func EnumValue(v protoreflect.EnumValueDescriptor) string {
	enum, _ := v.Parent().(protoreflect.EnumDescriptor)
	ns := Namespace(v.ParentFile()) + scopeSeparator
	if enum == nil {
		return ns + string(v.Name())
	}
	if _, nested := enum.Parent().(protoreflect.MessageDescriptor); nested {
		return ns + Flat(enum) + "_" + string(v.Name())
	}
	return ns + string(v.Name())
}

// Accessor returns the base name of a field's generated accessors: the
// field name in lower case, so that "set_" + Accessor(fd) is the setter.
// Names that are C++ keywords get a trailing underscore, e.g. "class_".
func Accessor(fd protoreflect.FieldDescriptor) string {
	name := strings.ToLower(string(fd.Name()))
	if _, ok := cppKeywords[name]; ok {
		return name + "_"
	}
	return name
}

var cppKeywords = map[string]struct{}{
	"NULL": {}, "alignas": {}, "alignof": {}, "and": {}, "and_eq": {},
	"asm": {}, "auto": {}, "bitand": {}, "bitor": {}, "bool": {},
	"break": {}, "case": {}, "catch": {}, "char": {}, "char8_t": {},
	"char16_t": {}, "char32_t": {}, "class": {}, "compl": {}, "concept": {},
	"const": {}, "consteval": {}, "constexpr": {}, "constinit": {},
	"const_cast": {}, "continue": {}, "co_await": {}, "co_return": {},
	"co_yield": {}, "decltype": {}, "default": {}, "delete": {}, "do": {},
	"double": {}, "dynamic_cast": {}, "else": {}, "enum": {}, "explicit": {},
	"export": {}, "extern": {}, "false": {}, "float": {}, "for": {},
	"friend": {}, "goto": {}, "if": {}, "inline": {}, "int": {}, "long": {},
	"mutable": {}, "namespace": {}, "new": {}, "noexcept": {}, "not": {},
	"not_eq": {}, "nullptr": {}, "operator": {}, "or": {}, "or_eq": {},
	"private": {}, "protected": {}, "public": {}, "register": {},
	"reinterpret_cast": {}, "requires": {}, "return": {}, "short": {},
	"signed": {}, "sizeof": {}, "static": {}, "static_assert": {},
	"static_cast": {}, "struct": {}, "switch": {}, "template": {},
	"this": {}, "thread_local": {}, "throw": {}, "true": {}, "try": {},
	"typedef": {}, "typeid": {}, "typename": {}, "union": {}, "unsigned": {},
	"using": {}, "virtual": {}, "void": {}, "volatile": {}, "wchar_t": {},
	"while": {}, "xor": {}, "xor_eq": {},
}

// StripProto removes a ".proto" or ".protodevel" suffix from a file path.
func StripProto(path string) string {
	for _, suffix := range []string{".protodevel", ".proto"} {
		if trimmed, ok := strings.CutSuffix(path, suffix); ok {
			return trimmed
		}
	}
	return path
}

// HeaderFile returns the name of the C++ header generated for a file.
func HeaderFile(file protoreflect.FileDescriptor) string {
	return StripProto(file.Path()) + ".pb.h"
}

// SourceFile returns the name of the C++ source generated for a file.
func SourceFile(file protoreflect.FileDescriptor) string {
	return StripProto(file.Path()) + ".pb.cc"
}
