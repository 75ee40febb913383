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

// Package format renders typed option values as literals of a target
// language.
//
// A [Formatter] combines a [value.Value] with the kind of the field that the
// literal is destined for. Three outcomes are possible:
//   - a literal,
//   - an error matching [ErrUnsupported]: no literal can be produced for this
//     combination, and the caller should skip the field,
//   - any other error: the value contradicts the schema (for example an enum
//     number without a matching enumerator) and generation must stop.
package format

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject/value"
)

var (
	// ErrUnsupported indicates that no literal can be produced. It is not a
	// failure.
	ErrUnsupported = errors.New("no literal for value")
	// ErrEnumValue indicates that a number does not match any enumerator of
	// the destination enum.
	ErrEnumValue = errors.New("no enum value with number")
	// ErrRange indicates that a number does not fit the destination type.
	ErrRange = value.ErrRange
)

// Dialect writes literals in a particular target syntax.
type Dialect interface {
	Int32(int32) string
	Int64(int64) string
	Uint32(uint32) string
	Uint64(uint64) string
	Float(float32) string
	Double(float64) string
	Bool(bool) string
	String(string) string
	Enum(protoreflect.EnumValueDescriptor) string
}

// Formatter renders values in its dialect.
type Formatter struct {
	Dialect Dialect
}

// CPP formats C++ literals.
var CPP = Formatter{Dialect: cppDialect{}}

// JSON formats JSON values.
var JSON = Formatter{Dialect: jsonDialect{}}

// Literal renders v as a literal for a field of the given descriptor. Only
// the field's kind (and enum type) is considered: callers decide whether a
// single literal makes sense for repeated or map fields.
func (f Formatter) Literal(v value.Value, fd protoreflect.FieldDescriptor) (string, error) {
	switch v := v.(type) {
	case value.Number:
		return f.number(v, fd)
	case value.Bool:
		if fd.Kind() != protoreflect.BoolKind {
			return "", mismatch(v, fd)
		}
		return f.Dialect.Bool(bool(v)), nil
	case value.String:
		switch fd.Kind() {
		case protoreflect.StringKind, protoreflect.BytesKind:
			return f.Dialect.String(string(v)), nil
		default:
			return "", mismatch(v, fd)
		}
	case value.Struct:
		return "", fmt.Errorf("%w: structured values are not supported", ErrUnsupported)
	case value.List:
		return "", fmt.Errorf("%w: list values are not supported", ErrUnsupported)
	case value.Null:
		return "", fmt.Errorf("%w: null values are not supported", ErrUnsupported)
	case nil:
		return "", fmt.Errorf("%w: no value", ErrUnsupported)
	default:
		panic(fmt.Sprintf("unknown value type %T", v))
	}
}

func (f Formatter) number(n value.Number, fd protoreflect.FieldDescriptor) (string, error) {
	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		i, err := n.Int32()
		if err != nil {
			return "", err
		}
		return f.Dialect.Int32(i), nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		i, err := n.Int64()
		if err != nil {
			return "", err
		}
		return f.Dialect.Int64(i), nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		u, err := n.Uint32()
		if err != nil {
			return "", err
		}
		return f.Dialect.Uint32(u), nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		u, err := n.Uint64()
		if err != nil {
			return "", err
		}
		return f.Dialect.Uint64(u), nil
	case protoreflect.FloatKind:
		v, err := n.Float32()
		if err != nil {
			return "", err
		}
		return f.Dialect.Float(v), nil
	case protoreflect.DoubleKind:
		return f.Dialect.Double(n.Float64()), nil
	case protoreflect.EnumKind:
		i, err := n.Int32()
		if err != nil {
			return "", err
		}
		ev := fd.Enum().Values().ByNumber(protoreflect.EnumNumber(i))
		if ev == nil {
			return "", fmt.Errorf("%w %d in %s", ErrEnumValue, i, fd.Enum().FullName())
		}
		return f.Dialect.Enum(ev), nil
	default:
		return "", mismatch(n, fd)
	}
}

func mismatch(v value.Value, fd protoreflect.FieldDescriptor) error {
	return fmt.Errorf("%w: cannot assign %T %q to a field of kind %v", ErrUnsupported, v, v.String(), fd.Kind())
}
