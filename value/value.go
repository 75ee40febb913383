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

// Package value defines Value, the typed values carried by custom options.
//
// A Value is one of Number, Bool, String, Struct, List or Null. The set is
// closed: the marker method is unexported, so a type switch over these six
// types is exhaustive.
package value

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Value is a typed option value.
type Value interface {
	isValue()
	fmt.Stringer
}

// Bool is a boolean value.
type Bool bool

// String is a string value.
type String string

// Struct is a structured object. Its fields are not interpreted.
type Struct struct {
	Message protoreflect.Message
}

// List is a list of values. Its elements are not interpreted.
type List struct {
	List protoreflect.List
}

// Null is the null value.
type Null struct{}

func (Number) isValue() {}
func (Bool) isValue()   {}
func (String) isValue() {}
func (Struct) isValue() {}
func (List) isValue()   {}
func (Null) isValue()   {}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (s String) String() string {
	return string(s)
}

func (s Struct) String() string {
	return "<struct>"
}

func (l List) String() string {
	if l.List == nil {
		return "<list>"
	}
	return fmt.Sprintf("<list of %d>", l.List.Len())
}

func (Null) String() string {
	return "null"
}

// Names of the protoinject.FieldDefault oneof members.
const (
	nullValueField   protoreflect.Name = "null_value"
	numberValueField protoreflect.Name = "number_value"
	stringValueField protoreflect.Name = "string_value"
	boolValueField   protoreflect.Name = "bool_value"
	structValueField protoreflect.Name = "struct_value"
	listValueField   protoreflect.Name = "list_value"
	intValueField    protoreflect.Name = "int_value"
	uintValueField   protoreflect.Name = "uint_value"
)

// FromFieldDefault converts a protoinject.FieldDefault payload into a Value.
// It returns false if no member of the kind oneof is set.
func FromFieldDefault(msg protoreflect.Message) (Value, bool) {
	oneof := msg.Descriptor().Oneofs().ByName("kind")
	if oneof == nil {
		return nil, false
	}
	fd := msg.WhichOneof(oneof)
	if fd == nil {
		return nil, false
	}
	v := msg.Get(fd)
	switch fd.Name() {
	case nullValueField:
		return Null{}, true
	case numberValueField:
		return Float(v.Float()), true
	case stringValueField:
		return String(v.String()), true
	case boolValueField:
		return Bool(v.Bool()), true
	case structValueField:
		return Struct{Message: v.Message()}, true
	case listValueField:
		return listFromListValue(v.Message()), true
	case intValueField:
		return Int(v.Int()), true
	case uintValueField:
		return Uint(v.Uint()), true
	default:
		return nil, false
	}
}

// google.protobuf.ListValue keeps its elements in field "values".
func listFromListValue(msg protoreflect.Message) List {
	fd := msg.Descriptor().Fields().ByName("values")
	if fd == nil || !fd.IsList() {
		return List{}
	}
	return List{List: msg.Get(fd).List()}
}

// FromField converts a singular field value into a Value, using the field's
// declared kind to interpret it. Message values become a Struct. Enum
// values become a Number holding the enum number.
func FromField(v protoreflect.Value, fd protoreflect.FieldDescriptor) Value {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return Bool(v.Bool())
	case protoreflect.StringKind:
		return String(v.String())
	case protoreflect.BytesKind:
		return String(v.Bytes())
	case protoreflect.EnumKind:
		return Int(int64(v.Enum()))
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind,
		protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return Int(v.Int())
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind,
		protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return Uint(v.Uint())
	case protoreflect.FloatKind, protoreflect.DoubleKind:
		return Float(v.Float())
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return Struct{Message: v.Message()}
	default:
		return Null{}
	}
}
