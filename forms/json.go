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

package forms

import (
	"cmp"
	"fmt"
	"slices"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject/format"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/value"
)

// node is an element of a JSON document under construction: a literal, an
// *object or an array.
type node interface {
	print(p *insert.Printer, prefix, suffix string)
}

// literal is a formatted JSON scalar.
type literal string

// object is a JSON object with keys in insertion order.
type object struct {
	keys   []string
	values []node
}

// array is a JSON array.
type array []node

func (o *object) push(key string, v node) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// encodeMessage converts the populated fields of m, in declaration order,
// into an object keyed by field name.
func encodeMessage(m protoreflect.Message) (*object, error) {
	obj := new(object)
	fields := m.Descriptor().Fields()
	for i := range fields.Len() {
		fd := fields.Get(i)
		if !m.Has(fd) {
			continue
		}
		v, err := encodeField(m.Get(fd), fd)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.Name(), err)
		}
		obj.push(string(fd.Name()), v)
	}
	return obj, nil
}

func encodeField(v protoreflect.Value, fd protoreflect.FieldDescriptor) (node, error) {
	switch {
	case fd.IsList():
		list := v.List()
		arr := make(array, 0, list.Len())
		for i := range list.Len() {
			elem, err := encodeSingular(list.Get(i), fd)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil

	case fd.IsMap():
		type entry struct {
			key string
			val protoreflect.Value
		}
		var entries []entry
		v.Map().Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
			entries = append(entries, entry{key: k.String(), val: v})
			return true
		})
		slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.key, b.key) })
		obj := new(object)
		for _, e := range entries {
			val, err := encodeSingular(e.val, fd.MapValue())
			if err != nil {
				return nil, err
			}
			obj.push(e.key, val)
		}
		return obj, nil

	default:
		return encodeSingular(v, fd)
	}
}

func encodeSingular(v protoreflect.Value, fd protoreflect.FieldDescriptor) (node, error) {
	if fd.Message() != nil {
		return encodeMessage(v.Message())
	}
	lit, err := format.JSON.Literal(value.FromField(v, fd), fd)
	if err != nil {
		return nil, err
	}
	return literal(lit), nil
}

func (l literal) print(p *insert.Printer, prefix, suffix string) {
	p.P(prefix, string(l), suffix)
}

func (o *object) print(p *insert.Printer, prefix, suffix string) {
	if len(o.keys) == 0 {
		p.P(prefix, "{}", suffix)
		return
	}
	p.P(prefix, "{")
	p.Indent()
	for i, key := range o.keys {
		o.values[i].print(p, format.JSON.Dialect.String(key)+": ", comma(i, len(o.keys)))
	}
	p.Outdent()
	p.P("}", suffix)
}

func (a array) print(p *insert.Printer, prefix, suffix string) {
	if len(a) == 0 {
		p.P(prefix, "[]", suffix)
		return
	}
	p.P(prefix, "[")
	p.Indent()
	for i, elem := range a {
		elem.print(p, "", comma(i, len(a)))
	}
	p.Outdent()
	p.P("]", suffix)
}

func comma(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}
