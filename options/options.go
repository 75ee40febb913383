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

// Package options resolves the custom options that drive generation.
//
// The options are declared in "protoinject/options.proto", which is embedded
// in this package (see [Source]). Schemas import that file and annotate their
// messages and fields:
//
//	message Foo {
//	  option (protoinject.widget) = { title: "Foo" };
//	  int32 version = 1 [(protoinject.field_default).int_value = 3];
//	}
//
// Generators never depend on generated Go code for these options. Instead, a
// [Resolver] locates the extension declarations in the schema's own
// descriptors and decodes option blocks with dynamic types, so whatever
// version of options.proto the schema was compiled against is the one used.
package options

import (
	_ "embed"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Path is the import path of the embedded option schema.
const Path = "protoinject/options.proto"

//go:embed protoinject/options.proto
var source string

// Source returns the contents of the option schema, suitable for serving to
// a compiler under [Path].
func Source() string {
	return source
}

// ExtensionID identifies one of the custom options by the full name of its
// extension declaration.
type ExtensionID protoreflect.FullName

const (
	// FieldDefault is the field option holding the value a field is
	// initialized to. Its payload is a protoinject.FieldDefault.
	FieldDefault ExtensionID = "protoinject.field_default"
	// Widget is the message option holding form rendering hints. Its payload
	// is a protoinject.Widget.
	Widget ExtensionID = "protoinject.widget"
	// Control is the field option holding per-field form rendering hints. Its
	// payload is a protoinject.Control.
	Control ExtensionID = "protoinject.control"
)

var allExtensions = []ExtensionID{FieldDefault, Widget, Control}

// DescriptorResolver finds descriptors by their fully-qualified name.
// *protoregistry.Files implements it, as does the resolver returned by
// protocompile's linker.Files.AsResolver.
type DescriptorResolver interface {
	FindDescriptorByName(protoreflect.FullName) (protoreflect.Descriptor, error)
}

// Resolver looks up custom option payloads on option blocks.
//
// A Resolver is immutable once created.
type Resolver struct {
	types *protoregistry.Types
	exts  map[ExtensionID]protoreflect.ExtensionType
}

// NewResolver builds a resolver from the extensions declared in the given
// descriptors. Extensions that the schema never declares (because it does not
// import options.proto) simply resolve as absent.
func NewResolver(descs DescriptorResolver) (*Resolver, error) {
	r := &Resolver{
		types: new(protoregistry.Types),
		exts:  make(map[ExtensionID]protoreflect.ExtensionType, len(allExtensions)),
	}
	for _, id := range allExtensions {
		d, err := descs.FindDescriptorByName(protoreflect.FullName(id))
		if errors.Is(err, protoregistry.NotFound) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", id, err)
		}
		xd, ok := d.(protoreflect.ExtensionDescriptor)
		if !ok {
			return nil, fmt.Errorf("%s is a %T, not an extension", id, d)
		}
		if xd.Kind() != protoreflect.MessageKind {
			return nil, fmt.Errorf("%s must have a message type, got %v", id, xd.Kind())
		}
		xt := dynamicpb.NewExtensionType(xd)
		if err := r.types.RegisterExtension(xt); err != nil {
			return nil, fmt.Errorf("registering %s: %w", id, err)
		}
		r.exts[id] = xt
	}
	return r, nil
}

// ForFile builds a resolver from the file and everything it transitively
// imports.
func ForFile(file protoreflect.FileDescriptor) (*Resolver, error) {
	files := new(protoregistry.Files)
	if err := registerFile(files, file); err != nil {
		return nil, err
	}
	return NewResolver(files)
}

func registerFile(files *protoregistry.Files, file protoreflect.FileDescriptor) error {
	if _, err := files.FindFileByPath(file.Path()); err == nil {
		return nil
	}
	imports := file.Imports()
	for i := range imports.Len() {
		if err := registerFile(files, imports.Get(i).FileDescriptor); err != nil {
			return err
		}
	}
	if err := files.RegisterFile(file); err != nil {
		return fmt.Errorf("registering %s: %w", file.Path(), err)
	}
	return nil
}

// Known reports whether the schema declares the given extension.
func (r *Resolver) Known(id ExtensionID) bool {
	_, ok := r.exts[id]
	return ok
}

// Resolve returns the payload of the given extension on an option block. The
// second result is false when the extension is unknown to the schema, when
// it is not set, when the option block cannot be decoded, or when the
// payload is missing required fields: a partially populated payload is
// treated exactly like an absent one.
//
// opts is a descriptor's option block, as returned by Descriptor.Options.
func (r *Resolver) Resolve(opts proto.Message, id ExtensionID) (protoreflect.Message, bool) {
	xt, ok := r.exts[id]
	if !ok || opts == nil {
		return nil, false
	}
	ref := opts.ProtoReflect()
	if !ref.IsValid() {
		return nil, false
	}
	if ref.Descriptor().FullName() != xt.TypeDescriptor().ContainingMessage().FullName() {
		return nil, false
	}

	// Option blocks decoded without knowledge of our extensions carry them as
	// unknown fields. Re-decode with the dynamic types registered. Required
	// fields are checked per payload below, so one partial sibling does not
	// hide the others.
	data, err := proto.MarshalOptions{AllowPartial: true, Deterministic: true}.Marshal(opts)
	if err != nil {
		return nil, false
	}
	decoded := ref.Type().New()
	err = proto.UnmarshalOptions{AllowPartial: true, Resolver: r.types}.Unmarshal(data, decoded.Interface())
	if err != nil {
		return nil, false
	}

	fd := xt.TypeDescriptor()
	if !decoded.Has(fd) {
		return nil, false
	}
	payload := decoded.Get(fd).Message()
	if proto.CheckInitialized(payload.Interface()) != nil {
		return nil, false
	}
	return payload, true
}

// Has reports whether the extension is set and fully initialized.
func (r *Resolver) Has(opts proto.Message, id ExtensionID) bool {
	_, ok := r.Resolve(opts, id)
	return ok
}
