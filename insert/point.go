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

package insert

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
)

var (
	// ErrUnknownSlot is returned for slot names outside the vocabulary of
	// the C++ generator.
	ErrUnknownSlot = errors.New("unknown insertion slot")
	// ErrSlotScope is returned when a slot is used with or without an owning
	// message contrary to its definition, or in the wrong artifact.
	ErrSlotScope = errors.New("insertion slot used out of scope")
)

// Slot names a location inside an artifact produced by protoc's C++
// generator. The set of slots is fixed by that generator.
type Slot string

// File-scoped slots, present in both the header and the source file.
const (
	Includes       Slot = "includes"
	NamespaceScope Slot = "namespace_scope"
	GlobalScope    Slot = "global_scope"
)

// Message-scoped slots in the header.
const (
	ClassDefinition Slot = "class_definition"
	ClassScope      Slot = "class_scope"
)

// Message-scoped slots in the source file.
const (
	ArenaConstructor            Slot = "arena_constructor"
	CopyConstructor             Slot = "copy_constructor"
	Destructor                  Slot = "destructor"
	MessageClearStart           Slot = "message_clear_start"
	SerializeToArrayStart       Slot = "serialize_to_array_start"
	SerializeToArrayEnd         Slot = "serialize_to_array_end"
	MessageByteSizeStart        Slot = "message_byte_size_start"
	ClassSpecificMergeFromStart Slot = "class_specific_merge_from_start"
	ClassSpecificCopyFromStart  Slot = "class_specific_copy_from_start"
)

// ArtifactKind distinguishes the artifacts a slot can appear in.
type ArtifactKind int

const (
	// AnyArtifact slots appear in both the header and the source file.
	AnyArtifact ArtifactKind = iota
	// Header slots only appear in the ".pb.h" file.
	Header
	// Source slots only appear in the ".pb.cc" file.
	Source
)

type slotInfo struct {
	message bool
	kind    ArtifactKind
}

var slots = map[Slot]slotInfo{
	Includes:                    {kind: AnyArtifact},
	NamespaceScope:              {kind: AnyArtifact},
	GlobalScope:                 {kind: AnyArtifact},
	ClassDefinition:             {message: true, kind: Header},
	ClassScope:                  {message: true, kind: Header},
	ArenaConstructor:            {message: true, kind: Source},
	CopyConstructor:             {message: true, kind: Source},
	Destructor:                  {message: true, kind: Source},
	MessageClearStart:           {message: true, kind: Source},
	SerializeToArrayStart:       {message: true, kind: Source},
	SerializeToArrayEnd:         {message: true, kind: Source},
	MessageByteSizeStart:        {message: true, kind: Source},
	ClassSpecificMergeFromStart: {message: true, kind: Source},
	ClassSpecificCopyFromStart:  {message: true, kind: Source},
}

// MessageSlots lists the message-scoped slots of the given artifact kind, in
// the order they appear in generated code.
func MessageSlots(kind ArtifactKind) []Slot {
	var all []Slot
	switch kind {
	case Header:
		all = []Slot{ClassDefinition, ClassScope}
	case Source:
		all = []Slot{
			ArenaConstructor, CopyConstructor, Destructor, MessageClearStart,
			SerializeToArrayStart, SerializeToArrayEnd, MessageByteSizeStart,
			ClassSpecificMergeFromStart, ClassSpecificCopyFromStart,
		}
	}
	return all
}

// Known reports whether s belongs to the slot vocabulary.
func (s Slot) Known() bool {
	_, ok := slots[s]
	return ok
}

// MessageScoped reports whether the slot requires an owning message.
func (s Slot) MessageScoped() bool {
	return slots[s].message
}

// Point identifies one insertion point: a slot in an artifact, optionally
// owned by a message.
type Point struct {
	Artifact string
	Slot     Slot
	// Message is the full name of the owning message, for message-scoped
	// slots. It is empty for file-scoped slots.
	Message protoreflect.FullName
}

// Name returns the insertion point name as written in the artifact's marker:
// the slot, followed by ":" and the owning message for message-scoped slots.
func (p Point) Name() string {
	if p.Message == "" {
		return string(p.Slot)
	}
	return string(p.Slot) + ":" + string(p.Message)
}

func (p Point) String() string {
	return p.Artifact + "@" + p.Name()
}

// Validate checks that the slot is in the vocabulary and that it is used
// with the right scope and artifact.
func (p Point) Validate() error {
	info, ok := slots[p.Slot]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownSlot, p.Slot)
	}
	if p.Artifact == "" {
		return fmt.Errorf("insertion point %s: no artifact", p.Name())
	}
	switch {
	case info.message && p.Message == "":
		return fmt.Errorf("%w: %q requires an owning message", ErrSlotScope, p.Slot)
	case !info.message && p.Message != "":
		return fmt.Errorf("%w: %q is file scoped, got message %s", ErrSlotScope, p.Slot, p.Message)
	}
	if kind := artifactKind(p.Artifact); info.kind != AnyArtifact && kind != AnyArtifact && kind != info.kind {
		return fmt.Errorf("%w: %q does not appear in %s", ErrSlotScope, p.Slot, p.Artifact)
	}
	return nil
}

func artifactKind(name string) ArtifactKind {
	switch {
	case strings.HasSuffix(name, ".pb.h"):
		return Header
	case strings.HasSuffix(name, ".pb.cc"):
		return Source
	default:
		return AnyArtifact
	}
}
