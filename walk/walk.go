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

// Package walk provides helper functions for traversing the messages of a
// file descriptor.
package walk

import (
	"google.golang.org/protobuf/reflect/protoreflect"
)

// Options control which messages a walk visits.
type Options struct {
	// Nested enables visiting messages declared inside other messages.
	Nested bool
}

// Visit is a message found during a walk.
type Visit struct {
	Message protoreflect.MessageDescriptor
	// Depth is zero for top-level messages, one for messages nested in them,
	// and so on.
	Depth int
}

// Messages calls fn for every message in the file, in declaration order. When
// nested messages are enabled, each message's nested messages are visited
// right after it (pre-order). Synthetic map entry messages are skipped.
//
// The walk uses an explicit stack rather than recursion, so its stack usage
// does not depend on how deeply messages are nested. If fn returns an error,
// the walk stops and returns it.
func Messages(file protoreflect.FileDescriptor, opts Options, fn func(Visit) error) error {
	var stack []Visit
	stack = pushMessages(stack, file.Messages(), 0)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(v); err != nil {
			return err
		}
		if opts.Nested {
			stack = pushMessages(stack, v.Message.Messages(), v.Depth+1)
		}
	}
	return nil
}

// pushMessages pushes msgs in reverse so that they pop in declaration order.
func pushMessages(stack []Visit, msgs protoreflect.MessageDescriptors, depth int) []Visit {
	for i := msgs.Len() - 1; i >= 0; i-- {
		msg := msgs.Get(i)
		if msg.IsMapEntry() {
			continue
		}
		stack = append(stack, Visit{Message: msg, Depth: depth})
	}
	return stack
}

// Fields calls fn for every field of msg in declaration order, stopping at the
// first error. Extensions declared inside msg are not its fields and are not
// visited.
func Fields(msg protoreflect.MessageDescriptor, fn func(protoreflect.FieldDescriptor) error) error {
	fields := msg.Fields()
	for i := range fields.Len() {
		if err := fn(fields.Get(i)); err != nil {
			return err
		}
	}
	return nil
}
