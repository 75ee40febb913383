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

package reporter

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// ErrGenerationFailed is returned by Handler.Error when errors were reported
// but the configured ErrorReporter chose to swallow them.
var ErrGenerationFailed = errors.New("generation failed")

// ErrorWithDescriptor is an error about a schema element.
//
// The value of Error() will contain both the element's full name and the
// underlying error. The value of Unwrap() will only be the underlying error.
type ErrorWithDescriptor interface {
	error
	GetDescriptor() protoreflect.Descriptor
	Unwrap() error
}

// Error creates a new ErrorWithDescriptor.
func Error(d protoreflect.Descriptor, err error) ErrorWithDescriptor {
	return errorWithDescriptor{desc: d, underlying: err}
}

// Errorf creates a new ErrorWithDescriptor whose underlying error is created
// using fmt.Errorf.
func Errorf(d protoreflect.Descriptor, format string, args ...any) ErrorWithDescriptor {
	return errorWithDescriptor{desc: d, underlying: fmt.Errorf(format, args...)}
}

type errorWithDescriptor struct {
	underlying error
	desc       protoreflect.Descriptor
}

func (e errorWithDescriptor) Error() string {
	return fmt.Sprintf("%s: %v", Name(e.desc), e.underlying)
}

// GetDescriptor implements the ErrorWithDescriptor interface, supplying the
// element that caused the error.
func (e errorWithDescriptor) GetDescriptor() protoreflect.Descriptor {
	return e.desc
}

// Unwrap implements the ErrorWithDescriptor interface, supplying the
// underlying error.
func (e errorWithDescriptor) Unwrap() error {
	return e.underlying
}

var _ ErrorWithDescriptor = errorWithDescriptor{}

// Name returns how a descriptor is identified in messages: its full name, or
// the path of a file.
func Name(d protoreflect.Descriptor) string {
	switch d := d.(type) {
	case nil:
		return "<unknown>"
	case protoreflect.FileDescriptor:
		return d.Path()
	default:
		return string(d.FullName())
	}
}
