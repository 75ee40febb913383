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

package protoinject

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/options"
	"github.com/bufbuild/protoinject/reporter"
)

// Generator produces output for one schema file at a time.
type Generator interface {
	// Name identifies the generator in diagnostics.
	Name() string
	// Generate produces the output for fc.File. A non-nil error means the
	// file's output is invalid and must be discarded.
	Generate(fc *FileContext) error
}

// FileContext carries everything a generator needs while processing one
// file. It is created per file and per generator, and never shared between
// files.
type FileContext struct {
	// File is the schema file being processed. It must not be modified.
	File protoreflect.FileDescriptor
	// Parameters are the generator parameters given by the host. They are
	// only reported for diagnostics.
	Parameters Parameters
	// Artifacts receives the generated output.
	Artifacts insert.ArtifactContext
	// Options resolves custom options on the file's descriptors.
	Options *options.Resolver
	// Handler reports errors and warnings.
	Handler *reporter.Handler
	// Log is the diagnostics channel, with the file and generator names
	// attached.
	Log logrus.FieldLogger
}

// Run runs each generator over file, in order, stopping at the first
// failure. Errors are reported through rep (nil means fail on the first
// error and drop warnings) and diagnostics go to log (nil means discard).
func Run(
	file protoreflect.FileDescriptor,
	params Parameters,
	artifacts insert.ArtifactContext,
	rep reporter.Reporter,
	log logrus.FieldLogger,
	generators ...Generator,
) error {
	if log == nil {
		discard := logrus.New()
		discard.Out = io.Discard
		log = discard
	}
	log = log.WithField("file", file.Path())
	resolver, err := options.ForFile(file)
	if err != nil {
		return fmt.Errorf("%s: %w", file.Path(), err)
	}
	for _, p := range params {
		log.WithField("parameter", p.Key).Debugf("value %q", p.Value)
	}
	for _, gen := range generators {
		fc := &FileContext{
			File:       file,
			Parameters: params,
			Artifacts:  artifacts,
			Options:    resolver,
			Handler:    reporter.NewHandler(rep),
			Log:        log.WithField("generator", gen.Name()),
		}
		if err := gen.Generate(fc); err != nil {
			return err
		}
		if err := fc.Handler.Error(); err != nil {
			return err
		}
	}
	return nil
}

// Parameter is one key/value pair of a generator parameter string.
type Parameter struct {
	Key   string
	Value string
}

// Parameters is a parsed generator parameter string, in order.
type Parameters []Parameter

// ParseParameters parses a parameter string the way protoc does: items are
// separated by commas, and each item is split into key and value at its
// first '='. Empty items are ignored.
func ParseParameters(s string) Parameters {
	var params Parameters
	for _, item := range strings.Split(s, ",") {
		if item == "" {
			continue
		}
		key, val, _ := strings.Cut(item, "=")
		params = append(params, Parameter{Key: key, Value: val})
	}
	return params
}

// Get returns the value of the last parameter with the given key.
func (ps Parameters) Get(key string) (string, bool) {
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].Key == key {
			return ps[i].Value, true
		}
	}
	return "", false
}

func (ps Parameters) String() string {
	items := make([]string, len(ps))
	for i, p := range ps {
		if p.Value == "" {
			items[i] = p.Key
		} else {
			items[i] = p.Key + "=" + p.Value
		}
	}
	return strings.Join(items, ",")
}
