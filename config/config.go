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

// Package config holds the settings of the standalone protoinject driver.
//
// Settings are read from a YAML file and then overridden by command line
// flags:
//
//	proto_paths: [proto]
//	protos: ["**/*.proto"]
//	out: gen
//	generators: [defaults, forms]
//	nested: true
//	forms:
//	  dir: forms
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/protoinject"
	"github.com/bufbuild/protoinject/defaults"
	"github.com/bufbuild/protoinject/forms"
	"github.com/bufbuild/protoinject/insert"
	"github.com/bufbuild/protoinject/trace"
)

// DefaultFile is the configuration file read when none is named.
const DefaultFile = "protoinject.yaml"

// Generator names.
const (
	GeneratorDefaults = "defaults"
	GeneratorForms    = "forms"
	GeneratorTrace    = "trace"
)

// Config is the driver configuration.
type Config struct {
	// ProtoPaths are the import paths schema files are resolved against.
	ProtoPaths []string `yaml:"proto_paths"`
	// Protos are doublestar patterns, relative to the import paths, of the
	// files to generate for.
	Protos []string `yaml:"protos"`
	// Out is the directory holding the artifacts of protoc's C++ generator,
	// which is also where output is written.
	Out string `yaml:"out"`
	// Artifacts are doublestar patterns, relative to Out, of the existing
	// artifacts to load.
	Artifacts []string `yaml:"artifacts"`
	// Generators to run, in order.
	Generators []string `yaml:"generators"`
	// Parameters are passed to generators as a protoc parameter string.
	Parameters string `yaml:"parameters"`
	// Nested enables generation for nested messages.
	Nested bool `yaml:"nested"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	Defaults DefaultsConfig `yaml:"defaults"`
	Forms    FormsConfig    `yaml:"forms"`
	Trace    TraceConfig    `yaml:"trace"`
}

// DefaultsConfig configures the defaults generator.
type DefaultsConfig struct {
	// Slot is the message-scoped slot statements go to.
	Slot string `yaml:"slot"`
}

// FormsConfig configures the forms generator.
type FormsConfig struct {
	// Dir is the directory, relative to Out, documents are written to.
	Dir string `yaml:"dir"`
}

// TraceConfig configures the trace generator.
type TraceConfig struct {
	// Slots restricts the traced message-scoped slots.
	Slots []string `yaml:"slots"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ProtoPaths: []string{"."},
		Out:        ".",
		Artifacts:  []string{"**/*.pb.h", "**/*.pb.cc"},
		Generators: []string{GeneratorDefaults, GeneratorForms},
		Defaults:   DefaultsConfig{Slot: string(insert.ArenaConstructor)},
		Forms:      FormsConfig{Dir: forms.DefaultDir},
	}
}

// Parse decodes a YAML configuration on top of the defaults. Unknown keys
// are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// Load reads and decodes a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks generator names and slots.
func (c *Config) Validate() error {
	if len(c.Generators) == 0 {
		return errors.New("no generators configured")
	}
	for _, name := range c.Generators {
		if !slices.Contains([]string{GeneratorDefaults, GeneratorForms, GeneratorTrace}, name) {
			return fmt.Errorf("unknown generator %q", name)
		}
	}
	if c.Defaults.Slot != "" {
		if err := checkSourceSlot(insert.Slot(c.Defaults.Slot)); err != nil {
			return fmt.Errorf("defaults: %w", err)
		}
	}
	for _, slot := range c.Trace.Slots {
		if err := checkSourceSlot(insert.Slot(slot)); err != nil {
			return fmt.Errorf("trace: %w", err)
		}
	}
	return nil
}

func checkSourceSlot(slot insert.Slot) error {
	if !slices.Contains(insert.MessageSlots(insert.Source), slot) {
		return fmt.Errorf("%w: %q is not a message-scoped slot of the source file", insert.ErrUnknownSlot, slot)
	}
	return nil
}

// NewGenerators returns the configured generators, in order.
func (c *Config) NewGenerators() ([]protoinject.Generator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	gens := make([]protoinject.Generator, 0, len(c.Generators))
	for _, name := range c.Generators {
		switch name {
		case GeneratorDefaults:
			gens = append(gens, &defaults.Generator{Nested: c.Nested, Slot: insert.Slot(c.Defaults.Slot)})
		case GeneratorForms:
			gens = append(gens, &forms.Generator{Nested: c.Nested, Dir: c.Forms.Dir})
		case GeneratorTrace:
			slots := make([]insert.Slot, len(c.Trace.Slots))
			for i, s := range c.Trace.Slots {
				slots[i] = insert.Slot(s)
			}
			gens = append(gens, &trace.Generator{Nested: c.Nested, Slots: slots})
		}
	}
	return gens, nil
}
