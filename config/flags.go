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

package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig    = "config"
	FlagProtoPath = "proto-path"
	FlagOut       = "out"
	FlagGenerator = "generator"
	FlagNested    = "nested"
	FlagVerbose   = "verbose"
	FlagFormsDir  = "forms-dir"
)

// RegisterFlags declares the flags that override configuration settings.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "configuration file (default "+DefaultFile+" if present)")
	fs.StringSliceP(FlagProtoPath, "I", nil, "import path for schema files; may be repeated")
	fs.StringP(FlagOut, "o", "", "directory holding the C++ artifacts, and where output is written")
	fs.StringSliceP(FlagGenerator, "g", nil, "generator to run: defaults, forms or trace; may be repeated")
	fs.Bool(FlagNested, false, "also generate for nested messages")
	fs.BoolP(FlagVerbose, "v", false, "log debug diagnostics")
	fs.String(FlagFormsDir, "", "directory, relative to the output, for form documents")
}

// FromFlags loads the configuration file named by the config flag, or
// DefaultFile if it exists, and applies the flags that were set.
func FromFlags(flags *pflag.FlagSet) (*Config, error) {
	path, err := flags.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}
	var cfg *Config
	switch {
	case path != "":
		cfg, err = Load(path)
	default:
		cfg, err = Load(DefaultFile)
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err = Default(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFlags(flags); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyFlags overrides settings with the flags that were set.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagProtoPath:
			c.ProtoPaths, err = flags.GetStringSlice(FlagProtoPath)
		case FlagOut:
			c.Out, err = flags.GetString(FlagOut)
		case FlagGenerator:
			c.Generators, err = flags.GetStringSlice(FlagGenerator)
		case FlagNested:
			c.Nested, err = flags.GetBool(FlagNested)
		case FlagVerbose:
			c.Verbose, err = flags.GetBool(FlagVerbose)
		case FlagFormsDir:
			c.Forms.Dir, err = flags.GetString(FlagFormsDir)
		}
	})
	return err
}
