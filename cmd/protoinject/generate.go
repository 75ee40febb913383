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

package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bufbuild/protoinject"
	"github.com/bufbuild/protoinject/artifact"
	"github.com/bufbuild/protoinject/compile"
	"github.com/bufbuild/protoinject/config"
	"github.com/bufbuild/protoinject/reporter"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [pattern...]",
		Short: "Run generators over schema files",
		Long: `Compiles the schema files matching the patterns (doublestar globs relative to
the import paths), runs the configured generators over each of them, and
writes the results into the output directory.

A file whose generation fails leaves no output behind; other files are
still written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			cfg.Protos = append(cfg.Protos, args...)

			log := logrus.New()
			log.Out = cmd.ErrOrStderr()
			if cfg.Verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return generate(cmd.Context(), cfg, log)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

// generate runs the configured generators over every matching schema file.
// Each file's output is committed on its own.
func generate(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) error {
	gens, err := cfg.NewGenerators()
	if err != nil {
		return err
	}
	names, err := findProtos(cfg.ProtoPaths, cfg.Protos)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no schema files match %q", cfg.Protos)
	}

	compiler := &compile.Compiler{ImportPaths: cfg.ProtoPaths, Log: log}
	files, err := compiler.Compile(ctx, names...)
	if err != nil {
		return err
	}
	ws, err := artifact.Load(ctx, cfg.Out, cfg.Artifacts...)
	if err != nil {
		return fmt.Errorf("loading artifacts: %w", err)
	}

	params := protoinject.ParseParameters(cfg.Parameters)
	rep := reporter.NewLogReporter(log)
	var failed int
	for _, file := range files {
		err := protoinject.Run(file, params, ws, rep, log, gens...)
		if err == nil {
			err = ws.Commit()
		} else {
			ws.Discard()
		}
		if err != nil {
			log.WithField("file", file.Path()).Error(err)
			failed++
		}
	}

	written, err := ws.Write(cfg.Out)
	if err != nil {
		return fmt.Errorf("writing artifacts: %w", err)
	}
	for _, name := range written {
		log.WithField("artifact", name).Info("written")
	}
	if failed > 0 {
		return fmt.Errorf("generation failed for %d of %d file(s)", failed, len(files))
	}
	return nil
}

// findProtos expands the patterns against each import path, returning
// import-relative file names without duplicates, sorted.
func findProtos(importPaths, patterns []string) ([]string, error) {
	var names []string
	for _, dir := range importPaths {
		fsys := os.DirFS(dir)
		for _, pattern := range patterns {
			matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("matching %q in %s: %w", pattern, dir, err)
			}
			names = append(names, matches...)
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}
