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

// Package compile turns schema source files into descriptors, for hosts that
// run generators without protoc.
package compile

import (
	"context"
	"fmt"

	"github.com/bufbuild/protocompile"
	protoreporter "github.com/bufbuild/protocompile/reporter"
	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/bufbuild/protoinject/options"
)

// Compiler compiles schema files.
//
// Imports are resolved from Sources first, then from the embedded option
// schema (served as options.Path), then from ImportPaths on disk, and last
// from the standard google/protobuf imports.
type Compiler struct {
	// ImportPaths are the directories searched for files, in order.
	ImportPaths []string
	// Sources maps file paths to in-memory contents.
	Sources map[string]string
	// MaxParallelism bounds the number of files compiled at once. Zero means
	// GOMAXPROCS.
	MaxParallelism int
	// Log receives compiler warnings. Nil drops them.
	Log logrus.FieldLogger
}

// Compile compiles the named files and returns their descriptors, in the
// order given.
func (c *Compiler) Compile(ctx context.Context, names ...string) ([]protoreflect.FileDescriptor, error) {
	resolvers := protocompile.CompositeResolver{
		&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(map[string]string{options.Path: options.Source()}),
		},
	}
	if len(c.Sources) > 0 {
		resolvers = append(protocompile.CompositeResolver{
			&protocompile.SourceResolver{Accessor: protocompile.SourceAccessorFromMap(c.Sources)},
		}, resolvers...)
	}
	if len(c.ImportPaths) > 0 {
		resolvers = append(resolvers, &protocompile.SourceResolver{ImportPaths: c.ImportPaths})
	}

	compiler := protocompile.Compiler{
		Resolver:       protocompile.WithStandardImports(resolvers),
		MaxParallelism: c.MaxParallelism,
		Reporter:       protoreporter.NewReporter(nil, c.warn),
	}
	files, err := compiler.Compile(ctx, names...)
	if err != nil {
		return nil, fmt.Errorf("compiling: %w", err)
	}
	descs := make([]protoreflect.FileDescriptor, len(files))
	for i, f := range files {
		descs[i] = f
	}
	return descs, nil
}

func (c *Compiler) warn(err protoreporter.ErrorWithPos) {
	if c.Log == nil {
		return
	}
	c.Log.WithField("position", err.GetPosition().String()).Warn(err.Unwrap())
}

// Files compiles the named files found in the given import paths.
func Files(ctx context.Context, importPaths []string, names ...string) ([]protoreflect.FileDescriptor, error) {
	c := &Compiler{ImportPaths: importPaths}
	return c.Compile(ctx, names...)
}
