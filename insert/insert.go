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

// Package insert writes generated text into insertion points of artifacts
// produced earlier by protoc's C++ generator, and into brand new artifacts.
//
// Insertion points are identified by a [Point]. Slots come from a closed
// vocabulary ([Slot]); asking for anything else fails before the host is
// consulted. The host itself is abstracted by [ArtifactContext], which is
// implemented by the protoc plugin adapter and by in-memory workspaces.
package insert

import (
	"fmt"
	"io"
)

// ArtifactContext is the host capability for producing output.
type ArtifactContext interface {
	// OpenForInsert returns a writer whose content is inserted into the named
	// artifact at the named insertion point. Opening the same point again
	// appends.
	OpenForInsert(artifact, point string) (io.Writer, error)
	// OpenNew returns a writer for a new artifact.
	OpenNew(artifact string) (io.Writer, error)
}

// Open validates the point and opens it for insertion.
func Open(ctx ArtifactContext, point Point) (*Printer, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}
	w, err := ctx.OpenForInsert(point.Artifact, point.Name())
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", point, err)
	}
	return NewPrinter(w, point.String()), nil
}

// Create opens a new artifact.
func Create(ctx ArtifactContext, artifact string) (*Printer, error) {
	w, err := ctx.OpenNew(artifact)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", artifact, err)
	}
	return NewPrinter(w, artifact), nil
}
