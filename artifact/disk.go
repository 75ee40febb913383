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

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReads bounds the number of artifacts read at once by Load.
const maxConcurrentReads = 16

// Load reads the artifacts under dir whose slash-separated relative paths
// match any of the doublestar patterns (for example "**/*.pb.{h,cc}"). A
// missing dir yields an empty workspace.
func Load(ctx context.Context, dir string, patterns ...string) (*Workspace, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return NewWorkspace(), nil
	}
	fsys := os.DirFS(dir)
	var names []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		names = append(names, matches...)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	contents := make([][]byte, len(names))
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(maxConcurrentReads)
	for i, name := range names {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return err
			}
			contents[i] = data
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	w := NewWorkspace()
	for i, name := range names {
		w.Add(name, contents[i])
	}
	return w, nil
}

// Write writes every changed artifact to dir, creating directories as
// needed, and returns the names written.
func (w *Workspace) Write(dir string) ([]string, error) {
	names := w.Changed()
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, w.artifacts[name].content, 0o644); err != nil {
			return nil, err
		}
		w.artifacts[name].changed = false
	}
	return names, nil
}
