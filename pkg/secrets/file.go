// Copyright 2026 The Release Signing Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secrets

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads an already-downloaded credential bundle from disk. Used
// on air-gapped runners and in tests. A missing file is an absence, not an
// error.
type FileSource struct {
	// Path is the bundle location.
	Path string
}

var _ Source = (*FileSource)(nil)

// Description identifies the source for logs.
func (f *FileSource) Description() string {
	return fmt.Sprintf("file://%s", f.Path)
}

// Fetch reads the bundle file. A missing or empty path wraps
// ErrUnavailable.
func (f *FileSource) Fetch(_ context.Context) (*Blob, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("%w: no credential file configured", ErrUnavailable)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrUnavailable, f.Path)
		}
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return &Blob{Data: data, Origin: f.Description()}, nil
}
