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

// Package artifact collects release artifacts from a flat build output
// directory and derives their signature sibling paths and checksum
// manifests.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SignatureExt is the extension of detached armored signature files.
const SignatureExt = ".asc"

// Artifact is one distributable file produced by the build.
type Artifact struct {
	// Path is the artifact location on disk.
	Path string
	// Size is the file size in bytes at collection time.
	Size int64
}

// Name returns the artifact's base name.
func (a Artifact) Name() string {
	return filepath.Base(a.Path)
}

// SignaturePath returns the detached signature sibling, `<path>.asc`.
func (a Artifact) SignaturePath() string {
	return a.Path + SignatureExt
}

// Collect gathers artifacts from dir matching the glob patterns. Patterns
// are relative to dir; an empty pattern list matches every regular file.
// Results are sorted and deduplicated. Signature siblings and checksum
// manifests from earlier runs are never collected. An empty result is
// valid: a build may legitimately produce nothing to sign.
func Collect(dir string, patterns []string) ([]Artifact, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("artifact directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifact directory %q is not a directory", dir)
	}

	if len(patterns) == 0 {
		patterns = []string{"*"}
	}

	seen := make(map[string]bool)
	var artifacts []Artifact
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad artifact pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] || skip(match) {
				continue
			}
			fi, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("stat %q: %w", match, err)
			}
			if fi.IsDir() {
				continue
			}
			seen[match] = true
			artifacts = append(artifacts, Artifact{Path: match, Size: fi.Size()})
		}
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })
	return artifacts, nil
}

// skip filters files this tool itself produces.
func skip(path string) bool {
	if strings.HasSuffix(path, SignatureExt) {
		return true
	}
	base := filepath.Base(path)
	return base == ChecksumManifestName(SHA256) || base == ChecksumManifestName(BLAKE2b)
}
