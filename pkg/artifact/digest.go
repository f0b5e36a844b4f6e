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

package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
	"golang.org/x/crypto/blake2b"
)

// Algorithm selects the checksum manifest digest.
type Algorithm string

const (
	// SHA256 is the default manifest algorithm.
	SHA256 Algorithm = "sha256"
	// BLAKE2b is blake2b-256.
	BLAKE2b Algorithm = "blake2b"
)

// ParseAlgorithm parses a checksum algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sha256", "sha-256":
		return SHA256, nil
	case "blake2b", "blake2b-256":
		return BLAKE2b, nil
	default:
		return "", fmt.Errorf("unsupported checksum algorithm %q (supported: sha256, blake2b)", s)
	}
}

// ChecksumManifestName returns the manifest file name for an algorithm,
// following the conventional SHA256SUMS naming.
func ChecksumManifestName(algo Algorithm) string {
	return strings.ToUpper(string(algo)) + "SUMS"
}

// newHasher returns a fresh hash for the algorithm.
func newHasher(algo Algorithm) (hash.Hash, error) {
	switch algo {
	case SHA256:
		return sha256.New(), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm %q", algo)
	}
}

// Digest hashes one artifact's content with the algorithm. SHA-256 digests
// are rendered in the canonical `sha256:<hex>` notation; other algorithms
// use `<name>:<hex>`.
func Digest(path string, algo Algorithm) (string, error) {
	h, err := newHasher(algo)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %q: %w", path, err)
	}

	if algo == SHA256 {
		return digest.NewDigestFromEncoded(digest.SHA256, hex.EncodeToString(h.Sum(nil))).String(), nil
	}
	return string(algo) + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

// WriteChecksums writes a checksum manifest for the artifacts into dir and
// returns the manifest path. Lines follow the `<hex>  <name>` shasum
// convention so standard tooling can verify them.
func WriteChecksums(dir string, artifacts []Artifact, algo Algorithm) (string, error) {
	var sb strings.Builder
	for _, a := range artifacts {
		d, err := Digest(a.Path, algo)
		if err != nil {
			return "", err
		}
		// Strip the algorithm prefix; the manifest name carries it.
		encoded := d[strings.IndexByte(d, ':')+1:]
		fmt.Fprintf(&sb, "%s  %s\n", encoded, a.Name())
	}

	path := filepath.Join(dir, ChecksumManifestName(algo))
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing checksum manifest: %w", err)
	}
	return path, nil
}
