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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content of "+name), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func names(artifacts []Artifact) []string {
	out := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, a.Name())
	}
	return out
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"app-3.0.1.tar.gz",
		"app-3.0.1-macos.dmg",
		"app-3.0.1-win.exe",
		"app-3.0.1.tar.gz.asc", // leftover from a previous run
		"SHA256SUMS",
		"notes.txt",
	)
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "default pattern matches all files",
			patterns: nil,
			want:     []string{"app-3.0.1-macos.dmg", "app-3.0.1-win.exe", "app-3.0.1.tar.gz", "notes.txt"},
		},
		{
			name:     "explicit patterns",
			patterns: []string{"*.tar.gz", "*.dmg"},
			want:     []string{"app-3.0.1-macos.dmg", "app-3.0.1.tar.gz"},
		},
		{
			name:     "overlapping patterns deduplicate",
			patterns: []string{"*.exe", "app-*"},
			want:     []string{"app-3.0.1-macos.dmg", "app-3.0.1-win.exe", "app-3.0.1.tar.gz"},
		},
		{
			name:     "no matches is a valid empty set",
			patterns: []string{"*.msi"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(dir, tt.patterns)
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			gotNames := names(got)
			if len(gotNames) != len(tt.want) {
				t.Fatalf("Collect() = %v, want %v", gotNames, tt.want)
			}
			for i := range tt.want {
				if gotNames[i] != tt.want[i] {
					t.Errorf("Collect()[%d] = %s, want %s", i, gotNames[i], tt.want[i])
				}
			}
		})
	}
}

func TestCollectMissingDir(t *testing.T) {
	if _, err := Collect(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("Collect() on missing directory expected error")
	}
}

func TestSignaturePath(t *testing.T) {
	a := Artifact{Path: "/dist/app-3.0.1.tar.gz"}
	if got := a.SignaturePath(); got != "/dist/app-3.0.1.tar.gz.asc" {
		t.Errorf("SignaturePath() = %s", got)
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"", SHA256, false},
		{"sha256", SHA256, false},
		{"SHA-256", SHA256, false},
		{"blake2b", BLAKE2b, false},
		{"md5", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDigestAndChecksums(t *testing.T) {
	dir := t.TempDir()
	content := []byte("release bytes")
	if err := os.WriteFile(filepath.Join(dir, "app.tar.gz"), content, 0o600); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, dir, "app.dmg")

	sum := sha256.Sum256(content)
	wantHex := hex.EncodeToString(sum[:])

	d, err := Digest(filepath.Join(dir, "app.tar.gz"), SHA256)
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if d != "sha256:"+wantHex {
		t.Errorf("Digest() = %s, want sha256:%s", d, wantHex)
	}

	artifacts, err := Collect(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	path, err := WriteChecksums(dir, artifacts, SHA256)
	if err != nil {
		t.Fatalf("WriteChecksums() error = %v", err)
	}
	if filepath.Base(path) != "SHA256SUMS" {
		t.Errorf("manifest name = %s, want SHA256SUMS", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("manifest has %d lines, want 2:\n%s", len(lines), data)
	}
	if !strings.Contains(string(data), wantHex+"  app.tar.gz") {
		t.Errorf("manifest missing expected entry:\n%s", data)
	}

	// The manifest itself must never be collected as an artifact.
	again, err := Collect(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range again {
		if a.Name() == "SHA256SUMS" {
			t.Error("checksum manifest collected as artifact")
		}
	}
}

func TestBlake2bDigest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "app.tar.gz")

	d, err := Digest(filepath.Join(dir, "app.tar.gz"), BLAKE2b)
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if !strings.HasPrefix(d, "blake2b:") || len(d) != len("blake2b:")+64 {
		t.Errorf("Digest() = %s, want blake2b:<64 hex chars>", d)
	}
}
