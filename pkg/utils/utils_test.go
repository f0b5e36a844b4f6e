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

package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "artifact.tar.gz")
	if err := os.WriteFile(file, []byte("data"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		pathType PathType
		wantErr  bool
	}{
		{"existing file as file", file, PathTypeFile, false},
		{"existing file as folder", file, PathTypeFolder, true},
		{"existing file as any", file, PathTypeAny, false},
		{"existing dir as folder", dir, PathTypeFolder, false},
		{"existing dir as file", dir, PathTypeFile, true},
		{"missing path", filepath.Join(dir, "nope"), PathTypeAny, true},
		{"empty path", "", PathTypeAny, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath("test path", tt.path, tt.pathType)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q, %v) error = %v, wantErr %v", tt.path, tt.pathType, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOptionalFile(t *testing.T) {
	if err := ValidateOptionalFile("credential file", ""); err != nil {
		t.Errorf("empty optional path should validate, got %v", err)
	}
	if err := ValidateOptionalFile("credential file", "/does/not/exist"); err == nil {
		t.Error("missing optional path should fail once set")
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "***"},
		{"12345678", "***"},
		{"hunter2hunter2", "hunt...ter2"},
	}

	for _, tt := range tests {
		if got := MaskSecret(tt.in); got != tt.want {
			t.Errorf("MaskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
