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

// Package utils provides small shared helpers: filesystem path validation
// for option structs and masking of sensitive values in log output.
package utils

import (
	"fmt"
	"os"
)

// PathType selects what a validated path must point at.
type PathType int

const (
	// PathTypeFile expects a regular file.
	PathTypeFile PathType = iota
	// PathTypeFolder expects a directory.
	PathTypeFolder
	// PathTypeAny accepts either.
	PathTypeAny
)

// ValidatePath checks that path is non-empty, exists, and matches the
// expected type. fieldName names the offending option in error messages.
func ValidatePath(fieldName, path string, pathType PathType) error {
	if path == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s %q does not exist", fieldName, path)
		}
		return fmt.Errorf("checking %s %q: %w", fieldName, path, err)
	}

	switch pathType {
	case PathTypeFile:
		if info.IsDir() {
			return fmt.Errorf("%s %q is a directory, expected file", fieldName, path)
		}
	case PathTypeFolder:
		if !info.IsDir() {
			return fmt.Errorf("%s %q is a file, expected directory", fieldName, path)
		}
	case PathTypeAny:
	}

	return nil
}

// ValidateFileExists checks that path is an existing regular file.
func ValidateFileExists(fieldName, path string) error {
	return ValidatePath(fieldName, path, PathTypeFile)
}

// ValidateFolderExists checks that path is an existing directory.
func ValidateFolderExists(fieldName, path string) error {
	return ValidatePath(fieldName, path, PathTypeFolder)
}

// ValidateOptionalFile checks path only when it is set.
func ValidateOptionalFile(fieldName, path string) error {
	if path == "" {
		return nil
	}
	return ValidateFileExists(fieldName, path)
}
