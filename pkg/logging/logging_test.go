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

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"silent", LevelSilent},
		{"off", LevelSilent},
		{"  DEBUG ", LevelDebug},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: LevelWarn, Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("levels below warn should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn and error should be logged, got %q", out)
	}
}

func TestSilentSuppressesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: LevelSilent, Output: &buf})

	l.Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("silent logger produced output: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	l.WithField("artifact", "release.tar.gz").Info("signed %d files", 3)

	var entry struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "info" {
		t.Errorf("level = %q, want info", entry.Level)
	}
	if entry.Message != "signed 3 files" {
		t.Errorf("message = %q, want %q", entry.Message, "signed 3 files")
	}
	if entry.Fields["artifact"] != "release.tar.gz" {
		t.Errorf("fields = %v, missing artifact", entry.Fields)
	}
}

func TestTextFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Level: LevelInfo, Output: &buf})

	l.WithFields(map[string]interface{}{"b": 2, "a": 1, "c": 3}).Info("msg")

	out := strings.TrimSuffix(buf.String(), "\n")
	want := "msg a=1 b=2 c=3"
	if out != want {
		t.Errorf("text output = %q, want %q", out, want)
	}
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(Options{Level: LevelInfo, Output: &buf})

	_ = parent.WithField("child", true)
	parent.Info("plain")

	if strings.Contains(buf.String(), "child") {
		t.Errorf("parent logger picked up child fields: %q", buf.String())
	}
}

func TestEnsure(t *testing.T) {
	if Ensure(nil) == nil {
		t.Fatal("Ensure(nil) returned nil")
	}
	l := Default()
	if Ensure(l) != l {
		t.Error("Ensure should return the provided logger unchanged")
	}
}
