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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is a single structured log record handed to a Formatter.
type Entry struct {
	// Timestamp is when the entry was created.
	Timestamp time.Time
	// Level is the entry's severity.
	Level Level
	// Message is the formatted log message.
	Message string
	// Fields holds structured key-value pairs attached to the entry.
	Fields map[string]interface{}
}

// Formatter renders an Entry into bytes for output.
type Formatter interface {
	Format(entry Entry) ([]byte, error)
}

// TextFormatter renders human-readable text lines. Fields are appended in
// sorted key order so output is stable.
type TextFormatter struct {
	// TimeFormat sets the timestamp layout. Empty disables timestamps.
	TimeFormat string
	// ShowLevel controls whether a [LEVEL] prefix is printed.
	ShowLevel bool
}

// Format renders the entry as a single text line.
func (f *TextFormatter) Format(entry Entry) ([]byte, error) {
	var parts []string

	if f.TimeFormat != "" {
		parts = append(parts, entry.Timestamp.Format(f.TimeFormat))
	}
	if f.ShowLevel {
		parts = append(parts, fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())))
	}
	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		parts = append(parts, strings.Join(pairs, " "))
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// jsonEntry is the serialization shape for JSON output.
type jsonEntry struct {
	Timestamp string                 `json:"timestamp,omitempty"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// JSONFormatter renders one JSON object per entry.
type JSONFormatter struct {
	// TimeFormat sets the timestamp layout. Defaults to time.RFC3339.
	TimeFormat string
}

// Format renders the entry as a JSON object followed by a newline.
func (f *JSONFormatter) Format(entry Entry) ([]byte, error) {
	layout := f.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}

	je := jsonEntry{
		Timestamp: entry.Timestamp.Format(layout),
		Level:     entry.Level.String(),
		Message:   entry.Message,
	}
	if len(entry.Fields) > 0 {
		je.Fields = entry.Fields
	}

	data, err := json.Marshal(je)
	if err != nil {
		// Fields with unmarshalable values must not lose the message.
		fallback := fmt.Sprintf(`{"level":%q,"message":%q}`+"\n",
			entry.Level.String(), entry.Message)
		return []byte(fallback), nil
	}
	return append(data, '\n'), nil
}
