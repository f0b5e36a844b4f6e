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

// Package logging provides a structured, leveled logging interface for
// release-signing. It defines a Logger interface that can be implemented by
// any backend and a Formatter interface for extensible output formats. The
// built-in DefaultLogger supports text and JSON output.
package logging

import "strings"

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is the most verbose level, used for detailed diagnostics.
	LevelDebug Level = iota
	// LevelInfo is used for general informational messages.
	LevelInfo
	// LevelWarn is used for degraded-but-valid conditions, such as a
	// signing run proceeding without credentials.
	LevelWarn
	// LevelError is used for failures.
	LevelError
	// LevelSilent disables all output.
	LevelSilent
)

// String returns the string representation of a level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level. Unrecognized strings parse as
// LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "silent", "none", "off":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// Format represents the output format for log messages.
type Format int

const (
	// FormatText outputs human-readable text logs.
	FormatText Format = iota
	// FormatJSON outputs structured JSON logs.
	FormatJSON
)

// String returns the string representation of a format.
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a string into a Format. Unrecognized strings parse as
// FormatText.
func ParseFormat(s string) Format {
	if strings.ToLower(strings.TrimSpace(s)) == "json" {
		return FormatJSON
	}
	return FormatText
}

// Logger is the leveled, structured logging interface used throughout the
// signing pipeline.
type Logger interface {
	// Debug logs at debug level with printf-style formatting.
	Debug(format string, args ...interface{})
	// Info logs at info level with printf-style formatting.
	Info(format string, args ...interface{})
	// Warn logs at warn level with printf-style formatting.
	Warn(format string, args ...interface{})
	// Error logs at error level with printf-style formatting.
	Error(format string, args ...interface{})

	// GetLevel returns the current minimum level.
	GetLevel() Level

	// WithField returns a new Logger with the given key-value pair added
	// to every entry.
	WithField(key string, value interface{}) Logger
	// WithFields returns a new Logger with the given fields added to
	// every entry.
	WithFields(fields map[string]interface{}) Logger
}

// Default returns an info-level text logger.
func Default() Logger {
	return NewLogger(Options{})
}

// Ensure returns l if non-nil, otherwise a default logger. Library entry
// points use it so a nil Logger option is always safe.
func Ensure(l Logger) Logger {
	if l == nil {
		return Default()
	}
	return l
}
