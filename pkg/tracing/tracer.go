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

// Package tracing provides a small tracing abstraction for the signing
// pipeline. The default build uses a no-op tracer; building with
// -tags=otel compiles in an OpenTelemetry OTLP exporter configured from
// the standard OTEL_* environment variables. Callers always use the same
// API either way.
package tracing

import "context"

// Span is a named, timed operation within a trace. End must be called when
// the operation completes.
type Span interface {
	// SetAttribute attaches a key-value attribute to the span.
	SetAttribute(key string, value interface{})
	// End marks the span as finished.
	End()
}

// Tracer creates spans for named operations.
type Tracer interface {
	// Start begins a span. The returned context should be passed to
	// downstream calls; the span must be ended with End.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// noopSpan is used when no tracer is configured.
type noopSpan struct{}

func (noopSpan) SetAttribute(string, interface{}) {}
func (noopSpan) End()                             {}

// noopTracer creates no-op spans so call sites never need nil checks.
type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noopSpan{}
}

var globalTracer Tracer = noopTracer{}

// SetTracer installs the global tracer. Passing nil restores the no-op
// tracer. Typically called once at startup by InitFromEnv.
func SetTracer(t Tracer) {
	if t == nil {
		globalTracer = noopTracer{}
		return
	}
	globalTracer = t
}

// Enabled reports whether a real (non-noop) tracer is configured. In the
// default build this is always false.
func Enabled() bool {
	_, noop := globalTracer.(noopTracer)
	return !noop
}

// Start begins a span using the global tracer.
func Start(ctx context.Context, name string) (context.Context, Span) {
	return globalTracer.Start(ctx, name)
}

// Run wraps fn in a span with the given name and attributes, ending the
// span when fn returns. When no real tracer is configured, fn is invoked
// directly with no overhead.
func Run(ctx context.Context, name string, attrs map[string]interface{}, fn func(context.Context) error) error {
	if !Enabled() {
		return fn(ctx)
	}
	ctx, span := globalTracer.Start(ctx, name)
	defer span.End()
	for k, v := range attrs {
		span.SetAttribute(k, v)
	}
	return fn(ctx)
}
