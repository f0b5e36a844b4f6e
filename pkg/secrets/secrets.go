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

// Package secrets retrieves encrypted signing credential bundles. Sources
// distinguish two failure classes: unavailable credentials (no pointer, no
// authorization, object absent) wrap ErrUnavailable and put the pipeline on
// the degraded unsigned path, while everything else is a real error.
package secrets

import (
	"context"
	"errors"
)

// ErrUnavailable marks an expected degraded condition: the credential is
// simply not there for this run. Callers test with errors.Is and must not
// treat it as fatal.
var ErrUnavailable = errors.New("signing credential unavailable")

// Blob is a fetched, still-encrypted credential bundle.
type Blob struct {
	// Data is the raw ciphertext as stored.
	Data []byte
	// Origin describes where the bundle came from, for logs.
	Origin string
}

// Source fetches an encrypted credential bundle.
type Source interface {
	// Fetch retrieves the bundle. Errors wrapping ErrUnavailable mean
	// the credential is absent rather than broken.
	Fetch(ctx context.Context) (*Blob, error)
	// Description identifies the source for logs and errors.
	Description() string
}
