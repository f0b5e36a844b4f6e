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

// Package signing produces detached, ASCII-armored signatures for release
// artifacts. Each artifact is signed independently: one failure never
// prevents attempts on the rest, and the aggregate result carries every
// per-artifact outcome.
package signing

import (
	"context"
	"errors"
	"fmt"

	"github.com/release-signing/release-signing/pkg/logging"
	"github.com/release-signing/release-signing/pkg/tracing"
)

// Signer signs a single file, producing a detached signature sibling.
type Signer interface {
	// SignFile writes a detached armored signature for the file at path
	// and returns the signature path.
	SignFile(ctx context.Context, path string) (string, error)
}

// Outcome is the result of signing one artifact.
type Outcome struct {
	// Artifact is the signed file's path.
	Artifact string
	// SignaturePath is the produced `.asc` path; empty on failure.
	SignaturePath string
	// Err is the per-artifact failure, nil on success.
	Err error
}

// Result aggregates the outcomes of one signing pass.
type Result struct {
	Outcomes []Outcome
}

// Signed returns the number of successfully signed artifacts.
func (r Result) Signed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Err joins every per-artifact failure, or returns nil when all artifacts
// signed cleanly.
func (r Result) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Artifact, o.Err))
		}
	}
	return errors.Join(errs...)
}

// SignAll signs every path with the signer. Outcomes preserve input order.
// Partial success is deliberate: artifacts are independent, and a broken
// one must not block signatures for the rest.
func SignAll(ctx context.Context, signer Signer, paths []string, log logging.Logger) Result {
	log = logging.Ensure(log)

	result := Result{Outcomes: make([]Outcome, 0, len(paths))}
	for _, path := range paths {
		outcome := Outcome{Artifact: path}

		err := tracing.Run(ctx, "signing.sign_file", map[string]interface{}{"artifact": path}, func(ctx context.Context) error {
			sigPath, err := signer.SignFile(ctx, path)
			outcome.SignaturePath = sigPath
			return err
		})
		if err != nil {
			outcome.Err = err
			outcome.SignaturePath = ""
			log.Error("failed to sign %s: %v", path, err)
		} else {
			log.Info("signed %s -> %s", path, outcome.SignaturePath)
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}
