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

// Package pipeline orchestrates the conditional signing step of a release
// run: acquire credential, conditionally sign every artifact, and always
// purge credential material before returning.
//
// The step has exactly two states. It starts unsigned; a successful
// credential import moves it to signed, and there is no way back. Absence
// of a credential keeps the run in the unsigned state and is success.
// A credential that was retrieved but cannot be decrypted or imported, or
// a signing failure on any artifact, fails the run; failures are reported
// only after every artifact has been attempted.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/release-signing/release-signing/pkg/artifact"
	"github.com/release-signing/release-signing/pkg/encryption"
	"github.com/release-signing/release-signing/pkg/keyring"
	"github.com/release-signing/release-signing/pkg/logging"
	"github.com/release-signing/release-signing/pkg/secrets"
	"github.com/release-signing/release-signing/pkg/signing"
	"github.com/release-signing/release-signing/pkg/tracing"
)

// Credential is the tagged result of the acquisition step. It is either
// enabled, holding an imported keyring, or disabled with a reason. The
// zero value is not meaningful; use AcquireCredential.
type Credential struct {
	kr     *keyring.Keyring
	reason string
}

// Enabled reports whether signing material was imported.
func (c *Credential) Enabled() bool {
	return c.kr != nil && !c.kr.Purged()
}

// Reason explains why signing is disabled. Empty when enabled.
func (c *Credential) Reason() string {
	return c.reason
}

// Signer builds a signer for the identity selected by fingerprint.
func (c *Credential) Signer(fingerprint string) (signing.Signer, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("signing is disabled: %s", c.reason)
	}
	return signing.NewPGPSigner(c.kr, fingerprint)
}

// Release purges all credential material. It is idempotent, safe on
// disabled credentials, and must run regardless of signing success;
// callers defer it immediately after acquisition.
func (c *Credential) Release() {
	if c.kr != nil {
		c.kr.Purge()
	}
}

// disabled builds a Credential on the unsigned path.
func disabled(reason string) *Credential {
	return &Credential{reason: reason}
}

// AcquireCredential fetches, decrypts, and imports the signing credential.
//
// A nil source, or any fetch error wrapping secrets.ErrUnavailable, yields
// a disabled credential and no error: missing credentials are a degraded
// but valid state. Once a bundle has been retrieved, decryption and import
// failures are real errors — a present-but-broken credential means the
// operator intended to sign.
func AcquireCredential(ctx context.Context, source secrets.Source, passphrase, keyPassphrase []byte, log logging.Logger) (*Credential, error) {
	log = logging.Ensure(log)

	if source == nil {
		return disabled("no credential source configured"), nil
	}

	var cred *Credential
	err := tracing.Run(ctx, "pipeline.acquire_credential", map[string]interface{}{"source": source.Description()}, func(ctx context.Context) error {
		blob, err := source.Fetch(ctx)
		if err != nil {
			if errors.Is(err, secrets.ErrUnavailable) {
				log.Debug("credential fetch: %v", err)
				cred = disabled(err.Error())
				return nil
			}
			return fmt.Errorf("retrieving credential from %s: %w", source.Description(), err)
		}

		if len(passphrase) == 0 {
			return fmt.Errorf("credential retrieved from %s but no passphrase is set", source.Description())
		}

		key, err := encryption.Decrypt(blob.Data, passphrase)
		if err != nil {
			return fmt.Errorf("decrypting credential from %s: %w", blob.Origin, err)
		}
		defer encryption.Wipe(key)

		kr, err := keyring.Import(key, keyPassphrase)
		if err != nil {
			return fmt.Errorf("importing credential from %s: %w", blob.Origin, err)
		}

		log.Debug("imported signing identities: %v", kr.Fingerprints())
		cred = &Credential{kr: kr}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// Options configures one signing run.
type Options struct {
	// ArtifactDir is the flat directory holding build outputs.
	ArtifactDir string
	// Patterns are globs relative to ArtifactDir. Empty matches all files.
	Patterns []string
	// Source supplies the encrypted credential bundle; nil disables signing.
	Source secrets.Source
	// Passphrase decrypts the bundle. Required once a bundle is retrieved.
	Passphrase []byte
	// KeyPassphrase unlocks a passphrase-protected key inside the bundle.
	KeyPassphrase []byte
	// Fingerprint selects the signing identity inside the bundle.
	Fingerprint string
	// WriteChecksums additionally writes a checksum manifest for the
	// collected artifacts.
	WriteChecksums bool
	// ChecksumAlgorithm selects the manifest digest. Defaults to sha256.
	ChecksumAlgorithm artifact.Algorithm
	// Logger receives progress output; nil uses the default logger.
	Logger logging.Logger
}

// Summary reports what one run did.
type Summary struct {
	// Artifacts is the number of collected artifacts.
	Artifacts int
	// Signed is the number of signature files produced.
	Signed int
	// SigningDisabled is true when the run took the unsigned path.
	SigningDisabled bool
	// DisabledReason explains the unsigned path.
	DisabledReason string
	// ChecksumManifest is the manifest path when one was written.
	ChecksumManifest string
	// Outcomes lists the per-artifact results of an enabled run.
	Outcomes []signing.Outcome
}

// Run executes the conditional signing step. The returned error is non-nil
// only on the failure policy described in the package comment; the summary
// is valid whenever the error is nil.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	log := logging.Ensure(opts.Logger)

	artifacts, err := artifact.Collect(opts.ArtifactDir, opts.Patterns)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Artifacts: len(artifacts)}
	if len(artifacts) == 0 {
		log.Warn("no artifacts matched in %s; nothing to sign", opts.ArtifactDir)
	}

	if opts.WriteChecksums && len(artifacts) > 0 {
		algo := opts.ChecksumAlgorithm
		if algo == "" {
			algo = artifact.SHA256
		}
		manifest, err := artifact.WriteChecksums(opts.ArtifactDir, artifacts, algo)
		if err != nil {
			return nil, err
		}
		summary.ChecksumManifest = manifest
		log.Info("wrote checksum manifest %s", manifest)
	}

	cred, err := AcquireCredential(ctx, opts.Source, opts.Passphrase, opts.KeyPassphrase, log)
	if err != nil {
		return nil, err
	}
	// Mandatory cleanup: credential material never outlives the run,
	// whether or not signing below succeeds.
	defer cred.Release()

	if !cred.Enabled() {
		summary.SigningDisabled = true
		summary.DisabledReason = cred.Reason()
		log.Warn("signing disabled: %s; artifacts will be published unsigned", cred.Reason())
		return summary, nil
	}

	signer, err := cred.Signer(opts.Fingerprint)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		paths = append(paths, a.Path)
	}

	result := signing.SignAll(ctx, signer, paths, log)
	summary.Signed = result.Signed()
	summary.Outcomes = result.Outcomes

	if err := result.Err(); err != nil {
		return summary, fmt.Errorf("signing failed for %d of %d artifacts: %w",
			len(artifacts)-result.Signed(), len(artifacts), err)
	}
	return summary, nil
}
