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

package signing

import (
	"context"
	"crypto"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/release-signing/release-signing/pkg/artifact"
	"github.com/release-signing/release-signing/pkg/keyring"
)

// PGPSigner signs artifacts with an OpenPGP identity selected from a
// keyring by fingerprint.
type PGPSigner struct {
	entity *openpgp.Entity
	config *packet.Config
}

var _ Signer = (*PGPSigner)(nil)

// NewPGPSigner selects the signing identity from the keyring. An empty
// fingerprint is allowed when the keyring holds exactly one identity.
func NewPGPSigner(kr *keyring.Keyring, fingerprint string) (*PGPSigner, error) {
	entity, err := kr.Entity(fingerprint)
	if err != nil {
		return nil, err
	}
	return &PGPSigner{
		entity: entity,
		config: &packet.Config{DefaultHash: crypto.SHA256},
	}, nil
}

// SignFile writes `<path>.asc`, a detached armored signature over the
// file's exact bytes.
func (s *PGPSigner) SignFile(_ context.Context, path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening artifact: %w", err)
	}
	defer in.Close()

	sigPath := path + artifact.SignatureExt
	out, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("creating signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(out, s.entity, in, s.config); err != nil {
		out.Close()
		os.Remove(sigPath) // never leave a truncated signature behind
		return "", fmt.Errorf("signing: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(sigPath)
		return "", fmt.Errorf("flushing signature file: %w", err)
	}
	return sigPath, nil
}
