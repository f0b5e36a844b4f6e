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

// Package verify checks detached armored signatures against release
// artifacts. It is the read-side counterpart of pkg/signing and needs only
// public key material.
package verify

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// LoadPublicKeys reads an armored public keyring from a file.
func LoadPublicKeys(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening public key %q: %w", path, err)
	}
	defer f.Close()
	return ReadPublicKeys(f)
}

// ReadPublicKeys reads an armored public keyring.
func ReadPublicKeys(r io.Reader) (openpgp.EntityList, error) {
	entities, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		return nil, fmt.Errorf("parsing public keyring: %w", err)
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("public keyring contains no keys")
	}
	return entities, nil
}

// Detached verifies the armored detached signature at sigPath against the
// artifact's exact bytes. It returns the signer's primary key fingerprint
// in lowercase hex. Any mutation of the artifact after signing makes
// verification fail.
func Detached(keys openpgp.EntityList, artifactPath, sigPath string) (string, error) {
	signed, err := os.Open(artifactPath)
	if err != nil {
		return "", fmt.Errorf("opening artifact: %w", err)
	}
	defer signed.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return "", fmt.Errorf("opening signature: %w", err)
	}
	defer sig.Close()

	signer, err := openpgp.CheckArmoredDetachedSignature(keys, signed, sig, nil)
	if err != nil {
		return "", fmt.Errorf("verifying %s: %w", artifactPath, err)
	}
	return strings.ToLower(hex.EncodeToString(signer.PrimaryKey.Fingerprint)), nil
}
