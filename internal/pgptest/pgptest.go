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

// Package pgptest generates throwaway OpenPGP identities for tests. Keys
// use Ed25519 so generation stays fast enough for table-driven tests.
package pgptest

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// NewEntity generates a fresh Ed25519 signing identity.
func NewEntity(t *testing.T, name, email string) *openpgp.Entity {
	t.Helper()
	cfg := &packet.Config{Algorithm: packet.PubKeyAlgoEdDSA}
	e, err := openpgp.NewEntity(name, "", email, cfg)
	if err != nil {
		t.Fatalf("generating test key: %v", err)
	}
	return e
}

// ArmorPrivate serializes private keys as a single armored bundle, the
// same shape a decrypted credential bundle has.
func ArmorPrivate(t *testing.T, entities ...*openpgp.Entity) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PrivateKeyType, nil)
	if err != nil {
		t.Fatalf("starting armor block: %v", err)
	}
	for _, e := range entities {
		if err := e.SerializePrivate(w, nil); err != nil {
			t.Fatalf("serializing private key: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing armor block: %v", err)
	}
	return buf.Bytes()
}

// ArmorPublic serializes e's public key as an armored block for
// verification tests.
func ArmorPublic(t *testing.T, e *openpgp.Entity) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatalf("starting armor block: %v", err)
	}
	if err := e.Serialize(w); err != nil {
		t.Fatalf("serializing public key: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing armor block: %v", err)
	}
	return buf.Bytes()
}

// Fingerprint returns e's primary key fingerprint in lowercase hex.
func Fingerprint(e *openpgp.Entity) string {
	return strings.ToLower(hex.EncodeToString(e.PrimaryKey.Fingerprint))
}
