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

// Package keyring holds signing identities imported from a decrypted
// credential bundle. The keyring is an explicit, locally-scoped object:
// it is returned by credential acquisition, passed to the signer, and
// purged when the run ends. Nothing in this package touches ambient
// process state or the user's GnuPG home.
package keyring

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// ErrPurged is returned by every operation on a keyring after Purge.
var ErrPurged = errors.New("keyring has been purged")

// ErrNoIdentity is returned when fingerprint selection matches nothing.
var ErrNoIdentity = errors.New("no matching signing identity")

// Keyring is a set of imported OpenPGP signing identities.
type Keyring struct {
	entities openpgp.EntityList
	material []byte // retained bundle bytes, wiped on purge
	purged   bool
}

// Import parses an OpenPGP private key bundle, armored or binary, and
// returns a keyring holding its identities. Passphrase-protected keys are
// unlocked with keyPassphrase; pass nil for unprotected bundles.
func Import(bundle, keyPassphrase []byte) (*Keyring, error) {
	if len(bundle) == 0 {
		return nil, errors.New("empty key bundle")
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(bundle))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(bundle))
		if err != nil {
			return nil, fmt.Errorf("parsing key bundle: %w", err)
		}
	}
	if len(entities) == 0 {
		return nil, errors.New("key bundle contains no identities")
	}

	for _, e := range entities {
		if err := unlockEntity(e, keyPassphrase); err != nil {
			return nil, err
		}
	}

	retained := make([]byte, len(bundle))
	copy(retained, bundle)

	return &Keyring{entities: entities, material: retained}, nil
}

// unlockEntity decrypts the private key and signing-capable subkeys of e
// when they are passphrase-protected.
func unlockEntity(e *openpgp.Entity, passphrase []byte) error {
	if e.PrivateKey == nil {
		return fmt.Errorf("bundle key %s has no private key", keyID(e))
	}
	if e.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("key %s is passphrase-protected but no key passphrase was provided", keyID(e))
		}
		if err := e.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("unlocking key %s: %w", keyID(e), err)
		}
	}
	for _, sub := range e.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			if len(passphrase) == 0 {
				return fmt.Errorf("subkey of %s is passphrase-protected but no key passphrase was provided", keyID(e))
			}
			if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
				return fmt.Errorf("unlocking subkey of %s: %w", keyID(e), err)
			}
		}
	}
	return nil
}

// Entity selects an identity by fingerprint. Matching is hex,
// case-insensitive, and accepts a suffix (long key ID) as well as the full
// fingerprint. An empty fingerprint selects a sole imported identity and
// errors when the keyring holds more than one.
func (k *Keyring) Entity(fingerprint string) (*openpgp.Entity, error) {
	if k.purged {
		return nil, ErrPurged
	}

	want := normalizeFingerprint(fingerprint)
	if want == "" {
		if len(k.entities) != 1 {
			return nil, fmt.Errorf("%w: keyring holds %d identities, a fingerprint is required",
				ErrNoIdentity, len(k.entities))
		}
		return k.entities[0], nil
	}

	for _, e := range k.entities {
		if strings.HasSuffix(keyID(e), want) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: fingerprint %s not in keyring (have %s)",
		ErrNoIdentity, fingerprint, strings.Join(k.Fingerprints(), ", "))
}

// Fingerprints returns the hex fingerprints of all imported identities.
func (k *Keyring) Fingerprints() []string {
	if k.purged {
		return nil
	}
	fps := make([]string, 0, len(k.entities))
	for _, e := range k.entities {
		fps = append(fps, keyID(e))
	}
	return fps
}

// Purged reports whether Purge has run.
func (k *Keyring) Purged() bool {
	return k.purged
}

// Purge erases retained credential material and drops every identity. The
// keyring is unusable afterwards. Purge is idempotent: calling it again is
// a no-op with the same end state.
func (k *Keyring) Purge() {
	if k.purged {
		return
	}
	for i := range k.material {
		k.material[i] = 0
	}
	k.material = nil
	k.entities = nil
	k.purged = true
}

// keyID returns the lowercase hex fingerprint of e's primary key.
func keyID(e *openpgp.Entity) string {
	return strings.ToLower(hex.EncodeToString(e.PrimaryKey.Fingerprint))
}

// normalizeFingerprint strips spaces and the optional 0x prefix operators
// paste from key servers.
func normalizeFingerprint(fp string) string {
	fp = strings.ToLower(strings.ReplaceAll(fp, " ", ""))
	return strings.TrimPrefix(fp, "0x")
}
