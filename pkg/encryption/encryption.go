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

// Package encryption implements the symmetric cipher used to protect
// signing credential bundles at rest. The format is interoperable with
// `openssl enc -aes-256-cbc -pbkdf2 -iter 600000 -md sha256`: a "Salted__"
// magic header, an 8-byte random salt, and AES-256-CBC ciphertext with
// PKCS#7 padding. Key and IV are derived together from the passphrase via
// PBKDF2-HMAC-SHA256.
package encryption

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 iteration count. It matches the release
	// pipeline's OpenSSL invocation and must not change without
	// re-encrypting every existing bundle.
	Iterations = 600000

	// saltedMagic prefixes every bundle, as written by `openssl enc`.
	saltedMagic = "Salted__"

	saltLen = 8
	keyLen  = 32
	ivLen   = aes.BlockSize
)

// ErrMalformed reports ciphertext that does not carry the expected header
// or block structure. A wrong passphrase surfaces as ErrDecrypt instead,
// since CBC cannot distinguish the two until padding is checked.
var ErrMalformed = errors.New("malformed credential bundle")

// ErrDecrypt reports a decryption failure, typically a wrong passphrase or
// a corrupted bundle body.
var ErrDecrypt = errors.New("credential bundle decryption failed")

// deriveKeyIV stretches the passphrase into an AES-256 key and a CBC IV in
// a single PBKDF2 derivation, matching OpenSSL's key+IV layout.
func deriveKeyIV(passphrase, salt []byte) (key, iv []byte) {
	material := pbkdf2.Key(passphrase, salt, Iterations, keyLen+ivLen, sha256.New)
	return material[:keyLen], material[keyLen:]
}

// Decrypt decrypts an OpenSSL-format bundle with the given passphrase.
func Decrypt(ciphertext, passphrase []byte) ([]byte, error) {
	if len(ciphertext) < len(saltedMagic)+saltLen+aes.BlockSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrMalformed, len(ciphertext))
	}
	if !bytes.HasPrefix(ciphertext, []byte(saltedMagic)) {
		return nil, fmt.Errorf("%w: missing %q header", ErrMalformed, saltedMagic)
	}

	salt := ciphertext[len(saltedMagic) : len(saltedMagic)+saltLen]
	body := ciphertext[len(saltedMagic)+saltLen:]
	if len(body)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: body is not block-aligned", ErrMalformed)
	}

	key, iv := deriveKeyIV(passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	plaintext := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, body)

	unpadded, err := stripPadding(plaintext)
	if err != nil {
		return nil, err
	}
	return unpadded, nil
}

// Encrypt encrypts plaintext under the passphrase, producing a bundle that
// OpenSSL (and Decrypt) can open. The salt is freshly random per call.
func Encrypt(plaintext, passphrase []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	key, iv := deriveKeyIV(passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}

	padded := applyPadding(plaintext)
	out := make([]byte, 0, len(saltedMagic)+saltLen+len(padded))
	out = append(out, saltedMagic...)
	out = append(out, salt...)

	body := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(body, padded)
	return append(out, body...), nil
}

// applyPadding appends PKCS#7 padding. A full block is added when the
// plaintext is already aligned.
func applyPadding(data []byte) []byte {
	pad := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data)+pad)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	return padded
}

// stripPadding validates and removes PKCS#7 padding.
func stripPadding(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrDecrypt)
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > aes.BlockSize || pad > len(data) {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecrypt)
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("%w: invalid padding", ErrDecrypt)
		}
	}
	return data[:len(data)-pad], nil
}

// Wipe zeroes a byte slice holding sensitive material. Callers use it to
// scrub passphrases and decrypted bundles once they are no longer needed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
