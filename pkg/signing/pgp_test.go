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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/release-signing/release-signing/internal/pgptest"
	"github.com/release-signing/release-signing/pkg/keyring"
	"github.com/release-signing/release-signing/pkg/verify"
)

func newTestSigner(t *testing.T) (*PGPSigner, string) {
	t.Helper()
	entity := pgptest.NewEntity(t, "Release Robot", "releases@example.org")
	kr, err := keyring.Import(pgptest.ArmorPrivate(t, entity), nil)
	if err != nil {
		t.Fatalf("importing test key: %v", err)
	}
	t.Cleanup(kr.Purge)

	signer, err := NewPGPSigner(kr, pgptest.Fingerprint(entity))
	if err != nil {
		t.Fatalf("NewPGPSigner() error = %v", err)
	}

	pubPath := filepath.Join(t.TempDir(), "release.pub.asc")
	if err := os.WriteFile(pubPath, pgptest.ArmorPublic(t, entity), 0o600); err != nil {
		t.Fatal(err)
	}
	return signer, pubPath
}

func TestSignFileRoundTrip(t *testing.T) {
	signer, pubPath := newTestSigner(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "app-3.0.1.tar.gz")
	if err := os.WriteFile(path, []byte("artifact payload"), 0o600); err != nil {
		t.Fatal(err)
	}

	sigPath, err := signer.SignFile(context.Background(), path)
	if err != nil {
		t.Fatalf("SignFile() error = %v", err)
	}
	if sigPath != path+".asc" {
		t.Errorf("signature path = %s, want %s.asc", sigPath, path)
	}

	sig, err := os.ReadFile(sigPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(sig, []byte("-----BEGIN PGP SIGNATURE-----")) {
		t.Errorf("signature is not armored:\n%s", sig)
	}

	keys, err := verify.LoadPublicKeys(pubPath)
	if err != nil {
		t.Fatalf("LoadPublicKeys() error = %v", err)
	}
	if _, err := verify.Detached(keys, path, sigPath); err != nil {
		t.Errorf("Detached() error = %v, want valid signature", err)
	}

	// Mutating the artifact must invalidate the signature.
	if err := os.WriteFile(path, []byte("tampered payload!"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := verify.Detached(keys, path, sigPath); err == nil {
		t.Error("Detached() accepted signature over mutated artifact")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer, _ := newTestSigner(t)
	_, otherPub := newTestSigner(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "app.tar.gz")
	if err := os.WriteFile(path, []byte("payload"), 0o600); err != nil {
		t.Fatal(err)
	}
	sigPath, err := signer.SignFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	keys, err := verify.LoadPublicKeys(otherPub)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verify.Detached(keys, path, sigPath); err == nil {
		t.Error("Detached() accepted signature from a key outside the keyring")
	}
}

func TestSignFileMissingArtifact(t *testing.T) {
	signer, _ := newTestSigner(t)

	_, err := signer.SignFile(context.Background(), filepath.Join(t.TempDir(), "missing.tar.gz"))
	if err == nil {
		t.Error("SignFile() on missing file expected error")
	}
}

func TestSignAllOutcomesAreIndependent(t *testing.T) {
	signer, pubPath := newTestSigner(t)

	dir := t.TempDir()
	good1 := filepath.Join(dir, "a.tar.gz")
	good2 := filepath.Join(dir, "c.dmg")
	missing := filepath.Join(dir, "b.exe")
	for _, p := range []string{good1, good2} {
		if err := os.WriteFile(p, []byte("data for "+p), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	result := SignAll(context.Background(), signer, []string{good1, missing, good2}, nil)

	if len(result.Outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(result.Outcomes))
	}
	if result.Signed() != 2 {
		t.Errorf("Signed() = %d, want 2", result.Signed())
	}
	if result.Outcomes[1].Err == nil {
		t.Error("missing artifact should record a failed outcome")
	}

	// The failure in the middle must not block the artifact after it.
	keys, err := verify.LoadPublicKeys(pubPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{good1, good2} {
		if _, err := verify.Detached(keys, p, p+".asc"); err != nil {
			t.Errorf("artifact %s not validly signed: %v", p, err)
		}
	}

	aggErr := result.Err()
	if aggErr == nil {
		t.Fatal("Result.Err() = nil, want aggregate failure")
	}
	if !strings.Contains(aggErr.Error(), "b.exe") {
		t.Errorf("aggregate error does not name the failed artifact: %v", aggErr)
	}
}

func TestSignAllCleanRun(t *testing.T) {
	signer, _ := newTestSigner(t)

	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.tar.gz", "b.dmg", "c.exe"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(name), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	result := SignAll(context.Background(), signer, paths, nil)
	if err := result.Err(); err != nil {
		t.Fatalf("Result.Err() = %v, want nil", err)
	}
	if result.Signed() != 3 {
		t.Errorf("Signed() = %d, want 3", result.Signed())
	}
}

func TestNewPGPSignerUnknownFingerprint(t *testing.T) {
	entity := pgptest.NewEntity(t, "Release Robot", "releases@example.org")
	kr, err := keyring.Import(pgptest.ArmorPrivate(t, entity), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer kr.Purge()

	if _, err := NewPGPSigner(kr, strings.Repeat("00", 20)); !errors.Is(err, keyring.ErrNoIdentity) {
		t.Errorf("NewPGPSigner() error = %v, want ErrNoIdentity", err)
	}
}
