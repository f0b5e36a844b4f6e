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

package secrets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "signing-key.asc.enc")
	want := []byte("Salted__ciphertext")
	if err := os.WriteFile(path, want, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("present", func(t *testing.T) {
		blob, err := (&FileSource{Path: path}).Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if !bytes.Equal(blob.Data, want) {
			t.Errorf("Fetch() data = %q, want %q", blob.Data, want)
		}
		if blob.Origin == "" {
			t.Error("Fetch() blob has empty origin")
		}
	})

	t.Run("missing file is absence", func(t *testing.T) {
		_, err := (&FileSource{Path: filepath.Join(dir, "nope.enc")}).Fetch(context.Background())
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("Fetch() error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("empty path is absence", func(t *testing.T) {
		_, err := (&FileSource{}).Fetch(context.Background())
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("Fetch() error = %v, want ErrUnavailable", err)
		}
	})
}

// stubS3 implements s3API for tests.
type stubS3 struct {
	data []byte
	err  error
}

func (s *stubS3) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(s.data))}, nil
}

func TestS3Source(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		src := &S3Source{Bucket: "releases", Key: "keys/signing.enc", client: &stubS3{data: []byte("blob")}}
		blob, err := src.Fetch(context.Background())
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(blob.Data) != "blob" {
			t.Errorf("Fetch() data = %q", blob.Data)
		}
		if blob.Origin != "s3://releases/keys/signing.enc" {
			t.Errorf("Fetch() origin = %q", blob.Origin)
		}
	})

	t.Run("missing object is absence", func(t *testing.T) {
		src := &S3Source{Bucket: "releases", Key: "keys/signing.enc", client: &stubS3{err: &types.NoSuchKey{}}}
		if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Errorf("Fetch() error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("no pointer is absence", func(t *testing.T) {
		if _, err := (&S3Source{}).Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Error("empty pointer should be ErrUnavailable")
		}
	})

	t.Run("missing env authorization is absence", func(t *testing.T) {
		t.Setenv(EnvAccessKeyID, "")
		t.Setenv(EnvSecretAccessKey, "")
		src := &S3Source{Bucket: "releases", Key: "keys/signing.enc"}
		if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
			t.Errorf("Fetch() without credentials error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("transport failure is not absence", func(t *testing.T) {
		src := &S3Source{Bucket: "releases", Key: "keys/signing.enc", client: &stubS3{err: errors.New("connection reset")}}
		_, err := src.Fetch(context.Background())
		if err == nil || errors.Is(err, ErrUnavailable) {
			t.Errorf("Fetch() error = %v, want non-absence failure", err)
		}
	})
}
