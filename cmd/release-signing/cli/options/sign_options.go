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

package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/release-signing/release-signing/pkg/secrets"
)

// SignOptions defines flags for the sign command.
type SignOptions struct {
	// Patterns are glob patterns selecting artifacts inside the artifact
	// directory. Empty selects every regular file.
	Patterns []string
	// Bucket and Object locate the encrypted credential bundle in object
	// storage.
	Bucket string
	Object string
	// Region selects the bucket's region.
	Region string
	// Endpoint overrides the storage endpoint, for S3-compatible services.
	Endpoint string
	// CredentialFile reads the encrypted bundle from a local file instead
	// of object storage.
	CredentialFile string
	// PassphraseEnv names the environment variable holding the bundle
	// passphrase.
	PassphraseEnv string
	// KeyPassphraseEnv names the environment variable holding the
	// passphrase of the key inside the bundle, when the key itself is
	// protected.
	KeyPassphraseEnv string
	// Fingerprint selects the signing identity inside the bundle.
	Fingerprint string
	// Checksums additionally writes a checksum manifest.
	Checksums bool
	// ChecksumAlgorithm selects the manifest digest (sha256, blake2b).
	ChecksumAlgorithm string
}

var _ Interface = (*SignOptions)(nil)

// AddFlags adds signing flags to the cobra command.
func (o *SignOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.Patterns, "pattern", nil,
		"glob pattern selecting artifacts to sign; repeatable, defaults to every file")

	cmd.Flags().StringVar(&o.Bucket, "bucket", "",
		"bucket holding the encrypted credential bundle")
	cmd.Flags().StringVar(&o.Object, "object", "",
		"object key of the encrypted credential bundle")
	cmd.Flags().StringVar(&o.Region, "region", "",
		"bucket region")
	cmd.Flags().StringVar(&o.Endpoint, "endpoint", "",
		"custom endpoint for S3-compatible storage")

	cmd.Flags().StringVar(&o.CredentialFile, "credential-file", "",
		"read the encrypted credential bundle from a local file instead of object storage")
	_ = cmd.MarkFlagFilename("credential-file")

	cmd.Flags().StringVar(&o.PassphraseEnv, "passphrase-env", DefaultPassphraseEnv,
		"environment variable holding the bundle passphrase")
	cmd.Flags().StringVar(&o.KeyPassphraseEnv, "key-passphrase-env", "",
		"environment variable holding the passphrase of the key inside the bundle")

	cmd.Flags().StringVar(&o.Fingerprint, "fingerprint", "",
		"fingerprint of the signing identity; may be omitted when the bundle holds exactly one")

	cmd.Flags().BoolVar(&o.Checksums, "checksums", false,
		"also write a checksum manifest for the collected artifacts")
	cmd.Flags().StringVar(&o.ChecksumAlgorithm, "checksum-algorithm", "sha256",
		"checksum manifest digest algorithm (sha256, blake2b)")
}

// Validate checks flag combinations before the command runs.
func (o *SignOptions) Validate() error {
	if o.CredentialFile != "" && (o.Bucket != "" || o.Object != "") {
		return fmt.Errorf("--credential-file and --bucket/--object are mutually exclusive")
	}
	if (o.Bucket == "") != (o.Object == "") {
		return fmt.Errorf("--bucket and --object must be given together")
	}
	return nil
}

// Source builds the credential source the flags describe. It returns nil
// when no source is configured, which disables signing.
func (o *SignOptions) Source() secrets.Source {
	if o.CredentialFile != "" {
		return &secrets.FileSource{Path: o.CredentialFile}
	}
	if o.Bucket != "" {
		return &secrets.S3Source{
			Bucket:   o.Bucket,
			Key:      o.Object,
			Region:   o.Region,
			Endpoint: o.Endpoint,
		}
	}
	return nil
}
