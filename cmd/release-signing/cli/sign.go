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

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/release-signing/release-signing/cmd/release-signing/cli/options"
	"github.com/release-signing/release-signing/internal/pipeline"
	"github.com/release-signing/release-signing/pkg/artifact"
	"github.com/release-signing/release-signing/pkg/utils"
)

func Sign() *cobra.Command {
	o := &options.SignOptions{}
	long := `Sign release artifacts when a signing credential is available.

    Collects the artifacts in ARTIFACT_DIR (filtered by --pattern), fetches
    the encrypted credential bundle named by --bucket/--object or
    --credential-file, decrypts it with the passphrase from the environment
    variable named by --passphrase-env, and writes a detached armored
    signature next to each artifact.

    A missing credential is not an error: the command logs a warning and
    exits 0 so unsigned releases stay possible. A credential that was
    retrieved but cannot be decrypted or imported fails the command, as does
    any signing failure; every artifact is still attempted before the
    failure is reported.

    Credential material is held in memory only and is purged before the
    command returns, whether or not signing succeeded.`

	cmd := &cobra.Command{
		Use:   "sign [OPTIONS] ARTIFACT_DIR",
		Short: "Sign release artifacts when a credential bundle is available.",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			if err := utils.ValidateFolderExists("ARTIFACT_DIR", args[0]); err != nil {
				return err
			}
			algo, err := artifact.ParseAlgorithm(o.ChecksumAlgorithm)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			log := ro.NewLogger()
			log.Debug("bundle passphrase from %s: %s",
				o.PassphraseEnv, utils.MaskSecret(os.Getenv(o.PassphraseEnv)))

			var keyPassphrase []byte
			if o.KeyPassphraseEnv != "" {
				keyPassphrase = []byte(os.Getenv(o.KeyPassphraseEnv))
			}

			summary, err := pipeline.Run(ctx, pipeline.Options{
				ArtifactDir:       args[0],
				Patterns:          o.Patterns,
				Source:            o.Source(),
				Passphrase:        []byte(os.Getenv(o.PassphraseEnv)),
				KeyPassphrase:     keyPassphrase,
				Fingerprint:       o.Fingerprint,
				WriteChecksums:    o.Checksums,
				ChecksumAlgorithm: algo,
				Logger:            log,
			})
			if err != nil {
				return err
			}

			if summary.SigningDisabled {
				fmt.Fprintf(cmd.OutOrStdout(), "%d artifacts left unsigned: %s\n",
					summary.Artifacts, summary.DisabledReason)
				return nil
			}
			for _, outcome := range summary.Outcomes {
				fmt.Fprintf(cmd.OutOrStdout(), "signed %s\n", outcome.SignaturePath)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed %d of %d artifacts\n",
				summary.Signed, summary.Artifacts)
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
