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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/release-signing/release-signing/cmd/release-signing/cli/options"
	"github.com/release-signing/release-signing/pkg/artifact"
	"github.com/release-signing/release-signing/pkg/utils"
	"github.com/release-signing/release-signing/pkg/verify"
)

func Verify() *cobra.Command {
	o := &options.VerifyOptions{}
	long := `Verify the detached signatures of release artifacts.

    Collects the artifacts in ARTIFACT_DIR (filtered by --pattern) and checks
    each one against its detached armored signature using the public keyring
    given via --public-key. The public key must be paired with the private
    key that produced the signatures.

    The command fails when any artifact lacks a signature file or carries a
    signature that does not verify.`

	cmd := &cobra.Command{
		Use:   "verify [OPTIONS] ARTIFACT_DIR",
		Short: "Verify detached artifact signatures with a public key.",
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.ValidateFolderExists("ARTIFACT_DIR", args[0]); err != nil {
				return err
			}

			keys, err := verify.LoadPublicKeys(o.PublicKeyPath)
			if err != nil {
				return err
			}

			artifacts, err := artifact.Collect(args[0], o.Patterns)
			if err != nil {
				return err
			}
			if len(artifacts) == 0 {
				return fmt.Errorf("no artifacts matched in %s", args[0])
			}

			var errs []error
			for _, a := range artifacts {
				fingerprint, err := verify.Detached(keys, a.Path, a.SignaturePath())
				if err != nil {
					errs = append(errs, err)
					fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED\n", a.Name())
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (signed by %s)\n", a.Name(), fingerprint)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d artifacts failed verification: %w",
					len(errs), len(artifacts), errors.Join(errs...))
			}
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
