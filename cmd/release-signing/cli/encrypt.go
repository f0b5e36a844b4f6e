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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/release-signing/release-signing/cmd/release-signing/cli/options"
	"github.com/release-signing/release-signing/pkg/encryption"
)

func Encrypt() *cobra.Command {
	o := &options.EncryptOptions{}
	long := `Encrypt a signing key into a credential bundle.

    Reads the key file given via --in, encrypts it with the passphrase from
    the environment variable named by --passphrase-env, and writes the
    bundle to --out. The bundle is what the sign command expects to fetch
    from object storage or --credential-file.`

	cmd := &cobra.Command{
		Use:   "encrypt [OPTIONS]",
		Short: "Encrypt a signing key into a credential bundle.",
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			passphrase := os.Getenv(o.PassphraseEnv)
			if passphrase == "" {
				return fmt.Errorf("environment variable %s is not set", o.PassphraseEnv)
			}

			plaintext, err := os.ReadFile(o.In)
			if err != nil {
				return fmt.Errorf("reading key file: %w", err)
			}
			defer encryption.Wipe(plaintext)

			bundle, err := encryption.Encrypt(plaintext, []byte(passphrase))
			if err != nil {
				return err
			}
			if err := os.WriteFile(o.Out, bundle, 0o600); err != nil {
				return fmt.Errorf("writing bundle: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote credential bundle %s\n", o.Out)
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
