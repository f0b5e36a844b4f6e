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
	"github.com/spf13/cobra"
)

// EncryptOptions defines flags for the encrypt command.
type EncryptOptions struct {
	// In is the plaintext key file to encrypt.
	In string
	// Out is where the encrypted credential bundle is written.
	Out string
	// PassphraseEnv names the environment variable holding the bundle
	// passphrase.
	PassphraseEnv string
}

var _ Interface = (*EncryptOptions)(nil)

// AddFlags adds encryption flags to the cobra command.
func (o *EncryptOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.In, "in", "",
		"plaintext key file to encrypt")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagFilename("in")

	cmd.Flags().StringVar(&o.Out, "out", "",
		"destination for the encrypted credential bundle")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagFilename("out")

	cmd.Flags().StringVar(&o.PassphraseEnv, "passphrase-env", DefaultPassphraseEnv,
		"environment variable holding the bundle passphrase")
}
