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

// VerifyOptions defines flags for the verify command.
type VerifyOptions struct {
	// PublicKeyPath is the armored public keyring to verify against.
	PublicKeyPath string
	// Patterns are glob patterns selecting artifacts inside the artifact
	// directory. Empty selects every regular file.
	Patterns []string
}

var _ Interface = (*VerifyOptions)(nil)

// AddFlags adds verification flags to the cobra command.
func (o *VerifyOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.PublicKeyPath, "public-key", "",
		"armored public keyring to verify against")
	_ = cmd.MarkFlagRequired("public-key")
	_ = cmd.MarkFlagFilename("public-key", "asc", "pub")

	cmd.Flags().StringSliceVar(&o.Patterns, "pattern", nil,
		"glob pattern selecting artifacts to verify; repeatable, defaults to every file")
}
