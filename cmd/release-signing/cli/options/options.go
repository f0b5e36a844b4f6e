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

// Package options defines the command-line options and flags for the
// release-signing CLI.
package options

import (
	"github.com/spf13/cobra"
)

// Interface is implemented by any flag group that can register itself to a
// cobra command.
type Interface interface {
	AddFlags(cmd *cobra.Command)
}

// AddAllFlags registers multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, groups ...Interface) {
	for _, g := range groups {
		g.AddFlags(cmd)
	}
}
