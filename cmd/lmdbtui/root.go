/*
   Copyright 2024 lmdb-tui contributors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"bytes"

	"github.com/spf13/cobra"
)

var (
	flagReadOnly bool
	flagJSON     bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lmdbtui PATH",
		Short:         "Explore and edit an ordered embedded key-value environment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&flagReadOnly, "read-only", false, "open the environment read-only")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit machine-readable JSON instead of plain text")

	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		var buf bytes.Buffer
		if cmd.Long != "" {
			buf.WriteString(cmd.Long)
		} else {
			buf.WriteString(cmd.Short)
		}
		buf.WriteString("\n\n")
		buf.WriteString(cmd.UsageString())
		_ = pipeThroughPager(buf.Bytes())
	})

	root.AddCommand(newSpacesCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newStatsCmd())
	return root
}
