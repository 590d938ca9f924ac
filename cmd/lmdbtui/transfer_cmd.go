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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nibzard/lmdb-tui/store"
	"github.com/nibzard/lmdb-tui/transfer"
)

func parseFormat(s string) (transfer.Format, error) {
	switch s {
	case "text", "":
		return transfer.FormatText, nil
	case "tabular":
		return transfer.FormatTabular, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want text or tabular)", s)
	}
}

func newExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export PATH SPACE",
		Short: "Write every entry in a space to stdout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, space := args[0], args[1]
			f, err := parseFormat(format)
			if err != nil {
				return err
			}

			env, err := store.Open(path, store.Options{ReadOnly: true})
			if err != nil {
				return err
			}
			defer env.Close()

			return transfer.Export(env, space, f, cmd.OutOrStdout(), nil)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or tabular")
	return cmd
}

func newImportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import PATH SPACE FILE",
		Short: "Load entries from a file into a space",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, space, file := args[0], args[1], args[2]
			f, err := parseFormat(format)
			if err != nil {
				return err
			}

			env, err := store.Open(path, store.Options{})
			if err != nil {
				return err
			}
			defer env.Close()

			in, err := os.Open(file)
			if err != nil {
				return err
			}
			defer in.Close()

			n, err := transfer.Import(env, space, f, in, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "input format: text or tabular")
	return cmd
}
