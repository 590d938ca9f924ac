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
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/lmdb-tui/query"
	"github.com/nibzard/lmdb-tui/store"
)

func newQueryCmd() *cobra.Command {
	var offset, limit int
	cmd := &cobra.Command{
		Use:   "query PATH SPACE QUERY",
		Short: "Page through entries in a space matching a query",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, space, q := args[0], args[1], args[2]

			env, err := store.Open(path, store.Options{ReadOnly: flagReadOnly})
			if err != nil {
				return err
			}
			defer env.Close()

			mode, err := query.ParseQuery(q)
			if err != nil {
				return err
			}

			entries, err := query.Page(env, space, mode, offset, limit)
			if err != nil {
				return err
			}

			if flagJSON {
				type jsonEntry struct {
					Key   string `json:"key"`
					Value string `json:"value"`
				}
				out := make([]jsonEntry, len(entries))
				for i, e := range entries {
					out[i] = jsonEntry{Key: e.Key, Value: base64.StdEncoding.EncodeToString(e.Value)}
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Key, e.Value)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "number of matches to skip")
	cmd.Flags().IntVar(&limit, "limit", store.DefaultPageSize, "maximum number of matches to return")
	return cmd
}
