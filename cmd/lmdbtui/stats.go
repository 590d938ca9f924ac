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
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nibzard/lmdb-tui/kverrors"
	"github.com/nibzard/lmdb-tui/store"
	"github.com/nibzard/lmdb-tui/worker"
)

// statsTimeout bounds how long the one-shot CLI command waits for the
// Stats Worker's result. The worker itself never gives up on a job;
// this is purely the adapter's own patience for a single request.
const statsTimeout = 5 * time.Second

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats PATH [SPACE]",
		Short: "Print environment-wide, or a single space's, statistics",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := store.Open(args[0], store.Options{ReadOnly: flagReadOnly})
			if err != nil {
				return err
			}
			defer env.Close()

			req := worker.Request{Kind: worker.RequestEnv}
			if len(args) == 2 {
				// The worker itself only logs and drops a failed job
				// (spec.md §7); resolve the space up front so a
				// missing space still surfaces as a normal CLI error.
				if err := resolveSpace(env, args[1]); err != nil {
					return err
				}
				req = worker.Request{Kind: worker.RequestSpace, Space: args[1]}
			}

			w := worker.New(env)
			defer w.Close()
			w.Submit(req)

			select {
			case res := <-w.Results():
				if len(args) == 2 {
					return printStats(cmd, res.SpaceStats)
				}
				return printStats(cmd, res.EnvStats)
			case <-time.After(statsTimeout):
				return kverrors.New(kverrors.StorageError, "stats worker timed out", nil)
			}
		},
	}
}

func resolveSpace(env *store.Env, name string) error {
	txn, err := store.BeginRead(env)
	if err != nil {
		return err
	}
	defer txn.Abort()
	_, err = store.Resolve(txn, name)
	return err
}

func printStats(cmd *cobra.Command, v interface{}) error {
	if flagJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(v)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	return nil
}
