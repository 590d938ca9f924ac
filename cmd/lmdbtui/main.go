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

// Command lmdbtui is the CLI adapter over the core packages: it opens
// an environment, lists or queries spaces, and exports/imports entries
// (spec.md §5 external interfaces).
package main

import (
	"fmt"
	"os"

	"github.com/nibzard/lmdb-tui/kverrors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lmdbtui:", err)
		os.Exit(kverrors.ExitCode(err))
	}
}
