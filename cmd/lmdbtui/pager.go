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
	"fmt"
	"io"
	"os"
	"os/exec"
)

// pipeThroughPager writes text to stdout, routed through $PAGER when
// it is set (the original lmdb-tui's own convention for long listings
// and help text). If $PAGER is unset, empty, or fails to start, text
// is written to stdout directly.
func pipeThroughPager(text []byte) error {
	pager := os.Getenv("PAGER")
	if pager == "" {
		_, err := os.Stdout.Write(text)
		return err
	}

	cmd := exec.Command(pager)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		_, werr := os.Stdout.Write(text)
		return werr
	}
	if err := cmd.Start(); err != nil {
		_, werr := os.Stdout.Write(text)
		return werr
	}
	if _, err := io.Copy(stdin, bytes.NewReader(text)); err != nil {
		stdin.Close()
		return fmt.Errorf("write to pager: %w", err)
	}
	stdin.Close()
	return cmd.Wait()
}
