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

package store

import "github.com/nibzard/lmdb-tui/kverrors"

// Entry is a materialized key-value pair: an owned copy that outlives
// the transaction it was read within.
type Entry struct {
	Key   string
	Value []byte
}

func spaceNotFoundErr(name string) error {
	return kverrors.SpaceNotFound(name)
}
