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

package codec

import "sync"

// Plugin is a user-registered decoder consulted after the built-in
// JSON and msgpack decoders fail (spec.md §4.3). TryDecode reports
// whether raw matched this plugin's format.
type Plugin interface {
	TryDecode(raw []byte) (interface{}, bool)
}

var (
	registryMu sync.RWMutex
	registry   []Plugin
)

// Register appends p to the plugin chain. Plugins are consulted in
// registration order; there is no deregistration, matching the
// process-wide, append-only registry spec.md §4.3 describes.
func Register(p Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, p)
}

func plugins() []Plugin {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Plugin, len(registry))
	copy(out, registry)
	return out
}
