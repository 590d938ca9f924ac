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

import "github.com/VictoriaMetrics/metrics"

// Process-wide counters mirroring the instrumentation style of the
// teacher package (kv.DbCommitTotal, kv.TxLimit, ... in
// fenghaojiang-erigon-lib/kv/kv_interface.go): cheap, always-on
// counters a surrounding process can scrape without the core having
// an opinion on how.
var (
	readTxnsStarted  = metrics.NewCounter(`lmdbtui_read_txns_total`)
	writeTxnsStarted = metrics.NewCounter(`lmdbtui_write_txns_total`)
	writerBusyTotal  = metrics.NewCounter(`lmdbtui_writer_busy_total`)
)
