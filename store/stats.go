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

// EnvStats is an immutable snapshot of environment-wide statistics
// (spec.md §3).
type EnvStats struct {
	MapSize    int
	LastPage   int
	LastTxnID  int
	MaxReaders int
	NumReaders int
}

// SpaceStats is an immutable snapshot of per-space statistics
// (spec.md §3).
type SpaceStats struct {
	PageSize      int
	Depth         int
	BranchPages   int
	LeafPages     int
	OverflowPages int
	Entries       int
}

// Stats gathers environment-wide statistics. It begins and ends its
// own read transaction.
func Stats(env *Env) (EnvStats, error) {
	txn, err := BeginRead(env)
	if err != nil {
		return EnvStats{}, err
	}
	defer txn.Abort()

	s := env.db.Stats()
	return EnvStats{
		MapSize:    s.FreePageN + s.PendingPageN, // approximate; bolt has no direct map-size counter
		LastPage:   int(txn.tx.Size()/int64(env.db.Info().PageSize)) - 1,
		LastTxnID:  int(txn.tx.ID()),
		MaxReaders: env.maxReaders,
		NumReaders: env.numReaders(),
	}, nil
}

// SpaceStatsFor gathers per-space statistics for the named space.
func SpaceStatsFor(env *Env, name string) (SpaceStats, error) {
	txn, err := BeginRead(env)
	if err != nil {
		return SpaceStats{}, err
	}
	defer txn.Abort()

	b := txn.bucket(name)
	if b == nil {
		return SpaceStats{}, kverrors.SpaceNotFound(name)
	}
	bs := b.Stats()
	return SpaceStats{
		PageSize:      env.db.Info().PageSize,
		Depth:         bs.Depth,
		BranchPages:   bs.BranchPageN,
		LeafPages:     bs.LeafPageN,
		OverflowPages: bs.BranchOverflowN + bs.LeafOverflowN,
		Entries:       bs.KeyN,
	}, nil
}
