// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Snapshot is the lookup count of a cache at some point.
type Snapshot struct {
	Hit  int64
	Miss int64
}

// Rate returns the hit rate, 0 before any lookup.
func (s Snapshot) Rate() float64 {
	if total := s.Hit + s.Miss; total > 0 {
		return float64(s.Hit) / float64(total)
	}
	return 0
}

// Stats counts cache lookups. The zero value is ready to use.
type Stats struct {
	hit, miss atomic.Int64
	reported  atomic.Int32 // hit rate in permille at the last Snapshot
}

// Hit records a hit.
func (cs *Stats) Hit() { cs.hit.Add(1) }

// Miss records a miss.
func (cs *Stats) Miss() { cs.miss.Add(1) }

// Snapshot returns the current counts, and whether the hit rate moved by at
// least one permille since the previous call.
func (cs *Stats) Snapshot() (Snapshot, bool) {
	s := Snapshot{Hit: cs.hit.Load(), Miss: cs.miss.Load()}
	permille := int32(s.Rate() * 1000)
	return s, cs.reported.Swap(permille) != permille
}
