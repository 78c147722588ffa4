// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"slices"

	"github.com/rei-network/reimint/rei"
)

// Genesis is the fixed list of bootstrap validators of a chain.
type Genesis struct {
	addrs []rei.Address
	set   map[rei.Address]struct{}
}

// NewGenesis creates the genesis list, sorted by address ascending.
func NewGenesis(addrs []rei.Address) *Genesis {
	sorted := slices.Clone(addrs)
	slices.SortFunc(sorted, rei.Address.Compare)
	sorted = slices.Compact(sorted)

	set := make(map[rei.Address]struct{}, len(sorted))
	for _, addr := range sorted {
		set[addr] = struct{}{}
	}
	return &Genesis{addrs: sorted, set: set}
}

// Contains reports whether addr is a genesis validator.
func (g *Genesis) Contains(addr rei.Address) bool {
	_, ok := g.set[addr]
	return ok
}

// Addresses returns the sorted genesis validators.
func (g *Genesis) Addresses() []rei.Address {
	return slices.Clone(g.addrs)
}

// Len returns count of genesis validators.
func (g *Genesis) Len() int {
	return len(g.addrs)
}
