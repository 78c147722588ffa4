// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"math/big"

	"github.com/rei-network/reimint/rei"
)

// Change is the net effect of one block's stake events on a validator.
// VotingPower is an absolute assignment, Update a relative delta; at most
// one of them is set.
type Change struct {
	Validator   rei.Address
	Unindexed   bool
	VotingPower *big.Int
	Update      *big.Int
}

// Changes collects validator changes in first-seen order.
type Changes struct {
	m     map[rei.Address]*Change
	order []rei.Address
}

// NewChanges creates an empty change list.
func NewChanges() *Changes {
	return &Changes{m: make(map[rei.Address]*Change)}
}

func (cs *Changes) get(addr rei.Address) *Change {
	c, ok := cs.m[addr]
	if !ok {
		c = &Change{Validator: addr}
		cs.m[addr] = c
		cs.order = append(cs.order, addr)
	}
	return c
}

// Index records an absolute voting power for addr.
func (cs *Changes) Index(addr rei.Address, votingPower *big.Int) {
	c := cs.get(addr)
	c.Unindexed = false
	c.VotingPower = new(big.Int).Set(votingPower)
	c.Update = nil
}

// Unindex records the removal of addr.
func (cs *Changes) Unindex(addr rei.Address) {
	c := cs.get(addr)
	c.Unindexed = true
	c.VotingPower = nil
	c.Update = nil
}

// Stake adds amount to the voting power of addr.
func (cs *Changes) Stake(addr rei.Address, amount *big.Int) {
	cs.add(addr, amount)
}

// Unstake subtracts amount from the voting power of addr.
func (cs *Changes) Unstake(addr rei.Address, amount *big.Int) {
	cs.add(addr, new(big.Int).Neg(amount))
}

func (cs *Changes) add(addr rei.Address, delta *big.Int) {
	c := cs.get(addr)
	if c.Unindexed {
		return
	}
	if c.VotingPower != nil {
		c.VotingPower.Add(c.VotingPower, delta)
		return
	}
	if c.Update == nil {
		c.Update = new(big.Int)
	}
	c.Update.Add(c.Update, delta)
}

// Len returns count of touched validators.
func (cs *Changes) Len() int {
	return len(cs.order)
}

// All returns the changes in first-seen order.
func (cs *Changes) All() []*Change {
	list := make([]*Change, 0, len(cs.order))
	for _, addr := range cs.order {
		list = append(list, cs.m[addr])
	}
	return list
}
