// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"container/heap"
	"math/big"
	"slices"

	"github.com/pkg/errors"

	"github.com/rei-network/reimint/rei"
)

type indexedEntry struct {
	votingPower *big.Int
	blsKey      []byte
}

// IndexedSet is the universe of staked validators, genesis validators
// excluded. Entries never carry zero voting power.
type IndexedSet struct {
	entries map[rei.Address]*indexedEntry
}

// NewIndexedSet creates an empty indexed set.
func NewIndexedSet() *IndexedSet {
	return &IndexedSet{entries: make(map[rei.Address]*indexedEntry)}
}

// IndexedFromStakeManager enumerates the indexed validators of the stake
// contract.
func IndexedFromStakeManager(sm StakeManager, bls BlsView, genesis *Genesis) (*IndexedSet, error) {
	n, err := sm.IndexedValidatorsLength()
	if err != nil {
		return nil, errors.Wrap(err, "indexed validators length")
	}

	set := NewIndexedSet()
	for i := range n {
		addr, err := sm.IndexedValidatorByIndex(i)
		if err != nil {
			return nil, errors.Wrapf(err, "indexed validator %d", i)
		}
		if genesis.Contains(addr) {
			continue
		}
		power, err := sm.VotingPowerByAddress(addr)
		if err != nil {
			return nil, errors.Wrapf(err, "voting power of %v", addr)
		}
		if power.Sign() <= 0 {
			continue
		}
		key, err := fetchBlsKey(bls, addr)
		if err != nil {
			return nil, err
		}
		set.entries[addr] = &indexedEntry{votingPower: power, blsKey: key}
	}
	return set, nil
}

func fetchBlsKey(bls BlsView, addr rei.Address) ([]byte, error) {
	if bls == nil {
		return nil, nil
	}
	key, err := bls.BlsPublicKey(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "bls key of %v", addr)
	}
	return key, nil
}

// Len returns count of indexed validators.
func (s *IndexedSet) Len() int {
	return len(s.entries)
}

// Get returns the validator of addr.
func (s *IndexedSet) Get(addr rei.Address) (*Validator, bool) {
	e, ok := s.entries[addr]
	if !ok {
		return nil, false
	}
	return e.validator(addr), true
}

// TotalVotingPower returns sum of voting power.
func (s *IndexedSet) TotalVotingPower() *big.Int {
	total := new(big.Int)
	for _, e := range s.entries {
		total.Add(total, e.votingPower)
	}
	return total
}

// Copy returns a deep copy.
func (s *IndexedSet) Copy() *IndexedSet {
	cpy := &IndexedSet{entries: make(map[rei.Address]*indexedEntry, len(s.entries))}
	for addr, e := range s.entries {
		cpy.entries[addr] = &indexedEntry{
			votingPower: new(big.Int).Set(e.votingPower),
			blsKey:      e.blsKey,
		}
	}
	return cpy
}

// Merge applies the changes to a copy of the set and returns it.
func (s *IndexedSet) Merge(changes *Changes, bls BlsView, genesis *Genesis) (*IndexedSet, error) {
	cpy := s.Copy()
	for _, c := range changes.All() {
		if genesis.Contains(c.Validator) {
			continue
		}
		if c.Unindexed {
			delete(cpy.entries, c.Validator)
			continue
		}

		e, exists := cpy.entries[c.Validator]
		var power *big.Int
		switch {
		case c.VotingPower != nil:
			power = new(big.Int).Set(c.VotingPower)
		case c.Update != nil:
			power = new(big.Int).Set(c.Update)
			if exists {
				power.Add(power, e.votingPower)
			}
		default:
			continue
		}

		if power.Sign() < 0 {
			return nil, errors.Wrapf(ErrInvalidVotingPower, "validator %v nets to %v", c.Validator, power)
		}
		if power.Sign() == 0 {
			delete(cpy.entries, c.Validator)
			continue
		}
		if exists {
			e.votingPower = power
			continue
		}
		key, err := fetchBlsKey(bls, c.Validator)
		if err != nil {
			return nil, err
		}
		cpy.entries[c.Validator] = &indexedEntry{votingPower: power, blsKey: key}
	}
	return cpy, nil
}

// Sort returns at most maxCount validators ordered by voting power, larger
// address first on ties. With blsOnly, validators without a BLS key are skipped.
func (s *IndexedSet) Sort(maxCount int, blsOnly bool) []*Validator {
	if maxCount <= 0 {
		return nil
	}
	h := make(weakestFirst, 0, maxCount+1)
	for addr, e := range s.entries {
		v := e.validator(addr)
		if blsOnly && !v.HasBlsKey() {
			continue
		}
		if len(h) < maxCount {
			heap.Push(&h, v)
		} else if v.stronger(h[0]) {
			h[0] = v
			heap.Fix(&h, 0)
		}
	}

	sorted := make([]*Validator, 0, len(h))
	for h.Len() > 0 {
		sorted = append(sorted, heap.Pop(&h).(*Validator))
	}
	slices.Reverse(sorted)
	return sorted
}

func (e *indexedEntry) validator(addr rei.Address) *Validator {
	v := NewValidator(addr, e.votingPower)
	if len(e.blsKey) > 0 {
		v.BlsPublicKey = append([]byte(nil), e.blsKey...)
	}
	return v
}

// weakestFirst is a min-heap of validators by strength.
type weakestFirst []*Validator

func (h weakestFirst) Len() int           { return len(h) }
func (h weakestFirst) Less(i, j int) bool { return h[j].stronger(h[i]) }
func (h weakestFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *weakestFirst) Push(x any) {
	*h = append(*h, x.(*Validator))
}

func (h *weakestFirst) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return v
}
