// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rei-network/reimint/config"
	"github.com/rei-network/reimint/rei"
)

func blsKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, BlsPublicKeyLength)
}

func newIndexed(t *testing.T, powers map[byte]int64) *IndexedSet {
	changes := NewChanges()
	for b, p := range powers {
		changes.Index(addr(b), big.NewInt(p))
	}
	set, err := NewIndexedSet().Merge(changes, nil, NewGenesis(nil))
	require.NoError(t, err)
	return set
}

func TestIndexedFromStakeManager(t *testing.T) {
	genesis := NewGenesis([]rei.Address{addr(1)})
	sm := newMockStakeManager()
	sm.indexed = []rei.Address{addr(1), addr(2), addr(3), addr(4)}
	sm.powers[addr(1)] = big.NewInt(10)
	sm.powers[addr(2)] = big.NewInt(20)
	sm.powers[addr(4)] = big.NewInt(40)
	bls := mockBls{addr(2): blsKey(2)}

	set, err := IndexedFromStakeManager(sm, bls, genesis)
	require.NoError(t, err)

	// genesis and zero power entries are skipped
	assert.Equal(t, 2, set.Len())
	_, ok := set.Get(addr(1))
	assert.False(t, ok)
	_, ok = set.Get(addr(3))
	assert.False(t, ok)

	v, ok := set.Get(addr(2))
	require.True(t, ok)
	assert.True(t, v.HasBlsKey())
	assert.Equal(t, int64(60), set.TotalVotingPower().Int64())

	sm.fail = true
	_, err = IndexedFromStakeManager(sm, bls, genesis)
	assert.ErrorIs(t, err, errMock)
}

func TestIndexedMerge(t *testing.T) {
	genesis := NewGenesis([]rei.Address{addr(9)})
	set := newIndexed(t, map[byte]int64{1: 10, 2: 20, 3: 30})

	changes := NewChanges()
	changes.Stake(addr(1), big.NewInt(5))    // 15
	changes.Unstake(addr(2), big.NewInt(20)) // nets to zero
	changes.Unindex(addr(3))
	changes.Stake(addr(4), big.NewInt(7)) // new, fetches bls key
	changes.Index(addr(5), big.NewInt(50))
	changes.Unstake(addr(5), big.NewInt(10)) // applied on the absolute value
	changes.Stake(addr(9), big.NewInt(1))    // genesis, ignored

	merged, err := set.Merge(changes, mockBls{addr(4): blsKey(4)}, genesis)
	require.NoError(t, err)

	expected := map[rei.Address]int64{addr(1): 15, addr(4): 7, addr(5): 40}
	assert.Equal(t, len(expected), merged.Len())
	for a, p := range expected {
		v, ok := merged.Get(a)
		require.True(t, ok, a.String())
		assert.Equal(t, p, v.VotingPower.Int64(), a.String())
	}
	v, _ := merged.Get(addr(4))
	assert.True(t, v.HasBlsKey())

	// the source set is untouched
	assert.Equal(t, 3, set.Len())
	v, _ = set.Get(addr(1))
	assert.Equal(t, int64(10), v.VotingPower.Int64())

	negative := NewChanges()
	negative.Unstake(addr(1), big.NewInt(11))
	_, err = set.Merge(negative, nil, genesis)
	assert.ErrorIs(t, err, ErrInvalidVotingPower)
}

func TestIndexedSort(t *testing.T) {
	set := newIndexed(t, map[byte]int64{1: 10, 2: 30, 3: 20, 4: 30, 5: 5, 6: 20})

	sorted := set.Sort(4, false)
	var addrs []rei.Address
	for _, v := range sorted {
		addrs = append(addrs, v.Address)
	}
	// power desc, larger address first on ties
	assert.Equal(t, []rei.Address{addr(4), addr(2), addr(6), addr(3)}, addrs)

	assert.Len(t, set.Sort(100, false), 6)
	assert.Empty(t, set.Sort(0, false))
}

func TestIndexedSortBlsOnly(t *testing.T) {
	changes := NewChanges()
	changes.Index(addr(1), big.NewInt(10))
	changes.Index(addr(2), big.NewInt(20))
	changes.Index(addr(3), big.NewInt(30))
	set, err := NewIndexedSet().Merge(changes, mockBls{addr(1): blsKey(1), addr(2): blsKey(2)}, NewGenesis(nil))
	require.NoError(t, err)

	sorted := set.Sort(2, true)
	require.Len(t, sorted, 2)
	assert.Equal(t, addr(2), sorted[0].Address)
	assert.Equal(t, addr(1), sorted[1].Address)
}

func TestChanges(t *testing.T) {
	changes := NewChanges()
	changes.Stake(addr(2), big.NewInt(3))
	changes.Unindex(addr(1))
	changes.Stake(addr(1), big.NewInt(3)) // ignored once unindexed
	changes.Unstake(addr(2), big.NewInt(1))
	changes.Index(addr(2), big.NewInt(100))

	all := changes.All()
	require.Len(t, all, 2)
	assert.Equal(t, addr(2), all[0].Validator)
	assert.Nil(t, all[0].Update)
	assert.Equal(t, int64(100), all[0].VotingPower.Int64())
	assert.True(t, all[1].Unindexed)
	assert.Nil(t, all[1].Update)
}

func TestSetsCopyAndMerge(t *testing.T) {
	genesis := NewGenesis([]rei.Address{addr(1), addr(2)})
	active, err := GenesisActiveSet(genesis)
	require.NoError(t, err)
	sets := &Sets{Indexed: NewIndexedSet(), Active: active}
	params := Params{MaxValidators: 3, MinValidators: 2}

	// not enough candidates, stay on genesis
	changes := NewChanges()
	changes.Index(addr(3), big.NewInt(10))
	next, err := sets.CopyAndMerge(changes, nil, params, genesis)
	require.NoError(t, err)
	assert.True(t, next.Active.IsGenesis(genesis))
	assert.Equal(t, 1, next.Indexed.Len())
	assert.Equal(t, 0, sets.Indexed.Len())

	changes = NewChanges()
	changes.Index(addr(4), big.NewInt(20))
	changes.Index(addr(5), big.NewInt(30))
	changes.Index(addr(6), big.NewInt(5))
	next, err = next.CopyAndMerge(changes, nil, params, genesis)
	require.NoError(t, err)
	assert.False(t, next.Active.IsGenesis(genesis))
	assert.Equal(t, []rei.Address{addr(5), addr(4), addr(3)}, next.Active.Addresses())
	assert.Equal(t, int64(60), next.Active.TotalVotingPower().Int64())

	// back below the minimum
	changes = NewChanges()
	changes.Unindex(addr(4))
	changes.Unindex(addr(5))
	changes.Unindex(addr(6))
	next, err = next.CopyAndMerge(changes, nil, params, genesis)
	require.NoError(t, err)
	assert.True(t, next.Active.IsGenesis(genesis))
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.Default()
	p := ParamsFromConfig(&cfg)
	assert.Equal(t, cfg.MaxValidators, p.MaxValidators)
	assert.Equal(t, cfg.MinValidators, p.MinValidators)
	assert.False(t, p.BlsOnly)

	cfg.BlsOnly = true
	assert.True(t, ParamsFromConfig(&cfg).BlsOnly)
}
