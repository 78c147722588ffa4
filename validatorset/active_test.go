// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rei-network/reimint/rei"
)

// assertInvariants checks the total and that the proposer won the last
// election, i.e. it is the argmax once the total charged to it is given back.
func assertInvariants(t *testing.T, set *ActiveSet) {
	sum := new(big.Int)
	for _, v := range set.Validators() {
		sum.Add(sum, v.VotingPower)
	}
	assert.Equal(t, 0, sum.Cmp(set.TotalVotingPower()), "total voting power")

	proposer, ok := set.GetByAddress(set.Proposer())
	require.True(t, ok, "proposer is a member")
	winner := &Validator{
		Address:          proposer.Address,
		ProposerPriority: new(big.Int).Add(proposer.ProposerPriority, set.TotalVotingPower()),
	}
	for _, v := range set.Validators() {
		if v.Address != winner.Address {
			assert.True(t, winner.morePriority(v), "proposer %v beats %v", winner.Address, v.Address)
		}
	}
}

func int64s(list []*big.Int) []int64 {
	out := make([]int64, 0, len(list))
	for _, b := range list {
		out = append(out, b.Int64())
	}
	return out
}

func TestNewActiveSet(t *testing.T) {
	_, err := NewActiveSet(nil)
	assert.ErrorIs(t, err, ErrEmptyValidatorSet)

	_, err = NewActiveSet([]*Validator{val(1, 1, 0), val(1, 2, 0)})
	assert.ErrorIs(t, err, ErrDuplicateValidator)

	_, err = NewActiveSet([]*Validator{val(1, -1, 0)})
	assert.ErrorIs(t, err, ErrInvalidVotingPower)

	_, err = NewActiveSet([]*Validator{val(1, 0, 0), val(2, 0, 0)})
	assert.ErrorIs(t, err, ErrZeroTotalVotingPower)

	set, err := NewActiveSet([]*Validator{val(1, 3, 5), val(2, 4, 5), val(3, 5, -2)})
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, addr(2), set.Proposer())
	assert.Equal(t, 1, set.IndexOf(addr(2)))
	assert.Equal(t, -1, set.IndexOf(addr(9)))
	assertInvariants(t, set)

	_, err = set.GetByIndex(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	v, err := set.GetByIndex(2)
	require.NoError(t, err)
	assert.Equal(t, addr(3), v.Address)

	// returned validators are copies
	v.VotingPower.SetInt64(1000)
	v, _ = set.GetByAddress(addr(3))
	assert.Equal(t, int64(5), v.VotingPower.Int64())
}

func TestRotationCyclesEqualPower(t *testing.T) {
	genesis := NewGenesis([]rei.Address{addr(4), addr(2), addr(3), addr(1)})
	set, err := GenesisActiveSet(genesis)
	require.NoError(t, err)
	assert.True(t, set.IsGenesis(genesis))

	var proposers []rei.Address
	for range 8 {
		set, err = set.WithIncrementedPriority(1)
		require.NoError(t, err)
		assertInvariants(t, set)
		proposers = append(proposers, set.Proposer())
	}

	// every validator proposes once before anyone repeats, larger address first
	assert.Equal(t, []rei.Address{addr(4), addr(3), addr(2), addr(1)}, proposers[:4])
	assert.Equal(t, proposers[:4], proposers[4:])
}

func TestRotationWeighted(t *testing.T) {
	set, err := NewActiveSet([]*Validator{val(1, 1, 0), val(2, 2, 0), val(3, 3, 0)})
	require.NoError(t, err)

	counts := make(map[rei.Address]int)
	for range 6 {
		set, err = set.WithIncrementedPriority(1)
		require.NoError(t, err)
		assertInvariants(t, set)
		counts[set.Proposer()]++
	}
	assert.Equal(t, map[rei.Address]int{addr(1): 1, addr(2): 2, addr(3): 3}, counts)

	// a full cycle brings every priority back to zero
	for _, p := range set.Priorities() {
		assert.Equal(t, 0, p.Sign())
	}
}

func TestWithIncrementedPriorityIsPure(t *testing.T) {
	set, err := NewActiveSet([]*Validator{val(1, 1, 0), val(2, 2, 0)})
	require.NoError(t, err)
	before := set.Priorities()

	next, err := set.WithIncrementedPriority(2)
	require.NoError(t, err)
	assert.Equal(t, int64s(before), int64s(set.Priorities()))
	assert.Equal(t, []int64{-1, 1}, int64s(next.Priorities()))
	assert.Equal(t, addr(1), next.Proposer())

	_, err = set.WithIncrementedPriority(0)
	assert.ErrorIs(t, err, ErrInvalidIncrementTimes)
}

func TestRescalePriorities(t *testing.T) {
	set, err := NewActiveSet([]*Validator{val(1, 1, 1000), val(2, 1, -1000)})
	require.NoError(t, err)

	// diff 2000 > 2*2, priorities divided by 500, then one round
	next, err := set.WithIncrementedPriority(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, -1}, int64s(next.Priorities()))
	assert.Equal(t, addr(1), next.Proposer())
}

func TestPriorityOverflowPanics(t *testing.T) {
	huge := new(big.Int).Add(maxPriority, big1)
	assert.Panics(t, func() {
		_, _ = NewActiveSet([]*Validator{{Address: addr(1), VotingPower: big1, ProposerPriority: huge}})
	})
}

func TestMergePriorities(t *testing.T) {
	parent, err := NewActiveSet([]*Validator{val(1, 10, 3), val(2, 10, -3), val(3, 5, 0)})
	require.NoError(t, err)

	next, err := parent.Merge([]*Validator{val(1, 10, 0), val(4, 20, 0)})
	require.NoError(t, err)
	assertInvariants(t, next)

	// new total 30 plus removed power 15, times -1.25
	assert.Equal(t, []int64{3, -56}, int64s(next.Priorities()))
	assert.Equal(t, int64(30), next.TotalVotingPower().Int64())
	assert.Equal(t, addr(1), next.Proposer())
}

func TestActiveFromStakeManager(t *testing.T) {
	genesis := NewGenesis([]rei.Address{addr(1), addr(2)})
	sm := newMockStakeManager()

	// empty contract list falls back to genesis
	set, err := ActiveFromStakeManager(sm, genesis)
	require.NoError(t, err)
	assert.True(t, set.IsGenesis(genesis))

	sm.active = []rei.Address{addr(3), addr(4)}
	sm.priorities = []*big.Int{big.NewInt(7), big.NewInt(-7)}
	sm.powers[addr(3)] = big.NewInt(100)
	sm.powers[addr(4)] = big.NewInt(200)
	sm.proposer = addr(4)

	set, err = ActiveFromStakeManager(sm, genesis)
	require.NoError(t, err)
	assert.False(t, set.IsGenesis(genesis))
	assert.Equal(t, addr(4), set.Proposer())
	assert.Equal(t, int64(300), set.TotalVotingPower().Int64())

	sm.proposer = addr(9)
	_, err = ActiveFromStakeManager(sm, genesis)
	assert.ErrorIs(t, err, ErrUnknownProposer)

	sm.active = []rei.Address{addr(1), addr(4)}
	_, err = ActiveFromStakeManager(sm, genesis)
	assert.ErrorIs(t, err, ErrMixedValidatorSet)
}

func TestWriteBack(t *testing.T) {
	sm := newMockStakeManager()
	set, err := NewActiveSet([]*Validator{val(1, 1, 0), val(2, 2, 0)})
	require.NoError(t, err)
	set, err = set.WithIncrementedPriority(1)
	require.NoError(t, err)

	require.NoError(t, set.WriteBack(sm))
	assert.Equal(t, set.Proposer(), sm.proposer)
	assert.Equal(t, set.Addresses(), sm.active)
	assert.Equal(t, int64s(set.Priorities()), int64s(sm.priorities))
}
