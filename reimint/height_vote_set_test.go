// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rei-network/reimint/rei"
)

func TestHeightVoteSetRounds(t *testing.T) {
	tv := newTestValidators(t, 1, 1, 1, 1)
	hvs := NewHeightVoteSet(testChainID, 3, tv.set)

	assert.Equal(t, int32(0), hvs.Round())
	assert.NotNil(t, hvs.Prevotes(0))
	assert.Nil(t, hvs.Prevotes(1))

	require.NoError(t, hvs.SetRound(3))
	for r := int32(0); r <= 3; r++ {
		assert.NotNil(t, hvs.Prevotes(r), "round %d", r)
		assert.NotNil(t, hvs.Precommits(r), "round %d", r)
	}
	require.NoError(t, hvs.SetRound(3))
	assert.ErrorIs(t, hvs.SetRound(2), ErrRoundDecreased)

	hvs.Reset(4, tv.set)
	assert.Equal(t, uint64(4), hvs.Height())
	assert.Equal(t, int32(0), hvs.Round())
	assert.Nil(t, hvs.Prevotes(1))
}

func TestHeightVoteSetCatchupRounds(t *testing.T) {
	tv := newTestValidators(t, 1, 1, 1, 1)
	hvs := NewHeightVoteSet(testChainID, 3, tv.set)

	for _, r := range []int32{5, 8} {
		added, err := hvs.AddVote(tv.vote(t, 0, PrevoteType, 3, r, hashA), "peer1")
		require.NoError(t, err)
		assert.True(t, added)
	}
	// rounds already opened do not count
	_, err := hvs.AddVote(tv.vote(t, 1, PrecommitType, 3, 5, hashA), "peer1")
	assert.NoError(t, err)

	_, err = hvs.AddVote(tv.vote(t, 0, PrevoteType, 3, 9, hashA), "peer1")
	assert.ErrorIs(t, err, ErrUnwantedRound)

	_, err = hvs.AddVote(tv.vote(t, 0, PrevoteType, 3, 9, hashA), "peer2")
	assert.NoError(t, err)
	assert.Equal(t, int32(0), hvs.Round())
}

func TestHeightVoteSetCatchupIgnoresForeignVotes(t *testing.T) {
	tv := newTestValidators(t, 1, 1, 1, 1)
	hvs := NewHeightVoteSet(testChainID, 3, tv.set)

	for _, r := range []int32{5, 6, 7} {
		_, err := hvs.AddVote(tv.vote(t, 0, PrevoteType, 4, r, hashA), "peer1")
		assert.ErrorIs(t, err, ErrUnexpectedStep)
	}
	other := tv.vote(t, 0, PrevoteType, 3, 8, hashA)
	other.ChainID = testChainID + 1
	_, err := hvs.AddVote(other, "peer1")
	assert.ErrorIs(t, err, ErrUnexpectedChainID)
	assert.Nil(t, hvs.Prevotes(5))
	assert.Nil(t, hvs.Prevotes(8))

	// the peer still has both catch-up rounds
	for _, r := range []int32{5, 8} {
		added, err := hvs.AddVote(tv.vote(t, 0, PrevoteType, 3, r, hashA), "peer1")
		require.NoError(t, err)
		assert.True(t, added)
	}
}

func TestHeightVoteSetConflict(t *testing.T) {
	tv := newTestValidators(t, 1, 1, 1, 1)
	hvs := NewHeightVoteSet(testChainID, 10, tv.set)

	_, err := hvs.AddVote(tv.vote(t, 2, PrevoteType, 10, 0, hashA), "p")
	require.NoError(t, err)
	_, err = hvs.AddVote(tv.vote(t, 2, PrevoteType, 10, 0, hashB), "p")
	conflict, ok := IsConflictingVotes(err)
	require.True(t, ok)

	ev, err := NewDuplicateVoteEvidence(conflict.VoteA, conflict.VoteB)
	require.NoError(t, err)
	assert.NoError(t, ev.ValidateBasic())
}

func TestHeightVoteSetPOLInfo(t *testing.T) {
	tv := newTestValidators(t, 1, 1, 1, 1)
	hvs := NewHeightVoteSet(testChainID, 7, tv.set)
	require.NoError(t, hvs.SetRound(3))

	round, _ := hvs.POLInfo()
	assert.Equal(t, int32(-1), round)

	for i := range 3 {
		_, err := hvs.AddVote(tv.vote(t, i, PrevoteType, 7, 1, hashA), "p")
		require.NoError(t, err)
	}
	round, hash := hvs.POLInfo()
	assert.Equal(t, int32(1), round)
	assert.Equal(t, hashA, hash)

	for i := range 3 {
		_, err := hvs.AddVote(tv.vote(t, i, PrevoteType, 7, 2, hashB), "p")
		require.NoError(t, err)
	}
	round, hash = hvs.POLInfo()
	assert.Equal(t, int32(2), round)
	assert.Equal(t, hashB, hash)
}

func TestHeightVoteSetPeerMaj23(t *testing.T) {
	tv := newTestValidators(t, 1, 1)
	hvs := NewHeightVoteSet(testChainID, 1, tv.set)

	assert.NoError(t, hvs.SetPeerMaj23(0, PrevoteType, "p", hashA))
	assert.ErrorIs(t, hvs.SetPeerMaj23(0, PrevoteType, "p", hashB), ErrConflictingPeerMaj23)
	assert.NoError(t, hvs.SetPeerMaj23(5, PrevoteType, "p", hashB))
	assert.ErrorIs(t, hvs.SetPeerMaj23(0, ProposalType, "p", rei.Bytes32{}), ErrInvalidType)
}
