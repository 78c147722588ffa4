// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rei-network/reimint/rei"
)

func TestVoteSignature(t *testing.T) {
	tv := newTestValidators(t, 1, 1, 1)
	hash := rei.Keccak256([]byte("block"))
	v := tv.vote(t, 1, PrevoteType, 10, 2, hash)

	assert.Len(t, v.Signature, SignatureLength)
	assert.NoError(t, v.ValidateBasic())
	assert.NoError(t, v.ValidateSignature(tv.set))

	signer, err := v.Validator()
	require.NoError(t, err)
	expected, _ := tv.set.AddressAt(1)
	assert.Equal(t, expected, signer)

	// the index is a claim checked against the set
	wrongIndex := v.Copy()
	wrongIndex.Index = 2
	assert.ErrorIs(t, wrongIndex.ValidateSignature(tv.set), ErrInvalidSignature)

	outOfRange := v.Copy()
	outOfRange.Index = 3
	assert.ErrorIs(t, outOfRange.ValidateSignature(tv.set), ErrInvalidIndex)

	tampered := v.Copy()
	tampered.Timestamp++
	assert.Error(t, tampered.ValidateSignature(tv.set))
}

func TestVoteValidateBasic(t *testing.T) {
	tv := newTestValidators(t, 1)
	valid := tv.vote(t, 0, PrecommitType, 1, 0, rei.Bytes32{1})

	tests := []struct {
		name   string
		modify func(v *Vote)
		err    error
	}{
		{"proposal type", func(v *Vote) { v.Type = ProposalType }, ErrInvalidType},
		{"negative round", func(v *Vote) { v.Round = -1 }, ErrInvalidRound},
		{"negative index", func(v *Vote) { v.Index = -1 }, ErrInvalidIndex},
		{"short signature", func(v *Vote) { v.Signature = v.Signature[:64] }, ErrInvalidSignatureLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid.Copy()
			tt.modify(v)
			assert.ErrorIs(t, v.ValidateBasic(), tt.err)
		})
	}
}

func TestVoteRLP(t *testing.T) {
	tv := newTestValidators(t, 1, 1)
	v := tv.vote(t, 1, PrecommitType, 99, 3, rei.Keccak256([]byte("x")))

	data, err := rlp.EncodeToBytes(v)
	require.NoError(t, err)

	var dec Vote
	require.NoError(t, rlp.DecodeBytes(data, &dec))
	assert.Equal(t, v, &dec)
	assert.Equal(t, v.SigningHash(), dec.SigningHash())

	// round above MaxRound is rejected
	bad, err := rlp.EncodeToBytes(&voteRLP{Round: MaxRound + 1, Signature: v.Signature})
	require.NoError(t, err)
	assert.ErrorIs(t, rlp.DecodeBytes(bad, &dec), ErrInvalidRound)
}

func TestProposal(t *testing.T) {
	tv := newTestValidators(t, 1, 2, 3)
	p := &Proposal{Height: 5, Round: 2, POLRound: -1, Hash: rei.Bytes32{7}}
	require.NoError(t, p.Sign(tv.keyOf(t, tv.set.Proposer())))

	assert.NoError(t, p.ValidateBasic())
	assert.NoError(t, p.ValidateSignature(tv.set))

	other := tv.keys[(tv.set.IndexOf(tv.set.Proposer())+1)%3]
	forged := *p
	require.NoError(t, forged.Sign(other))
	assert.ErrorIs(t, forged.ValidateSignature(tv.set), ErrUnexpectedProposer)

	data, err := rlp.EncodeToBytes(p)
	require.NoError(t, err)
	var dec Proposal
	require.NoError(t, rlp.DecodeBytes(data, &dec))
	assert.Equal(t, p, &dec)

	for _, pol := range []int32{-2, 2, 3} {
		bad := *p
		bad.POLRound = pol
		assert.ErrorIs(t, bad.ValidateBasic(), ErrInvalidPOLRound, "POL %d", pol)
	}
	withPOL := *p
	withPOL.POLRound = 1
	assert.NoError(t, withPOL.ValidateBasic())
	assert.NotEqual(t, p.SigningHash(), withPOL.SigningHash())
}
