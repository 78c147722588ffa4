// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/validatorset"
)

const testChainID = 47805

type testValidators struct {
	keys []*ecdsa.PrivateKey
	set  *validatorset.ActiveSet
}

func newTestValidators(t *testing.T, powers ...int64) *testValidators {
	tv := &testValidators{}
	var vals []*validatorset.Validator
	for _, p := range powers {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		tv.keys = append(tv.keys, key)
		vals = append(vals, validatorset.NewValidator(rei.Address(crypto.PubkeyToAddress(key.PublicKey)), big.NewInt(p)))
	}
	set, err := validatorset.NewActiveSet(vals)
	require.NoError(t, err)
	tv.set = set
	return tv
}

func equalPowers(n int) []int64 {
	powers := make([]int64, n)
	for i := range powers {
		powers[i] = 1
	}
	return powers
}

// keyOf returns the key of the given address.
func (tv *testValidators) keyOf(t *testing.T, addr rei.Address) *ecdsa.PrivateKey {
	i := tv.set.IndexOf(addr)
	require.GreaterOrEqual(t, i, 0)
	return tv.keys[i]
}

func (tv *testValidators) vote(t *testing.T, index int, voteType VoteType, height uint64, round int32, hash rei.Bytes32) *Vote {
	v := &Vote{
		ChainID:   testChainID,
		Type:      voteType,
		Height:    height,
		Round:     round,
		Hash:      hash,
		Timestamp: 1700000000,
		Index:     int32(index),
	}
	require.NoError(t, v.Sign(tv.keys[index]))
	return v
}
