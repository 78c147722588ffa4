// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package rei

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)
	assert.Equal(t, "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed", addr.String())

	_, err = ParseAddress("7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)

	_, err = ParseAddress("0x7567d83b")
	assert.Error(t, err)

	_, err = ParseAddress("1x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.Error(t, err)
}

func TestAddressCompare(t *testing.T) {
	a := BytesToAddress([]byte{1})
	b := BytesToAddress([]byte{2})

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, Address{}.IsZero())
}

func TestTextCodec(t *testing.T) {
	var v struct {
		Addr Address `json:"addr"`
		Hash Bytes32 `json:"hash"`
	}
	data := `{"addr":"0x7567d83b7b8d80addcb281a71d54fc7b3364ffed","hash":"0x00000000000000000000000000000000000000000000000000006d6173746572"}`
	assert.NoError(t, json.Unmarshal([]byte(data), &v))
	assert.Equal(t, MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"), v.Addr)

	out, err := json.Marshal(&v)
	assert.NoError(t, err)
	assert.JSONEq(t, data, string(out))
}

func TestHash(t *testing.T) {
	assert.Equal(t, Bytes32(crypto.Keccak256Hash([]byte("reimint"))), Keccak256([]byte("reimint")))

	enc, _ := rlp.EncodeToBytes([]any{uint64(1), "a"})
	assert.Equal(t, Keccak256(enc), RLPHash([]any{uint64(1), "a"}))
}
