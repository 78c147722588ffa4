// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rei

import (
	"io"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Keccak256 computes keccak-256 checksum for given data.
func Keccak256(data ...[]byte) Bytes32 {
	return Bytes32(crypto.Keccak256Hash(data...))
}

// Keccak256Fn computes keccak-256 checksum for the provided writer.
func Keccak256Fn(fn func(w io.Writer)) (h Bytes32) {
	hw := crypto.NewKeccakState()
	fn(hw)
	hw.Read(h[:])
	return
}

// RLPHash computes keccak-256 of the rlp encoding of v.
func RLPHash(v any) Bytes32 {
	return Keccak256Fn(func(w io.Writer) {
		rlp.Encode(w, v)
	})
}
