// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// BitArray is a fixed size bit array, one bit per validator index.
type BitArray struct {
	size uint
	bits *bitset.BitSet
}

// NewBitArray creates a bit array of size bits, all unset.
func NewBitArray(size int) *BitArray {
	if size < 0 {
		size = 0
	}
	return &BitArray{size: uint(size), bits: bitset.New(uint(size))}
}

// Size returns the number of bits.
func (ba *BitArray) Size() int {
	if ba == nil {
		return 0
	}
	return int(ba.size)
}

// GetIndex returns the bit at i; out of range reads false.
func (ba *BitArray) GetIndex(i int) bool {
	if ba == nil || i < 0 || uint(i) >= ba.size {
		return false
	}
	return ba.bits.Test(uint(i))
}

// SetIndex sets the bit at i and reports whether i is in range.
func (ba *BitArray) SetIndex(i int, v bool) bool {
	if ba == nil || i < 0 || uint(i) >= ba.size {
		return false
	}
	ba.bits.SetTo(uint(i), v)
	return true
}

// Count returns the number of set bits.
func (ba *BitArray) Count() int {
	if ba == nil {
		return 0
	}
	return int(ba.bits.Count())
}

// IsFull reports whether every bit is set.
func (ba *BitArray) IsFull() bool {
	return ba != nil && ba.bits.Count() == ba.size
}

// IsEmpty reports whether no bit is set.
func (ba *BitArray) IsEmpty() bool {
	return ba == nil || ba.bits.None()
}

// Copy returns a deep copy.
func (ba *BitArray) Copy() *BitArray {
	if ba == nil {
		return nil
	}
	return &BitArray{size: ba.size, bits: ba.bits.Clone()}
}

// Update overwrites ba with o when sizes match.
func (ba *BitArray) Update(o *BitArray) {
	if ba == nil || o == nil || ba.size != o.size {
		return
	}
	ba.bits = o.bits.Clone()
}

// Sub returns the bits set in ba but not in o.
func (ba *BitArray) Sub(o *BitArray) *BitArray {
	if ba == nil {
		return nil
	}
	if o == nil {
		return ba.Copy()
	}
	return &BitArray{size: ba.size, bits: ba.bits.Difference(o.bits)}
}

// Or returns the union, sized as the larger operand.
func (ba *BitArray) Or(o *BitArray) *BitArray {
	if ba == nil {
		return o.Copy()
	}
	if o == nil {
		return ba.Copy()
	}
	size := max(ba.size, o.size)
	return &BitArray{size: size, bits: ba.bits.Union(o.bits)}
}

// Indices returns the set indexes in ascending order.
func (ba *BitArray) Indices() []int {
	if ba == nil {
		return nil
	}
	list := make([]int, 0, ba.bits.Count())
	for i, ok := ba.bits.NextSet(0); ok && i < ba.size; i, ok = ba.bits.NextSet(i + 1) {
		list = append(list, int(i))
	}
	return list
}

func (ba *BitArray) String() string {
	if ba == nil {
		return "nil-BitArray"
	}
	var b strings.Builder
	for i := range ba.size {
		if ba.bits.Test(i) {
			b.WriteByte('x')
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

type bitArrayRLP struct {
	Size  uint64
	Words []uint64
}

// EncodeRLP implements rlp.Encoder.
func (ba *BitArray) EncodeRLP(w io.Writer) error {
	if ba == nil {
		return rlp.Encode(w, &bitArrayRLP{})
	}
	words := ba.bits.Words()
	n := (ba.size + 63) / 64
	if uint(len(words)) > n {
		words = words[:n]
	}
	return rlp.Encode(w, &bitArrayRLP{uint64(ba.size), words})
}

// DecodeRLP implements rlp.Decoder.
func (ba *BitArray) DecodeRLP(s *rlp.Stream) error {
	var raw bitArrayRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	if raw.Size > MaxRound || uint64(len(raw.Words)) != (raw.Size+63)/64 {
		return errors.Wrapf(ErrInvalidBitArray, "size %d words %d", raw.Size, len(raw.Words))
	}
	size := uint(raw.Size)
	bits := bitset.FromWithLength(size, raw.Words)
	// no bit beyond size may be set
	if rem := size % 64; rem != 0 && raw.Words[len(raw.Words)-1]>>rem != 0 {
		return errors.Wrap(ErrInvalidBitArray, "trailing bits set")
	}
	*ba = BitArray{size: size, bits: bits}
	return nil
}
