// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"fmt"
	"math/big"

	"github.com/rei-network/reimint/rei"
)

// BlsPublicKeyLength is the length of a compressed BLS12-381 public key.
const BlsPublicKeyLength = 48

// Validator is a member of a validator set.
// ProposerPriority only means something inside an ActiveSet.
type Validator struct {
	Address          rei.Address
	VotingPower      *big.Int
	BlsPublicKey     []byte
	ProposerPriority *big.Int
}

// NewValidator creates a validator with zero priority.
func NewValidator(addr rei.Address, votingPower *big.Int) *Validator {
	return &Validator{
		Address:          addr,
		VotingPower:      new(big.Int).Set(votingPower),
		ProposerPriority: new(big.Int),
	}
}

// Copy returns a deep copy.
func (v *Validator) Copy() *Validator {
	cpy := &Validator{
		Address:          v.Address,
		VotingPower:      new(big.Int),
		ProposerPriority: new(big.Int),
	}
	if v.VotingPower != nil {
		cpy.VotingPower.Set(v.VotingPower)
	}
	if v.ProposerPriority != nil {
		cpy.ProposerPriority.Set(v.ProposerPriority)
	}
	if len(v.BlsPublicKey) > 0 {
		cpy.BlsPublicKey = append([]byte(nil), v.BlsPublicKey...)
	}
	return cpy
}

// HasBlsKey reports whether a BLS key is registered.
func (v *Validator) HasBlsKey() bool {
	return len(v.BlsPublicKey) == BlsPublicKeyLength
}

// morePriority reports whether v wins the proposer election against other.
// Ties are broken by the larger address.
func (v *Validator) morePriority(other *Validator) bool {
	if c := v.ProposerPriority.Cmp(other.ProposerPriority); c != 0 {
		return c > 0
	}
	return v.Address.Compare(other.Address) > 0
}

// stronger reports whether v ranks before other when sorting by voting
// power, larger address first on ties.
func (v *Validator) stronger(other *Validator) bool {
	if c := v.VotingPower.Cmp(other.VotingPower); c != 0 {
		return c > 0
	}
	return v.Address.Compare(other.Address) > 0
}

func (v *Validator) String() string {
	return fmt.Sprintf("Validator{%v VP:%v A:%v}", v.Address, v.VotingPower, v.ProposerPriority)
}
