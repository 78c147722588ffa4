// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"math/big"

	"github.com/rei-network/reimint/rei"
)

// StakeManager is a view of the stake contract at one state root.
// Implementations issue call messages against the contract; none of them
// are owned by this package.
type StakeManager interface {
	IndexedValidatorsLength() (uint64, error)
	IndexedValidatorByIndex(i uint64) (rei.Address, error)
	VotingPowerByAddress(addr rei.Address) (*big.Int, error)

	ActiveValidatorsLength() (uint64, error)
	// ActiveValidator returns the address and proposer priority stored at i.
	ActiveValidator(i uint64) (rei.Address, *big.Int, error)
	Proposer() (rei.Address, error)

	// OnAfterBlock persists the rotated active set after a block is applied.
	OnAfterBlock(proposer rei.Address, active []rei.Address, priorities []*big.Int) error
	// Slash punishes a validator, reason tells why.
	Slash(validator rei.Address, reason uint8) error
}

// BlsView reads registered BLS public keys. An empty key means not registered.
type BlsView interface {
	BlsPublicKey(addr rei.Address) ([]byte, error)
}
