// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"errors"
	"math/big"
	"sync/atomic"

	"github.com/rei-network/reimint/rei"
)

var errMock = errors.New("mock failure")

type mockStakeManager struct {
	indexed    []rei.Address
	powers     map[rei.Address]*big.Int
	active     []rei.Address
	priorities []*big.Int
	proposer   rei.Address
	slashed    map[rei.Address]uint8
	calls      atomic.Int32
	fail       bool
}

func newMockStakeManager() *mockStakeManager {
	return &mockStakeManager{
		powers:  make(map[rei.Address]*big.Int),
		slashed: make(map[rei.Address]uint8),
	}
}

func (m *mockStakeManager) IndexedValidatorsLength() (uint64, error) {
	m.calls.Add(1)
	if m.fail {
		return 0, errMock
	}
	return uint64(len(m.indexed)), nil
}

func (m *mockStakeManager) IndexedValidatorByIndex(i uint64) (rei.Address, error) {
	return m.indexed[i], nil
}

func (m *mockStakeManager) VotingPowerByAddress(addr rei.Address) (*big.Int, error) {
	if p, ok := m.powers[addr]; ok {
		return new(big.Int).Set(p), nil
	}
	return new(big.Int), nil
}

func (m *mockStakeManager) ActiveValidatorsLength() (uint64, error) {
	m.calls.Add(1)
	if m.fail {
		return 0, errMock
	}
	return uint64(len(m.active)), nil
}

func (m *mockStakeManager) ActiveValidator(i uint64) (rei.Address, *big.Int, error) {
	return m.active[i], new(big.Int).Set(m.priorities[i]), nil
}

func (m *mockStakeManager) Proposer() (rei.Address, error) {
	return m.proposer, nil
}

func (m *mockStakeManager) OnAfterBlock(proposer rei.Address, active []rei.Address, priorities []*big.Int) error {
	m.proposer = proposer
	m.active = active
	m.priorities = priorities
	return nil
}

func (m *mockStakeManager) Slash(validator rei.Address, reason uint8) error {
	m.slashed[validator] = reason
	return nil
}

type mockBls map[rei.Address][]byte

func (m mockBls) BlsPublicKey(addr rei.Address) ([]byte, error) {
	return m[addr], nil
}

func addr(b byte) rei.Address {
	var a rei.Address
	a[len(a)-1] = b
	return a
}

func val(b byte, power, priority int64) *Validator {
	return &Validator{
		Address:          addr(b),
		VotingPower:      big.NewInt(power),
		ProposerPriority: big.NewInt(priority),
	}
}
