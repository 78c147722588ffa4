// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/rei-network/reimint/rei"
)

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	big4 = big.NewInt(4)
	big5 = big.NewInt(5)

	// priorities never leave [-maxPriority, maxPriority]
	maxPriority = new(big.Int).Lsh(big1, 255)
)

// ActiveSet is the bounded set of validators taking part in the consensus of
// one height. It's immutable once created; rotation returns a new set.
type ActiveSet struct {
	validators []*Validator
	proposer   *Validator
	total      *big.Int
	index      map[rei.Address]int
}

// NewActiveSet creates an active set from the given validators, keeping
// their order and priorities. The proposer is the validator with the
// highest priority.
func NewActiveSet(validators []*Validator) (*ActiveSet, error) {
	return newActiveSet(validators, nil)
}

func newActiveSet(validators []*Validator, proposer *rei.Address) (*ActiveSet, error) {
	if len(validators) == 0 {
		return nil, ErrEmptyValidatorSet
	}

	set := &ActiveSet{
		validators: make([]*Validator, 0, len(validators)),
		total:      new(big.Int),
		index:      make(map[rei.Address]int, len(validators)),
	}
	for _, v := range validators {
		if v.VotingPower == nil || v.VotingPower.Sign() < 0 {
			return nil, errors.Wrapf(ErrInvalidVotingPower, "validator %v", v.Address)
		}
		if _, ok := set.index[v.Address]; ok {
			return nil, errors.Wrapf(ErrDuplicateValidator, "validator %v", v.Address)
		}
		cpy := v.Copy()
		checkPriority(cpy.ProposerPriority)

		set.index[cpy.Address] = len(set.validators)
		set.validators = append(set.validators, cpy)
		set.total.Add(set.total, cpy.VotingPower)
	}
	if set.total.Sign() == 0 {
		return nil, ErrZeroTotalVotingPower
	}

	if proposer == nil {
		set.proposer = set.findProposer()
	} else {
		i, ok := set.index[*proposer]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownProposer, "proposer %v", *proposer)
		}
		set.proposer = set.validators[i]
	}
	return set, nil
}

// GenesisActiveSet builds the active set of the genesis validators, every
// one of them with voting power 1 and priority 1.
func GenesisActiveSet(genesis *Genesis) (*ActiveSet, error) {
	validators := make([]*Validator, 0, genesis.Len())
	for _, addr := range genesis.Addresses() {
		validators = append(validators, &Validator{
			Address:          addr,
			VotingPower:      big.NewInt(1),
			ProposerPriority: big.NewInt(1),
		})
	}
	return NewActiveSet(validators)
}

// ActiveFromStakeManager loads the active set persisted in the stake contract.
// An empty contract list means the chain still runs on the genesis set.
func ActiveFromStakeManager(sm StakeManager, genesis *Genesis) (*ActiveSet, error) {
	n, err := sm.ActiveValidatorsLength()
	if err != nil {
		return nil, errors.Wrap(err, "active validators length")
	}
	if n == 0 {
		return GenesisActiveSet(genesis)
	}

	var (
		validators   = make([]*Validator, 0, n)
		genesisCount uint64
	)
	for i := range n {
		addr, priority, err := sm.ActiveValidator(i)
		if err != nil {
			return nil, errors.Wrapf(err, "active validator %d", i)
		}

		var power *big.Int
		if genesis.Contains(addr) {
			genesisCount++
			power = big.NewInt(1)
		} else if power, err = sm.VotingPowerByAddress(addr); err != nil {
			return nil, errors.Wrapf(err, "voting power of %v", addr)
		}
		validators = append(validators, &Validator{
			Address:          addr,
			VotingPower:      power,
			ProposerPriority: priority,
		})
	}
	if genesisCount != 0 && genesisCount != n {
		return nil, ErrMixedValidatorSet
	}

	proposer, err := sm.Proposer()
	if err != nil {
		return nil, errors.Wrap(err, "proposer")
	}
	return newActiveSet(validators, &proposer)
}

// Len returns count of validators.
func (s *ActiveSet) Len() int {
	return len(s.validators)
}

// TotalVotingPower returns the sum of voting power.
func (s *ActiveSet) TotalVotingPower() *big.Int {
	return new(big.Int).Set(s.total)
}

// Proposer returns the address of the current proposer.
func (s *ActiveSet) Proposer() rei.Address {
	return s.proposer.Address
}

// IndexOf returns the index of addr, or -1 if absent.
func (s *ActiveSet) IndexOf(addr rei.Address) int {
	if i, ok := s.index[addr]; ok {
		return i
	}
	return -1
}

// Contains reports whether addr is an active validator.
func (s *ActiveSet) Contains(addr rei.Address) bool {
	_, ok := s.index[addr]
	return ok
}

// GetByIndex returns a copy of the validator at index i.
func (s *ActiveSet) GetByIndex(i int) (*Validator, error) {
	if i < 0 || i >= len(s.validators) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d", i)
	}
	return s.validators[i].Copy(), nil
}

// GetByAddress returns a copy of the validator with addr.
func (s *ActiveSet) GetByAddress(addr rei.Address) (*Validator, bool) {
	i, ok := s.index[addr]
	if !ok {
		return nil, false
	}
	return s.validators[i].Copy(), true
}

// AddressAt returns the address at index i.
func (s *ActiveSet) AddressAt(i int) (rei.Address, error) {
	if i < 0 || i >= len(s.validators) {
		return rei.Address{}, errors.Wrapf(ErrIndexOutOfRange, "index %d", i)
	}
	return s.validators[i].Address, nil
}

// VotingPowerAt returns the voting power at index i.
func (s *ActiveSet) VotingPowerAt(i int) (*big.Int, error) {
	if i < 0 || i >= len(s.validators) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d", i)
	}
	return new(big.Int).Set(s.validators[i].VotingPower), nil
}

// Validators returns copies of all validators in order.
func (s *ActiveSet) Validators() []*Validator {
	list := make([]*Validator, 0, len(s.validators))
	for _, v := range s.validators {
		list = append(list, v.Copy())
	}
	return list
}

// Addresses returns validator addresses in order.
func (s *ActiveSet) Addresses() []rei.Address {
	addrs := make([]rei.Address, 0, len(s.validators))
	for _, v := range s.validators {
		addrs = append(addrs, v.Address)
	}
	return addrs
}

// Priorities returns proposer priorities in order.
func (s *ActiveSet) Priorities() []*big.Int {
	list := make([]*big.Int, 0, len(s.validators))
	for _, v := range s.validators {
		list = append(list, new(big.Int).Set(v.ProposerPriority))
	}
	return list
}

// IsGenesis reports whether the set is exactly the genesis set.
func (s *ActiveSet) IsGenesis(genesis *Genesis) bool {
	if len(s.validators) != genesis.Len() {
		return false
	}
	for _, v := range s.validators {
		if !genesis.Contains(v.Address) || v.VotingPower.Cmp(big1) != 0 {
			return false
		}
	}
	return true
}

// Copy returns a deep copy.
func (s *ActiveSet) Copy() *ActiveSet {
	cpy := &ActiveSet{
		validators: make([]*Validator, 0, len(s.validators)),
		total:      new(big.Int).Set(s.total),
		index:      make(map[rei.Address]int, len(s.validators)),
	}
	for i, v := range s.validators {
		c := v.Copy()
		cpy.validators = append(cpy.validators, c)
		cpy.index[c.Address] = i
		if v == s.proposer {
			cpy.proposer = c
		}
	}
	return cpy
}

// WithIncrementedPriority returns a new set with the proposer priority
// rotated the given times. The receiver is left untouched.
func (s *ActiveSet) WithIncrementedPriority(times int) (*ActiveSet, error) {
	if len(s.validators) == 0 {
		return nil, ErrEmptyValidatorSet
	}
	if times <= 0 {
		return nil, ErrInvalidIncrementTimes
	}

	cpy := s.Copy()
	// cap the spread of priorities at twice the total voting power
	cpy.rescalePriorities(new(big.Int).Mul(cpy.total, big2))
	cpy.shiftByAvgProposerPriority()

	var proposer *Validator
	for range times {
		proposer = cpy.incrementProposerPriority()
	}
	cpy.proposer = proposer
	return cpy, nil
}

// Merge returns a new set whose members are the given candidates. Members
// carried over from the receiver keep their priority, new members start
// with -1.25 times the total voting power (including the power of removed
// members).
func (s *ActiveSet) Merge(candidates []*Validator) (*ActiveSet, error) {
	members := make(map[rei.Address]struct{}, len(candidates))
	for _, c := range candidates {
		members[c.Address] = struct{}{}
	}
	validators := make([]*Validator, 0, len(candidates))
	for _, c := range candidates {
		v := c.Copy()
		v.ProposerPriority = new(big.Int)
		validators = append(validators, v)
	}
	s.computeNewPriorities(validators, members)
	return NewActiveSet(validators)
}

func (s *ActiveSet) computeNewPriorities(validators []*Validator, members map[rei.Address]struct{}) {
	tvp := new(big.Int)
	for _, v := range validators {
		tvp.Add(tvp, v.VotingPower)
	}
	for _, v := range s.validators {
		if _, ok := members[v.Address]; !ok {
			tvp.Add(tvp, v.VotingPower)
		}
	}

	// -1.25 * tvp
	newPriority := new(big.Int).Mul(tvp, big5)
	newPriority.Quo(newPriority, big4)
	newPriority.Neg(newPriority)

	for _, v := range validators {
		if i, ok := s.index[v.Address]; ok {
			v.ProposerPriority.Set(s.validators[i].ProposerPriority)
		} else {
			v.ProposerPriority.Set(newPriority)
		}
	}
}

// WriteBack persists proposer and priorities through the stake manager.
func (s *ActiveSet) WriteBack(sm StakeManager) error {
	return errors.Wrap(sm.OnAfterBlock(s.Proposer(), s.Addresses(), s.Priorities()), "write back active set")
}

func (s *ActiveSet) rescalePriorities(diffMax *big.Int) {
	diff := new(big.Int).Sub(s.maxPriority(), s.minPriority())
	if diff.Cmp(diffMax) <= 0 {
		return
	}
	// ceil(diff / diffMax)
	ratio := new(big.Int).Add(diff, diffMax)
	ratio.Sub(ratio, big1)
	ratio.Quo(ratio, diffMax)
	for _, v := range s.validators {
		v.ProposerPriority.Quo(v.ProposerPriority, ratio)
	}
}

func (s *ActiveSet) shiftByAvgProposerPriority() {
	sum := new(big.Int)
	for _, v := range s.validators {
		sum.Add(sum, v.ProposerPriority)
	}
	avg := sum.Quo(sum, big.NewInt(int64(len(s.validators))))
	for _, v := range s.validators {
		v.ProposerPriority.Sub(v.ProposerPriority, avg)
		checkPriority(v.ProposerPriority)
	}
}

func (s *ActiveSet) incrementProposerPriority() *Validator {
	for _, v := range s.validators {
		v.ProposerPriority.Add(v.ProposerPriority, v.VotingPower)
		checkPriority(v.ProposerPriority)
	}
	mostest := s.findProposer()
	mostest.ProposerPriority.Sub(mostest.ProposerPriority, s.total)
	checkPriority(mostest.ProposerPriority)
	return mostest
}

func (s *ActiveSet) findProposer() *Validator {
	var proposer *Validator
	for _, v := range s.validators {
		if proposer == nil || v.morePriority(proposer) {
			proposer = v
		}
	}
	return proposer
}

func (s *ActiveSet) maxPriority() *big.Int {
	max := s.validators[0].ProposerPriority
	for _, v := range s.validators[1:] {
		if v.ProposerPriority.Cmp(max) > 0 {
			max = v.ProposerPriority
		}
	}
	return max
}

func (s *ActiveSet) minPriority() *big.Int {
	min := s.validators[0].ProposerPriority
	for _, v := range s.validators[1:] {
		if v.ProposerPriority.Cmp(min) < 0 {
			min = v.ProposerPriority
		}
	}
	return min
}

func checkPriority(p *big.Int) {
	if p.CmpAbs(maxPriority) > 0 {
		panic(fmt.Sprintf("proposer priority %v out of bounds", p))
	}
}

func (s *ActiveSet) String() string {
	return fmt.Sprintf("ActiveSet{Proposer:%v Total:%v Validators:%v}", s.proposer.Address, s.total, s.validators)
}
