// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/rei-network/reimint/metrics"
	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/validatorset"
)

var (
	metricVotesAdded       = metrics.LazyLoadCounterVec("reimint_votes_added_count", []string{"type"})
	metricConflictingVotes = metrics.LazyLoadCounter("reimint_conflicting_votes_count")
)

// blockVotes accumulates the votes for one hash.
type blockVotes struct {
	peerMaj23 bool // a peer claims this hash has +2/3
	bitArray  *BitArray
	votes     []*Vote
	sum       *big.Int
}

func newBlockVotes(peerMaj23 bool, size int) *blockVotes {
	return &blockVotes{
		peerMaj23: peerMaj23,
		bitArray:  NewBitArray(size),
		votes:     make([]*Vote, size),
		sum:       new(big.Int),
	}
}

func (bv *blockVotes) addVerifiedVote(vote *Vote, power *big.Int) {
	if bv.votes[vote.Index] == nil {
		bv.bitArray.SetIndex(int(vote.Index), true)
		bv.votes[vote.Index] = vote
		bv.sum.Add(bv.sum, power)
	}
}

// VoteSet collects the votes of one height, round and type, and finds the
// first hash reaching two thirds of the voting power.
//
// Not goroutine safe.
type VoteSet struct {
	chainID  uint64
	height   uint64
	round    int32
	voteType VoteType
	valSet   *validatorset.ActiveSet
	quorum   *big.Int

	votesBitArray *BitArray
	votes         []*Vote
	sum           *big.Int
	maj23         *rei.Bytes32
	votesByBlock  map[rei.Bytes32]*blockVotes
	peerMaj23s    map[string]rei.Bytes32
}

// NewVoteSet creates an empty vote set.
func NewVoteSet(chainID, height uint64, round int32, voteType VoteType, valSet *validatorset.ActiveSet) *VoteSet {
	// floor(total * 2 / 3) + 1
	quorum := valSet.TotalVotingPower()
	quorum.Mul(quorum, big.NewInt(2))
	quorum.Quo(quorum, big.NewInt(3))
	quorum.Add(quorum, big.NewInt(1))

	return &VoteSet{
		chainID:       chainID,
		height:        height,
		round:         round,
		voteType:      voteType,
		valSet:        valSet,
		quorum:        quorum,
		votesBitArray: NewBitArray(valSet.Len()),
		votes:         make([]*Vote, valSet.Len()),
		sum:           new(big.Int),
		votesByBlock:  make(map[rei.Bytes32]*blockVotes),
		peerMaj23s:    make(map[string]rei.Bytes32),
	}
}

func (vs *VoteSet) ChainID() uint64                 { return vs.chainID }
func (vs *VoteSet) Height() uint64                  { return vs.height }
func (vs *VoteSet) Round() int32                    { return vs.round }
func (vs *VoteSet) Type() VoteType                  { return vs.voteType }
func (vs *VoteSet) Size() int                       { return vs.valSet.Len() }
func (vs *VoteSet) ValSet() *validatorset.ActiveSet { return vs.valSet }

// Quorum returns the power a hash needs to become the majority.
func (vs *VoteSet) Quorum() *big.Int {
	return new(big.Int).Set(vs.quorum)
}

// AddVote verifies and adds a vote. A vote already present returns
// (false, nil). A validator voting a second hash yields a
// *ConflictingVotesError.
func (vs *VoteSet) AddVote(vote *Vote) (bool, error) {
	if vote == nil {
		return false, errors.New("nil vote")
	}
	if vote.Height != vs.height || vote.Round != vs.round || vote.Type != vs.voteType {
		return false, errors.Wrapf(ErrUnexpectedStep, "expected %d/%d/%v, got %d/%d/%v",
			vs.height, vs.round, vs.voteType, vote.Height, vote.Round, vote.Type)
	}
	if vote.ChainID != vs.chainID {
		return false, errors.Wrapf(ErrUnexpectedChainID, "expected %d, got %d", vs.chainID, vote.ChainID)
	}
	if err := vote.ValidateBasic(); err != nil {
		return false, err
	}
	power, err := vs.valSet.VotingPowerAt(int(vote.Index))
	if err != nil {
		return false, errors.Wrapf(ErrInvalidIndex, "%d of %d", vote.Index, vs.valSet.Len())
	}

	if existing := vs.GetVoteByHash(vote.Index, vote.Hash); existing != nil {
		if bytes.Equal(existing.Signature, vote.Signature) {
			return false, nil
		}
		return false, errors.Wrapf(ErrNonDeterministicSignature, "existing %v, new %v", existing, vote)
	}

	if err := vote.ValidateSignature(vs.valSet); err != nil {
		return false, err
	}

	added, conflicting := vs.AddVerifiedVote(vote, power)
	if conflicting != nil {
		metricConflictingVotes().Add(1)
		return added, &ConflictingVotesError{VoteA: conflicting, VoteB: vote}
	}
	if added {
		metricVotesAdded().AddWithLabel(1, map[string]string{"type": vs.voteType.String()})
	}
	return added, nil
}

// AddVerifiedVote adds a vote whose signature was already checked and
// returns the earlier vote of the same validator for another hash, if any.
//
// Once a majority is decided, a vote for the majority hash overwrites the
// validator's earlier vote and no conflict is reported.
func (vs *VoteSet) AddVerifiedVote(vote *Vote, power *big.Int) (added bool, conflicting *Vote) {
	index := vote.Index
	if existing := vs.votes[index]; existing != nil {
		if existing.Hash == vote.Hash {
			return false, nil
		}
		if vs.maj23 != nil && *vs.maj23 == vote.Hash {
			vs.votes[index] = vote
			vs.votesBitArray.SetIndex(int(index), true)
		} else {
			conflicting = existing
		}
	} else {
		vs.votes[index] = vote
		vs.votesBitArray.SetIndex(int(index), true)
		vs.sum.Add(vs.sum, power)
	}

	bv, ok := vs.votesByBlock[vote.Hash]
	if ok {
		if conflicting != nil && !bv.peerMaj23 {
			return false, conflicting
		}
	} else {
		if conflicting != nil {
			return false, conflicting
		}
		bv = newBlockVotes(false, vs.valSet.Len())
		vs.votesByBlock[vote.Hash] = bv
	}

	origSum := new(big.Int).Set(bv.sum)
	bv.addVerifiedVote(vote, power)

	if vs.maj23 == nil && origSum.Cmp(vs.quorum) < 0 && vs.quorum.Cmp(bv.sum) <= 0 {
		hash := vote.Hash
		vs.maj23 = &hash
		for i, v := range bv.votes {
			if v != nil {
				vs.votes[i] = v
			}
		}
	}
	return true, conflicting
}

// SetPeerMaj23 records that peerID claims hash has two thirds of the votes.
// A peer claiming two different hashes is a protocol violation.
func (vs *VoteSet) SetPeerMaj23(peerID string, hash rei.Bytes32) error {
	if existing, ok := vs.peerMaj23s[peerID]; ok {
		if existing == hash {
			return nil
		}
		return errors.Wrapf(ErrConflictingPeerMaj23, "peer %s claimed %v, now %v", peerID, existing, hash)
	}
	vs.peerMaj23s[peerID] = hash

	if bv, ok := vs.votesByBlock[hash]; ok {
		bv.peerMaj23 = true
	} else {
		vs.votesByBlock[hash] = newBlockVotes(true, vs.valSet.Len())
	}
	return nil
}

// GetVote returns the canonical vote of index.
func (vs *VoteSet) GetVote(index int32) *Vote {
	if index < 0 || int(index) >= len(vs.votes) {
		return nil
	}
	return vs.votes[index]
}

// GetVoteByHash returns the vote of index for hash.
func (vs *VoteSet) GetVoteByHash(index int32, hash rei.Bytes32) *Vote {
	if index < 0 || int(index) >= len(vs.votes) {
		return nil
	}
	if v := vs.votes[index]; v != nil && v.Hash == hash {
		return v
	}
	if bv, ok := vs.votesByBlock[hash]; ok {
		return bv.votes[index]
	}
	return nil
}

// BitArray returns which validators have a canonical vote.
func (vs *VoteSet) BitArray() *BitArray {
	return vs.votesBitArray.Copy()
}

// BitArrayByHash returns which validators voted for hash, nil if unknown.
func (vs *VoteSet) BitArrayByHash(hash rei.Bytes32) *BitArray {
	if bv, ok := vs.votesByBlock[hash]; ok {
		return bv.bitArray.Copy()
	}
	return nil
}

// Sum returns the voting power of the canonical votes.
func (vs *VoteSet) Sum() *big.Int {
	return new(big.Int).Set(vs.sum)
}

// TwoThirdsMajority returns the majority hash.
func (vs *VoteSet) TwoThirdsMajority() (rei.Bytes32, bool) {
	if vs.maj23 == nil {
		return rei.Bytes32{}, false
	}
	return *vs.maj23, true
}

// HasTwoThirdsMajority reports whether some hash reached the quorum.
func (vs *VoteSet) HasTwoThirdsMajority() bool {
	return vs.maj23 != nil
}

// IsCommit reports whether the set is a precommit majority.
func (vs *VoteSet) IsCommit() bool {
	return vs.voteType == PrecommitType && vs.maj23 != nil
}

// HasTwoThirdsAny reports whether the votes for any hashes together reach the quorum.
func (vs *VoteSet) HasTwoThirdsAny() bool {
	return vs.sum.Cmp(vs.quorum) >= 0
}

// HasAll reports whether every validator voted.
func (vs *VoteSet) HasAll() bool {
	return vs.sum.Cmp(vs.valSet.TotalVotingPower()) == 0
}

// Votes returns the canonical votes indexed by validator, nil where absent.
func (vs *VoteSet) Votes() []*Vote {
	return append([]*Vote(nil), vs.votes...)
}

func (vs *VoteSet) String() string {
	return fmt.Sprintf("VoteSet{H:%d R:%d T:%v %v sum:%v}", vs.height, vs.round, vs.voteType, vs.votesBitArray, vs.sum)
}
