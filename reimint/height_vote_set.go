// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/log"
	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/validatorset"
)

// maxPeerCatchupRounds bounds the rounds a peer may open ahead of us.
const maxPeerCatchupRounds = 2

var logger = log.WithContext("pkg", "reimint")

type roundVoteSet struct {
	prevotes   *VoteSet
	precommits *VoteSet
}

// HeightVoteSet keeps the vote sets of every round of one height.
//
// Not goroutine safe.
type HeightVoteSet struct {
	chainID uint64
	height  uint64
	valSet  *validatorset.ActiveSet

	round             int32
	roundVoteSets     map[int32]*roundVoteSet
	peerCatchupRounds map[string][]int32
}

// NewHeightVoteSet creates a height vote set with round 0 opened.
func NewHeightVoteSet(chainID, height uint64, valSet *validatorset.ActiveSet) *HeightVoteSet {
	hvs := &HeightVoteSet{chainID: chainID}
	hvs.Reset(height, valSet)
	return hvs
}

// Reset drops all votes and starts over at height.
func (hvs *HeightVoteSet) Reset(height uint64, valSet *validatorset.ActiveSet) {
	hvs.height = height
	hvs.valSet = valSet
	hvs.round = 0
	hvs.roundVoteSets = make(map[int32]*roundVoteSet)
	hvs.peerCatchupRounds = make(map[string][]int32)
	hvs.addRound(0)
}

// Height returns the height.
func (hvs *HeightVoteSet) Height() uint64 {
	return hvs.height
}

// Round returns the current round.
func (hvs *HeightVoteSet) Round() int32 {
	return hvs.round
}

// SetRound moves the round cursor forward, opening every round up to round.
func (hvs *HeightVoteSet) SetRound(round int32) error {
	if round < hvs.round {
		return errors.Wrapf(ErrRoundDecreased, "%d to %d", hvs.round, round)
	}
	for r := hvs.round; r <= round; r++ {
		if _, ok := hvs.roundVoteSets[r]; !ok {
			hvs.addRound(r)
		}
	}
	hvs.round = round
	return nil
}

func (hvs *HeightVoteSet) addRound(round int32) {
	hvs.roundVoteSets[round] = &roundVoteSet{
		prevotes:   NewVoteSet(hvs.chainID, hvs.height, round, PrevoteType, hvs.valSet),
		precommits: NewVoteSet(hvs.chainID, hvs.height, round, PrecommitType, hvs.valSet),
	}
}

// AddVote adds a vote received from peerID. A vote for an unopened round
// opens it, at most twice per peer.
func (hvs *HeightVoteSet) AddVote(vote *Vote, peerID string) (bool, error) {
	if !vote.Type.IsVoteType() {
		return false, errors.Wrapf(ErrInvalidType, "%v", vote.Type)
	}
	if vote.Round < 0 {
		return false, errors.Wrapf(ErrInvalidRound, "%d", vote.Round)
	}
	// checked before a catch-up round is charged to the peer
	if vote.Height != hvs.height {
		return false, errors.Wrapf(ErrUnexpectedStep, "expected height %d, got %d", hvs.height, vote.Height)
	}
	if vote.ChainID != hvs.chainID {
		return false, errors.Wrapf(ErrUnexpectedChainID, "expected %d, got %d", hvs.chainID, vote.ChainID)
	}
	vs := hvs.getVoteSet(vote.Round, vote.Type)
	if vs == nil {
		rounds := hvs.peerCatchupRounds[peerID]
		if len(rounds) >= maxPeerCatchupRounds {
			logger.Debug("unwanted round", "peer", peerID, "height", vote.Height, "round", vote.Round)
			return false, ErrUnwantedRound
		}
		hvs.addRound(vote.Round)
		hvs.peerCatchupRounds[peerID] = append(rounds, vote.Round)
		vs = hvs.getVoteSet(vote.Round, vote.Type)
	}
	return vs.AddVote(vote)
}

// Prevotes returns the prevotes of round, nil if not opened.
func (hvs *HeightVoteSet) Prevotes(round int32) *VoteSet {
	return hvs.getVoteSet(round, PrevoteType)
}

// Precommits returns the precommits of round, nil if not opened.
func (hvs *HeightVoteSet) Precommits(round int32) *VoteSet {
	return hvs.getVoteSet(round, PrecommitType)
}

// POLInfo returns the latest round with a prevote majority, or -1.
func (hvs *HeightVoteSet) POLInfo() (int32, rei.Bytes32) {
	for r := hvs.round; r >= 0; r-- {
		if prevotes := hvs.Prevotes(r); prevotes != nil {
			if hash, ok := prevotes.TwoThirdsMajority(); ok {
				return r, hash
			}
		}
	}
	return -1, rei.Bytes32{}
}

// SetPeerMaj23 records a peer majority claim. Claims for unopened rounds are ignored.
func (hvs *HeightVoteSet) SetPeerMaj23(round int32, voteType VoteType, peerID string, hash rei.Bytes32) error {
	if !voteType.IsVoteType() {
		return errors.Wrapf(ErrInvalidType, "%v", voteType)
	}
	vs := hvs.getVoteSet(round, voteType)
	if vs == nil {
		return nil
	}
	return vs.SetPeerMaj23(peerID, hash)
}

func (hvs *HeightVoteSet) getVoteSet(round int32, voteType VoteType) *VoteSet {
	rvs, ok := hvs.roundVoteSets[round]
	if !ok {
		return nil
	}
	switch voteType {
	case PrevoteType:
		return rvs.prevotes
	case PrecommitType:
		return rvs.precommits
	default:
		return nil
	}
}
