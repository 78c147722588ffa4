// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/validatorset"
)

// ExtraData is the consensus data embedded in the header extra data, after
// the vanity prefix:
//
//	[evidenceList, [round, POLRound+1, (commitRound)], proposalSignature, slot_0, ..., slot_n-1]
//
// A slot is an empty list when the validator did not precommit, otherwise its
// 65 bytes precommit signature of the block hash at CommitRound.
type ExtraData struct {
	Round       int32
	CommitRound int32
	POLRound    int32
	Evidence    []Evidence
	Proposal    *Proposal
	VoteSet     *VoteSet
}

// ExtraDataOptions carries the header context needed to rebuild votes and
// the proposal from extra data.
type ExtraDataOptions struct {
	ChainID          uint64
	Height           uint64
	Hash             rei.Bytes32 // header hash, vote slots excluded
	Timestamp        uint64
	ValSet           *validatorset.ActiveSet
	MaxEvidenceCount int
}

func encodeEvidenceList(evList []Evidence) ([]rlp.RawValue, error) {
	list := make([]rlp.RawValue, 0, len(evList))
	for _, ev := range evList {
		data, err := EncodeEvidence(ev)
		if err != nil {
			return nil, err
		}
		list = append(list, data)
	}
	return list, nil
}

// Raw returns the RLP encoding of the extra data, without the vanity. Vote
// slots are only appended when withVotes is set.
func (ed *ExtraData) Raw(withVotes bool) ([]byte, error) {
	evList, err := encodeEvidenceList(ed.Evidence)
	if err != nil {
		return nil, err
	}
	if ed.Proposal == nil {
		return nil, errors.Wrap(ErrInvalidExtraData, "missing proposal")
	}

	roundInfo := []uint64{uint64(ed.Round), uint64(ed.POLRound + 1)}
	if ed.CommitRound != ed.Round {
		roundInfo = append(roundInfo, uint64(ed.CommitRound))
	}

	values := []any{evList, roundInfo, ed.Proposal.Signature}
	if withVotes {
		if ed.VoteSet == nil {
			return nil, errors.Wrap(ErrInvalidExtraData, "missing vote set")
		}
		hash, ok := ed.VoteSet.TwoThirdsMajority()
		if !ok {
			return nil, ErrMissingCommit
		}
		for i := range ed.VoteSet.Size() {
			if vote := ed.VoteSet.GetVoteByHash(int32(i), hash); vote != nil {
				values = append(values, vote.Signature)
			} else {
				values = append(values, []any{})
			}
		}
	}
	return rlp.EncodeToBytes(values)
}

// Encode returns the full header extra data, vanity included.
func (ed *ExtraData) Encode(vanity []byte, withVotes bool) ([]byte, error) {
	if len(vanity) != ExtraVanity {
		return nil, errors.Wrapf(ErrInvalidExtraData, "vanity length %d", len(vanity))
	}
	raw, err := ed.Raw(withVotes)
	if err != nil {
		return nil, err
	}
	return append(append([]byte(nil), vanity...), raw...), nil
}

// EvidenceExtra returns the extra data covered by the header hash: the
// vanity and the evidence list.
func EvidenceExtra(vanity []byte, evList []Evidence) ([]byte, error) {
	if len(vanity) != ExtraVanity {
		return nil, errors.Wrapf(ErrInvalidExtraData, "vanity length %d", len(vanity))
	}
	list, err := encodeEvidenceList(evList)
	if err != nil {
		return nil, err
	}
	raw, err := rlp.EncodeToBytes([]any{list})
	if err != nil {
		return nil, err
	}
	return append(append([]byte(nil), vanity...), raw...), nil
}

// DecodeExtraData decodes the full header extra data.
func DecodeExtraData(extra []byte, opts *ExtraDataOptions) (*ExtraData, error) {
	if len(extra) < ExtraVanity {
		return nil, errors.Wrapf(ErrInvalidExtraData, "length %d", len(extra))
	}
	return ParseExtraData(extra[ExtraVanity:], opts)
}

// ParseExtraData decodes the output of Raw, rebuilding the proposal and,
// when vote slots are present, the precommit vote set.
func ParseExtraData(raw []byte, opts *ExtraDataOptions) (*ExtraData, error) {
	s := rlp.NewStream(bytes.NewReader(raw), uint64(len(raw)))
	if _, err := s.List(); err != nil {
		return nil, errors.Wrap(ErrInvalidExtraData, err.Error())
	}

	evList, err := decodeEvidenceList(s, opts.MaxEvidenceCount)
	if err != nil {
		return nil, err
	}

	ed := &ExtraData{Evidence: evList}
	if err := ed.decodeRoundInfo(s); err != nil {
		return nil, err
	}

	sig, err := s.Bytes()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidExtraData, "proposal signature: "+err.Error())
	}
	ed.Proposal = &Proposal{
		Height:    opts.Height,
		Round:     ed.Round,
		POLRound:  ed.POLRound,
		Hash:      opts.Hash,
		Signature: sig,
	}

	slots, err := decodeVoteSlots(s)
	if err != nil {
		return nil, err
	}
	if err := s.ListEnd(); err != nil {
		return nil, errors.Wrap(ErrInvalidExtraData, err.Error())
	}
	if len(slots) == 0 {
		return ed, nil
	}

	if opts.ValSet == nil || len(slots) != opts.ValSet.Len() {
		return nil, errors.Wrapf(ErrInvalidVoteSlots, "%d slots", len(slots))
	}
	ed.VoteSet = NewVoteSet(opts.ChainID, opts.Height, ed.CommitRound, PrecommitType, opts.ValSet)
	for i, sig := range slots {
		if sig == nil {
			continue
		}
		vote := &Vote{
			ChainID:   opts.ChainID,
			Type:      PrecommitType,
			Height:    opts.Height,
			Round:     ed.CommitRound,
			Hash:      opts.Hash,
			Timestamp: opts.Timestamp,
			Index:     int32(i),
			Signature: sig,
		}
		if _, err := ed.VoteSet.AddVote(vote); err != nil {
			return nil, errors.Wrapf(err, "vote slot %d", i)
		}
	}
	return ed, nil
}

func decodeEvidenceList(s *rlp.Stream, maxCount int) ([]Evidence, error) {
	if _, err := s.List(); err != nil {
		return nil, errors.Wrap(ErrInvalidExtraData, "evidence list: "+err.Error())
	}
	var list []Evidence
	for {
		raw, err := s.Raw()
		if err == rlp.EOL {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrInvalidExtraData, "evidence: "+err.Error())
		}
		if len(list) >= maxCount {
			return nil, errors.Wrapf(ErrTooManyEvidence, "max %d", maxCount)
		}
		ev, err := DecodeEvidence(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	if err := s.ListEnd(); err != nil {
		return nil, errors.Wrap(ErrInvalidExtraData, err.Error())
	}
	return list, nil
}

func (ed *ExtraData) decodeRoundInfo(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return errors.Wrap(ErrInvalidExtraData, "round info: "+err.Error())
	}
	round, err := s.Uint32()
	if err != nil {
		return errors.Wrap(ErrInvalidExtraData, "round: "+err.Error())
	}
	pol, err := s.Uint32()
	if err != nil {
		return errors.Wrap(ErrInvalidExtraData, "POL round: "+err.Error())
	}
	commitRound, err := s.Uint32()
	switch {
	case err == rlp.EOL:
		commitRound = round
	case err != nil:
		return errors.Wrap(ErrInvalidExtraData, "commit round: "+err.Error())
	case commitRound == round:
		// omitted when equal to the round
		return errors.Wrap(ErrInvalidExtraData, "non-canonical commit round")
	}
	if err := s.ListEnd(); err != nil {
		return errors.Wrap(ErrInvalidExtraData, "round info: "+err.Error())
	}
	if round > MaxRound || commitRound > MaxRound || pol > round {
		return errors.Wrapf(ErrInvalidRound, "round %d, POL %d, commit round %d", round, int64(pol)-1, commitRound)
	}
	ed.Round = int32(round)
	ed.POLRound = int32(pol) - 1
	ed.CommitRound = int32(commitRound)
	return nil
}

// decodeVoteSlots returns one entry per slot, nil for an empty slot.
func decodeVoteSlots(s *rlp.Stream) ([][]byte, error) {
	var slots [][]byte
	for {
		kind, size, err := s.Kind()
		if err == rlp.EOL {
			return slots, nil
		}
		if err != nil {
			return nil, errors.Wrap(ErrInvalidExtraData, "vote slot: "+err.Error())
		}
		if kind == rlp.List {
			if size != 0 {
				return nil, errors.Wrapf(ErrInvalidExtraData, "vote slot %d is a non-empty list", len(slots))
			}
			if _, err := s.List(); err != nil {
				return nil, err
			}
			if err := s.ListEnd(); err != nil {
				return nil, err
			}
			slots = append(slots, nil)
			continue
		}
		sig, err := s.Bytes()
		if err != nil {
			return nil, errors.Wrap(ErrInvalidExtraData, "vote slot: "+err.Error())
		}
		if len(sig) != SignatureLength {
			return nil, errors.Wrapf(ErrInvalidSignatureLength, "vote slot %d", len(slots))
		}
		slots = append(slots, sig)
	}
}

// Validate checks the extra data against the active set of its height:
// round relations, evidence, the proposal signature of the round proposer
// and the precommit majority for the header hash.
func (ed *ExtraData) Validate(valSet *validatorset.ActiveSet) error {
	if ed.CommitRound < ed.Round {
		return errors.Wrapf(ErrInvalidRound, "commit round %d before round %d", ed.CommitRound, ed.Round)
	}
	for _, ev := range ed.Evidence {
		if err := ev.ValidateBasic(); err != nil {
			return errors.Wrapf(err, "evidence %v", ev.Hash())
		}
	}
	if ed.Proposal == nil {
		return errors.Wrap(ErrInvalidExtraData, "missing proposal")
	}
	if err := ed.Proposal.ValidateBasic(); err != nil {
		return err
	}
	proposerSet := valSet
	if ed.Round > 0 {
		var err error
		if proposerSet, err = valSet.WithIncrementedPriority(int(ed.Round)); err != nil {
			return err
		}
	}
	if err := ed.Proposal.ValidateSignature(proposerSet); err != nil {
		return err
	}

	if ed.VoteSet == nil {
		return errors.Wrap(ErrMissingCommit, "no votes")
	}
	hash, ok := ed.VoteSet.TwoThirdsMajority()
	if !ok || !ed.VoteSet.IsCommit() || hash != ed.Proposal.Hash {
		return ErrMissingCommit
	}
	return nil
}
