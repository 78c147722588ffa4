// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package message

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/reimint"
)

// decodeAs decodes body into a fresh *T.
func decodeAs[T any, PT interface {
	*T
	Message
	rlp.Decoder
}](body []byte) (Message, error) {
	msg := PT(new(T))
	if err := rlp.DecodeBytes(body, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func toRound(r uint32) (int32, error) {
	if r > reimint.MaxRound {
		return 0, errors.Wrapf(reimint.ErrInvalidRound, "%d", r)
	}
	return int32(r), nil
}

// NewRoundStep is sent when a peer enters a new step.
type NewRoundStep struct {
	Height                uint64
	Round                 int32
	Step                  RoundStep
	SecondsSinceStartTime uint64
	LastCommitRound       int32
}

type newRoundStepRLP struct {
	Height                uint64
	Round                 uint32
	Step                  uint8
	SecondsSinceStartTime uint64
	LastCommitRound       uint32 // plus one
}

func (*NewRoundStep) message()   {}
func (*NewRoundStep) Code() byte { return NewRoundStepCode }

func (m *NewRoundStep) ValidateBasic() error {
	if err := validateHeightRound(m.Height, m.Round); err != nil {
		return err
	}
	if !m.Step.IsValid() {
		return errors.Wrapf(ErrInvalidMessage, "step %d", m.Step)
	}
	if m.LastCommitRound < -1 {
		return errors.Wrapf(reimint.ErrInvalidRound, "last commit round %d", m.LastCommitRound)
	}
	return nil
}

func (m *NewRoundStep) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &newRoundStepRLP{
		Height:                m.Height,
		Round:                 uint32(m.Round),
		Step:                  uint8(m.Step),
		SecondsSinceStartTime: m.SecondsSinceStartTime,
		LastCommitRound:       uint32(m.LastCommitRound + 1),
	})
}

func (m *NewRoundStep) DecodeRLP(s *rlp.Stream) error {
	var raw newRoundStepRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	round, err := toRound(raw.Round)
	if err != nil {
		return err
	}
	lastCommit, err := toRound(raw.LastCommitRound)
	if err != nil {
		return err
	}
	*m = NewRoundStep{
		Height:                raw.Height,
		Round:                 round,
		Step:                  RoundStep(raw.Step),
		SecondsSinceStartTime: raw.SecondsSinceStartTime,
		LastCommitRound:       lastCommit - 1,
	}
	return nil
}

// NewValidBlock is sent when a peer sees a valid block for its round.
type NewValidBlock struct {
	Height   uint64
	Round    int32
	Hash     rei.Bytes32
	IsCommit bool
}

type newValidBlockRLP struct {
	Height   uint64
	Round    uint32
	Hash     rei.Bytes32
	IsCommit bool
}

func (*NewValidBlock) message()   {}
func (*NewValidBlock) Code() byte { return NewValidBlockCode }

func (m *NewValidBlock) ValidateBasic() error {
	if err := validateHeightRound(m.Height, m.Round); err != nil {
		return err
	}
	if m.Hash.IsZero() {
		return errors.Wrap(ErrInvalidMessage, "zero block hash")
	}
	return nil
}

func (m *NewValidBlock) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &newValidBlockRLP{m.Height, uint32(m.Round), m.Hash, m.IsCommit})
}

func (m *NewValidBlock) DecodeRLP(s *rlp.Stream) error {
	var raw newValidBlockRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	round, err := toRound(raw.Round)
	if err != nil {
		return err
	}
	*m = NewValidBlock{raw.Height, round, raw.Hash, raw.IsCommit}
	return nil
}

// HasVote announces that a peer holds a vote.
type HasVote struct {
	Height uint64
	Round  int32
	Type   reimint.VoteType
	Index  int32
}

type hasVoteRLP struct {
	Height uint64
	Round  uint32
	Type   uint8
	Index  uint32
}

func (*HasVote) message()   {}
func (*HasVote) Code() byte { return HasVoteCode }

func (m *HasVote) ValidateBasic() error {
	if err := validateHeightRound(m.Height, m.Round); err != nil {
		return err
	}
	if err := validateVoteType(m.Type); err != nil {
		return err
	}
	if m.Index < 0 {
		return errors.Wrapf(reimint.ErrInvalidIndex, "%d", m.Index)
	}
	return nil
}

func (m *HasVote) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &hasVoteRLP{m.Height, uint32(m.Round), uint8(m.Type), uint32(m.Index)})
}

func (m *HasVote) DecodeRLP(s *rlp.Stream) error {
	var raw hasVoteRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	round, err := toRound(raw.Round)
	if err != nil {
		return err
	}
	if raw.Index > reimint.MaxRound {
		return errors.Wrapf(reimint.ErrInvalidIndex, "%d", raw.Index)
	}
	*m = HasVote{raw.Height, round, reimint.VoteType(raw.Type), int32(raw.Index)}
	return nil
}

// Proposal carries a signed proposal.
type Proposal struct {
	Proposal *reimint.Proposal
}

func (*Proposal) message()   {}
func (*Proposal) Code() byte { return ProposalCode }

func (m *Proposal) ValidateBasic() error {
	if m.Proposal == nil {
		return errors.Wrap(ErrInvalidMessage, "missing proposal")
	}
	if m.Proposal.Height == 0 {
		return errors.Wrap(ErrInvalidMessage, "zero height")
	}
	return m.Proposal.ValidateBasic()
}

func (m *Proposal) EncodeRLP(w io.Writer) error {
	if m.Proposal == nil {
		return errors.Wrap(ErrInvalidMessage, "missing proposal")
	}
	return m.Proposal.EncodeRLP(w)
}

func (m *Proposal) DecodeRLP(s *rlp.Stream) error {
	var p reimint.Proposal
	if err := s.Decode(&p); err != nil {
		return err
	}
	m.Proposal = &p
	return nil
}

// ProposalPOL carries the prevotes a peer holds for the POL round of a proposal.
type ProposalPOL struct {
	Height           uint64
	ProposalPOLRound int32
	ProposalPOL      *reimint.BitArray
}

type proposalPOLRLP struct {
	Height           uint64
	ProposalPOLRound uint32
	ProposalPOL      *reimint.BitArray
}

func (*ProposalPOL) message()   {}
func (*ProposalPOL) Code() byte { return ProposalPOLCode }

func (m *ProposalPOL) ValidateBasic() error {
	if err := validateHeightRound(m.Height, m.ProposalPOLRound); err != nil {
		return err
	}
	if m.ProposalPOL.Size() == 0 {
		return errors.Wrap(reimint.ErrInvalidBitArray, "empty POL")
	}
	return nil
}

func (m *ProposalPOL) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &proposalPOLRLP{m.Height, uint32(m.ProposalPOLRound), m.ProposalPOL})
}

func (m *ProposalPOL) DecodeRLP(s *rlp.Stream) error {
	var raw proposalPOLRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	round, err := toRound(raw.ProposalPOLRound)
	if err != nil {
		return err
	}
	*m = ProposalPOL{raw.Height, round, raw.ProposalPOL}
	return nil
}

// Vote carries a signed vote.
type Vote struct {
	Vote *reimint.Vote
}

func (*Vote) message()   {}
func (*Vote) Code() byte { return VoteCode }

func (m *Vote) ValidateBasic() error {
	if m.Vote == nil {
		return errors.Wrap(ErrInvalidMessage, "missing vote")
	}
	if m.Vote.Height == 0 {
		return errors.Wrap(ErrInvalidMessage, "zero height")
	}
	return m.Vote.ValidateBasic()
}

func (m *Vote) EncodeRLP(w io.Writer) error {
	if m.Vote == nil {
		return errors.Wrap(ErrInvalidMessage, "missing vote")
	}
	return m.Vote.EncodeRLP(w)
}

func (m *Vote) DecodeRLP(s *rlp.Stream) error {
	var v reimint.Vote
	if err := s.Decode(&v); err != nil {
		return err
	}
	m.Vote = &v
	return nil
}

// VoteSetMaj23 claims a two-thirds majority for a block hash.
type VoteSetMaj23 struct {
	Height uint64
	Round  int32
	Type   reimint.VoteType
	Hash   rei.Bytes32
}

type voteSetMaj23RLP struct {
	Height uint64
	Round  uint32
	Type   uint8
	Hash   rei.Bytes32
}

func (*VoteSetMaj23) message()   {}
func (*VoteSetMaj23) Code() byte { return VoteSetMaj23Code }

func (m *VoteSetMaj23) ValidateBasic() error {
	if err := validateHeightRound(m.Height, m.Round); err != nil {
		return err
	}
	return validateVoteType(m.Type)
}

func (m *VoteSetMaj23) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &voteSetMaj23RLP{m.Height, uint32(m.Round), uint8(m.Type), m.Hash})
}

func (m *VoteSetMaj23) DecodeRLP(s *rlp.Stream) error {
	var raw voteSetMaj23RLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	round, err := toRound(raw.Round)
	if err != nil {
		return err
	}
	*m = VoteSetMaj23{raw.Height, round, reimint.VoteType(raw.Type), raw.Hash}
	return nil
}

// VoteSetBits answers a VoteSetMaj23 with the votes held for the hash.
type VoteSetBits struct {
	Height uint64
	Round  int32
	Type   reimint.VoteType
	Hash   rei.Bytes32
	Votes  *reimint.BitArray
}

type voteSetBitsRLP struct {
	Height uint64
	Round  uint32
	Type   uint8
	Hash   rei.Bytes32
	Votes  *reimint.BitArray
}

func (*VoteSetBits) message()   {}
func (*VoteSetBits) Code() byte { return VoteSetBitsCode }

func (m *VoteSetBits) ValidateBasic() error {
	if err := validateHeightRound(m.Height, m.Round); err != nil {
		return err
	}
	if err := validateVoteType(m.Type); err != nil {
		return err
	}
	if m.Votes.Size() == 0 {
		return errors.Wrap(reimint.ErrInvalidBitArray, "empty votes")
	}
	return nil
}

func (m *VoteSetBits) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &voteSetBitsRLP{m.Height, uint32(m.Round), uint8(m.Type), m.Hash, m.Votes})
}

func (m *VoteSetBits) DecodeRLP(s *rlp.Stream) error {
	var raw voteSetBitsRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	round, err := toRound(raw.Round)
	if err != nil {
		return err
	}
	*m = VoteSetBits{raw.Height, round, reimint.VoteType(raw.Type), raw.Hash, raw.Votes}
	return nil
}

// GetProposalBlock requests the block of a proposal.
type GetProposalBlock struct {
	Hash rei.Bytes32
}

func (*GetProposalBlock) message()   {}
func (*GetProposalBlock) Code() byte { return GetProposalBlockCode }

func (m *GetProposalBlock) ValidateBasic() error {
	if m.Hash.IsZero() {
		return errors.Wrap(ErrInvalidMessage, "zero block hash")
	}
	return nil
}

func (m *GetProposalBlock) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{m.Hash})
}

func (m *GetProposalBlock) DecodeRLP(s *rlp.Stream) error {
	var raw struct{ Hash rei.Bytes32 }
	if err := s.Decode(&raw); err != nil {
		return err
	}
	m.Hash = raw.Hash
	return nil
}

// ProposalBlock carries an encoded block. Block decoding belongs to the chain layer.
type ProposalBlock struct {
	Block rlp.RawValue
}

func (*ProposalBlock) message()   {}
func (*ProposalBlock) Code() byte { return ProposalBlockCode }

func (m *ProposalBlock) ValidateBasic() error {
	if len(m.Block) == 0 {
		return errors.Wrap(ErrInvalidMessage, "empty block")
	}
	return nil
}

func (m *ProposalBlock) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{m.Block})
}

func (m *ProposalBlock) DecodeRLP(s *rlp.Stream) error {
	var raw struct{ Block rlp.RawValue }
	if err := s.Decode(&raw); err != nil {
		return err
	}
	m.Block = raw.Block
	return nil
}
