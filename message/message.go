// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package message defines the consensus gossip messages. A message travels
// as the RLP list [code, body].
package message

import (
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/reimint"
	"github.com/rei-network/reimint/registry"
)

// Message codes.
const (
	NewRoundStepCode byte = iota
	NewValidBlockCode
	HasVoteCode
	ProposalCode
	ProposalPOLCode
	VoteCode
	VoteSetMaj23Code
	VoteSetBitsCode
	GetProposalBlockCode
	ProposalBlockCode
)

// RoundStep is the step of the round state machine.
type RoundStep uint8

const (
	RoundStepNewHeight RoundStep = iota + 1
	RoundStepNewRound
	RoundStepPropose
	RoundStepPrevote
	RoundStepPrevoteWait
	RoundStepPrecommit
	RoundStepPrecommitWait
	RoundStepCommit
)

// IsValid reports whether rs is a known step.
func (rs RoundStep) IsValid() bool {
	return rs >= RoundStepNewHeight && rs <= RoundStepCommit
}

var ErrInvalidMessage = errors.New("invalid message")

// Message is a consensus gossip message. The set of implementations is closed.
type Message interface {
	registry.Variant
	ValidateBasic() error

	message()
}

var messageRegistry = registry.New[Message]("message").
	Register(NewRoundStepCode, decodeAs[NewRoundStep]).
	Register(NewValidBlockCode, decodeAs[NewValidBlock]).
	Register(HasVoteCode, decodeAs[HasVote]).
	Register(ProposalCode, decodeAs[Proposal]).
	Register(ProposalPOLCode, decodeAs[ProposalPOL]).
	Register(VoteCode, decodeAs[Vote]).
	Register(VoteSetMaj23Code, decodeAs[VoteSetMaj23]).
	Register(VoteSetBitsCode, decodeAs[VoteSetBits]).
	Register(GetProposalBlockCode, decodeAs[GetProposalBlock]).
	Register(ProposalBlockCode, decodeAs[ProposalBlock])

// Encode encodes msg for the wire.
func Encode(msg Message) ([]byte, error) {
	return messageRegistry.EncodeToBytes(msg)
}

// Decode decodes and validates a message from the wire.
func Decode(data []byte) (Message, error) {
	msg, err := messageRegistry.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return msg, nil
}

func validateHeightRound(height uint64, round int32) error {
	if height == 0 {
		return errors.Wrap(ErrInvalidMessage, "zero height")
	}
	if round < 0 {
		return errors.Wrapf(reimint.ErrInvalidRound, "%d", round)
	}
	return nil
}

func validateVoteType(t reimint.VoteType) error {
	if !t.IsVoteType() {
		return errors.Wrapf(reimint.ErrInvalidType, "%v", t)
	}
	return nil
}
