// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reimint implements the data structures of the Reimint BFT
// consensus: signed votes and proposals, quorum accumulators, equivocation
// evidence and the consensus extra data embedded in block headers.
package reimint

import (
	"fmt"
	"math"
)

const (
	// ExtraVanity is the fixed length of the free-form prefix of header extra data.
	ExtraVanity = 32
	// SignatureLength is the length of a recoverable secp256k1 signature.
	SignatureLength = 65
	// MaxRound bounds rounds and validator indexes.
	MaxRound = math.MaxInt32
)

// VoteType is the type of a signed consensus message.
type VoteType uint8

const (
	PrevoteType   VoteType = 1
	PrecommitType VoteType = 2
	ProposalType  VoteType = 32
)

// IsVoteType reports whether t is Prevote or Precommit.
func (t VoteType) IsVoteType() bool {
	return t == PrevoteType || t == PrecommitType
}

func (t VoteType) String() string {
	switch t {
	case PrevoteType:
		return "Prevote"
	case PrecommitType:
		return "Precommit"
	case ProposalType:
		return "Proposal"
	default:
		return fmt.Sprintf("VoteType(%d)", uint8(t))
	}
}
