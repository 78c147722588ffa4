// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidType                  = errors.New("invalid vote type")
	ErrInvalidRound                 = errors.New("invalid round")
	ErrInvalidPOLRound              = errors.New("invalid POL round")
	ErrInvalidIndex                 = errors.New("invalid validator index")
	ErrInvalidSignatureLength       = errors.New("invalid signature length")
	ErrInvalidSignature             = errors.New("invalid signature")
	ErrUnexpectedStep               = errors.New("unexpected height, round or type")
	ErrUnexpectedChainID            = errors.New("unexpected chain id")
	ErrNonDeterministicSignature    = errors.New("non-deterministic signature")
	ErrConflictingPeerMaj23         = errors.New("conflicting peer maj23 claim")
	ErrUnwantedRound                = errors.New("peer has sent a vote that does not match our round for more than one round")
	ErrRoundDecreased               = errors.New("round must not decrease")
	ErrInvalidEvidence              = errors.New("invalid evidence")
	ErrTooManyEvidence              = errors.New("too many evidence")
	ErrInvalidExtraData             = errors.New("invalid extra data")
	ErrInvalidVoteSlots             = errors.New("vote slots do not match validator set size")
	ErrMissingCommit                = errors.New("commit votes do not reach two thirds majority")
	ErrUnexpectedProposer           = errors.New("proposal not signed by proposer")
	ErrInvalidBitArray              = errors.New("invalid bit array")
	errDuplicateVoteEvidenceOrdered = errors.New("duplicate vote evidence votes are not in canonical order")
)

// ConflictingVotesError reports a validator signing two different hashes
// for one height, round and type. VoteA is the vote seen first.
type ConflictingVotesError struct {
	VoteA *Vote
	VoteB *Vote
}

func (e *ConflictingVotesError) Error() string {
	return fmt.Sprintf("conflicting votes from validator %d: %v and %v", e.VoteA.Index, e.VoteA.Hash, e.VoteB.Hash)
}

// IsConflictingVotes returns the conflict carried by err, if any.
func IsConflictingVotes(err error) (*ConflictingVotesError, bool) {
	var e *ConflictingVotesError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
