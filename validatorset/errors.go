// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import "errors"

var (
	ErrEmptyValidatorSet     = errors.New("empty validator set")
	ErrZeroTotalVotingPower  = errors.New("zero total voting power")
	ErrInvalidVotingPower    = errors.New("invalid voting power")
	ErrDuplicateValidator    = errors.New("duplicate validator")
	ErrMixedValidatorSet     = errors.New("genesis and non-genesis validators mixed in one set")
	ErrUnknownProposer       = errors.New("proposer not in validator set")
	ErrIndexOutOfRange       = errors.New("validator index out of range")
	ErrNoStakeManager        = errors.New("validator set not cached and no stake manager given")
	ErrInvalidIncrementTimes = errors.New("increment times must be positive")
)
