// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/registry"
	"github.com/rei-network/reimint/rei"
)

// DuplicateVoteEvidenceCode is the type code of DuplicateVoteEvidence.
const DuplicateVoteEvidenceCode byte = 0

// Evidence is a proof of validator misbehavior. The set of implementations
// is closed.
type Evidence interface {
	registry.Variant
	Height() uint64
	Hash() rei.Bytes32
	ValidateBasic() error
	Validators() ([]rei.Address, error)

	evidence()
}

var evidenceRegistry = registry.New[Evidence]("evidence").
	Register(DuplicateVoteEvidenceCode, decodeDuplicateVoteEvidence)

// EncodeEvidence encodes ev as [code, body].
func EncodeEvidence(ev Evidence) ([]byte, error) {
	return evidenceRegistry.EncodeToBytes(ev)
}

// DecodeEvidence decodes the [code, body] encoding of an evidence.
func DecodeEvidence(data []byte) (Evidence, error) {
	return evidenceRegistry.DecodeBytes(data)
}

// DuplicateVoteEvidence proves a validator signed two different hashes for
// the same height, round and type. VoteA has the smaller signature.
type DuplicateVoteEvidence struct {
	VoteA *Vote
	VoteB *Vote
}

// NewDuplicateVoteEvidence builds the evidence of two conflicting votes in
// canonical order.
func NewDuplicateVoteEvidence(v1, v2 *Vote) (*DuplicateVoteEvidence, error) {
	if v1 == nil || v2 == nil {
		return nil, errors.Wrap(ErrInvalidEvidence, "missing vote")
	}
	if bytes.Compare(v1.Signature, v2.Signature) > 0 {
		v1, v2 = v2, v1
	}
	return &DuplicateVoteEvidence{VoteA: v1.Copy(), VoteB: v2.Copy()}, nil
}

func (ev *DuplicateVoteEvidence) evidence() {}

// Code implements registry.Variant.
func (ev *DuplicateVoteEvidence) Code() byte {
	return DuplicateVoteEvidenceCode
}

// Height returns the height of the votes.
func (ev *DuplicateVoteEvidence) Height() uint64 {
	return ev.VoteA.Height
}

// Hash returns the keccak256 of the encoded evidence.
func (ev *DuplicateVoteEvidence) Hash() rei.Bytes32 {
	data, err := EncodeEvidence(ev)
	if err != nil {
		panic(err)
	}
	return rei.Keccak256(data)
}

// Validators returns the equivocating validator.
func (ev *DuplicateVoteEvidence) Validators() ([]rei.Address, error) {
	signer, err := ev.VoteA.Validator()
	if err != nil {
		return nil, err
	}
	return []rei.Address{signer}, nil
}

// ValidateBasic checks the votes conflict, come from one validator and are
// in canonical order.
func (ev *DuplicateVoteEvidence) ValidateBasic() error {
	a, b := ev.VoteA, ev.VoteB
	if a == nil || b == nil {
		return errors.Wrap(ErrInvalidEvidence, "missing vote")
	}
	if err := a.ValidateBasic(); err != nil {
		return errors.Wrap(err, "vote A")
	}
	if err := b.ValidateBasic(); err != nil {
		return errors.Wrap(err, "vote B")
	}
	if a.Height != b.Height || a.Round != b.Round || a.Type != b.Type || a.ChainID != b.ChainID {
		return errors.Wrapf(ErrInvalidEvidence, "votes differ in step: %v, %v", a, b)
	}
	if a.Index != b.Index {
		return errors.Wrapf(ErrInvalidEvidence, "validator index %d and %d", a.Index, b.Index)
	}
	if a.Hash == b.Hash {
		return errors.Wrap(ErrInvalidEvidence, "votes for the same hash")
	}
	switch c := bytes.Compare(a.Signature, b.Signature); {
	case c == 0:
		return errors.Wrap(ErrInvalidEvidence, "same signature")
	case c > 0:
		return errDuplicateVoteEvidenceOrdered
	}
	signerA, err := a.Validator()
	if err != nil {
		return errors.Wrap(err, "vote A")
	}
	signerB, err := b.Validator()
	if err != nil {
		return errors.Wrap(err, "vote B")
	}
	if signerA != signerB {
		return errors.Wrapf(ErrInvalidEvidence, "signers %v and %v", signerA, signerB)
	}
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (ev *DuplicateVoteEvidence) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []*Vote{ev.VoteA, ev.VoteB})
}

func decodeDuplicateVoteEvidence(body []byte) (Evidence, error) {
	var votes []*Vote
	if err := rlp.DecodeBytes(body, &votes); err != nil {
		return nil, err
	}
	if len(votes) != 2 {
		return nil, errors.Wrapf(ErrInvalidEvidence, "%d votes", len(votes))
	}
	return &DuplicateVoteEvidence{VoteA: votes[0], VoteB: votes[1]}, nil
}

func (ev *DuplicateVoteEvidence) String() string {
	return fmt.Sprintf("DuplicateVoteEvidence{%v, %v}", ev.VoteA, ev.VoteB)
}
