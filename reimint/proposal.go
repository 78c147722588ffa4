// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"crypto/ecdsa"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/rei"
	"github.com/rei-network/reimint/validatorset"
)

// Proposal is the signed proposal of a block at one height and round.
// POLRound is -1 when the proposal carries no proof of lock.
type Proposal struct {
	Height    uint64
	Round     int32
	POLRound  int32
	Hash      rei.Bytes32
	Signature []byte
}

type proposalRLP struct {
	Height    uint64
	Round     uint32
	POLRound  uint32 // POLRound + 1
	Hash      rei.Bytes32
	Signature []byte
}

// SigningHash returns the hash to be signed.
func (p *Proposal) SigningHash() rei.Bytes32 {
	return rei.RLPHash([]any{
		ProposalType,
		p.Height,
		uint32(p.Round),
		uint32(p.POLRound + 1),
		p.Hash,
	})
}

// Sign signs the proposal with priv.
func (p *Proposal) Sign(priv *ecdsa.PrivateKey) error {
	sig, err := sign(p.SigningHash(), priv)
	if err != nil {
		return err
	}
	p.Signature = sig
	return nil
}

// Proposer recovers the signer.
func (p *Proposal) Proposer() (rei.Address, error) {
	return recoverSigner(p.SigningHash(), p.Signature)
}

// ValidateBasic checks fields without a validator set.
func (p *Proposal) ValidateBasic() error {
	if p.Round < 0 {
		return errors.Wrapf(ErrInvalidRound, "%d", p.Round)
	}
	if p.POLRound < -1 || p.POLRound >= p.Round {
		return errors.Wrapf(ErrInvalidPOLRound, "%d at round %d", p.POLRound, p.Round)
	}
	if len(p.Signature) != SignatureLength {
		return errors.Wrapf(ErrInvalidSignatureLength, "%d", len(p.Signature))
	}
	return nil
}

// ValidateSignature checks the proposal is signed by the proposer of valSet.
func (p *Proposal) ValidateSignature(valSet *validatorset.ActiveSet) error {
	signer, err := p.Proposer()
	if err != nil {
		return err
	}
	if signer != valSet.Proposer() {
		return errors.Wrapf(ErrUnexpectedProposer, "signer %v, proposer %v", signer, valSet.Proposer())
	}
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (p *Proposal) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &proposalRLP{
		p.Height,
		uint32(p.Round),
		uint32(p.POLRound + 1),
		p.Hash,
		p.Signature,
	})
}

// DecodeRLP implements rlp.Decoder.
func (p *Proposal) DecodeRLP(s *rlp.Stream) error {
	var raw proposalRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	if raw.Round > MaxRound {
		return errors.Wrapf(ErrInvalidRound, "%d", raw.Round)
	}
	if raw.POLRound > MaxRound {
		return errors.Wrapf(ErrInvalidPOLRound, "%d", raw.POLRound)
	}
	*p = Proposal{
		Height:    raw.Height,
		Round:     int32(raw.Round),
		POLRound:  int32(raw.POLRound) - 1,
		Hash:      raw.Hash,
		Signature: raw.Signature,
	}
	return nil
}

func (p *Proposal) String() string {
	return fmt.Sprintf("Proposal{%d/%d (POL %d) %v}", p.Height, p.Round, p.POLRound, p.Hash.AbbrevString())
}
