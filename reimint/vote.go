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

// Vote is a signed Prevote or Precommit of one validator.
// Index is the claimed position of the signer in the active set.
type Vote struct {
	ChainID   uint64
	Type      VoteType
	Height    uint64
	Round     int32
	Hash      rei.Bytes32
	Timestamp uint64
	Index     int32
	Signature []byte
}

type voteRLP struct {
	ChainID   uint64
	Type      VoteType
	Height    uint64
	Round     uint32
	Hash      rei.Bytes32
	Timestamp uint64
	Index     uint32
	Signature []byte
}

// SigningHash returns the hash to be signed.
func (v *Vote) SigningHash() rei.Bytes32 {
	return rei.RLPHash([]any{
		v.ChainID,
		v.Type,
		v.Height,
		uint32(v.Round),
		v.Hash,
		v.Timestamp,
		uint32(v.Index),
	})
}

// Sign signs the vote with priv.
func (v *Vote) Sign(priv *ecdsa.PrivateKey) error {
	sig, err := sign(v.SigningHash(), priv)
	if err != nil {
		return err
	}
	v.Signature = sig
	return nil
}

// Validator recovers the signer.
func (v *Vote) Validator() (rei.Address, error) {
	return recoverSigner(v.SigningHash(), v.Signature)
}

// ValidateBasic checks fields without a validator set.
func (v *Vote) ValidateBasic() error {
	if !v.Type.IsVoteType() {
		return errors.Wrapf(ErrInvalidType, "%v", v.Type)
	}
	if v.Round < 0 {
		return errors.Wrapf(ErrInvalidRound, "%d", v.Round)
	}
	if v.Index < 0 {
		return errors.Wrapf(ErrInvalidIndex, "%d", v.Index)
	}
	if len(v.Signature) != SignatureLength {
		return errors.Wrapf(ErrInvalidSignatureLength, "%d", len(v.Signature))
	}
	return nil
}

// ValidateSignature checks the vote is signed by the validator at the
// claimed index of valSet.
func (v *Vote) ValidateSignature(valSet *validatorset.ActiveSet) error {
	expected, err := valSet.AddressAt(int(v.Index))
	if err != nil {
		return errors.Wrapf(ErrInvalidIndex, "%d", v.Index)
	}
	signer, err := v.Validator()
	if err != nil {
		return err
	}
	if signer != expected {
		return errors.Wrapf(ErrInvalidSignature, "signer %v, validator %v", signer, expected)
	}
	return nil
}

// Copy returns a deep copy.
func (v *Vote) Copy() *Vote {
	cpy := *v
	cpy.Signature = append([]byte(nil), v.Signature...)
	return &cpy
}

// EncodeRLP implements rlp.Encoder.
func (v *Vote) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &voteRLP{
		v.ChainID,
		v.Type,
		v.Height,
		uint32(v.Round),
		v.Hash,
		v.Timestamp,
		uint32(v.Index),
		v.Signature,
	})
}

// DecodeRLP implements rlp.Decoder.
func (v *Vote) DecodeRLP(s *rlp.Stream) error {
	var raw voteRLP
	if err := s.Decode(&raw); err != nil {
		return err
	}
	if raw.Round > MaxRound {
		return errors.Wrapf(ErrInvalidRound, "%d", raw.Round)
	}
	if raw.Index > MaxRound {
		return errors.Wrapf(ErrInvalidIndex, "%d", raw.Index)
	}
	*v = Vote{
		ChainID:   raw.ChainID,
		Type:      raw.Type,
		Height:    raw.Height,
		Round:     int32(raw.Round),
		Hash:      raw.Hash,
		Timestamp: raw.Timestamp,
		Index:     int32(raw.Index),
		Signature: raw.Signature,
	}
	return nil
}

func (v *Vote) String() string {
	return fmt.Sprintf("Vote{%d:%d/%d %v %v @%d #%d}",
		v.ChainID, v.Height, v.Round, v.Type, v.Hash.AbbrevString(), v.Timestamp, v.Index)
}
