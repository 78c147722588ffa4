// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reimint

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/rei-network/reimint/cache"
	"github.com/rei-network/reimint/rei"
)

// recovered signers keyed by hash and signature
var signerCache = cache.NewLRU[string, rei.Address](4096)

func sign(hash rei.Bytes32, priv *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(hash[:], priv)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return sig, nil
}

func recoverSigner(hash rei.Bytes32, sig []byte) (rei.Address, error) {
	if len(sig) != SignatureLength {
		return rei.Address{}, ErrInvalidSignatureLength
	}
	key := string(hash[:]) + string(sig)
	return signerCache.GetOrLoad(key, func(string) (rei.Address, error) {
		pub, err := crypto.SigToPub(hash[:], sig)
		if err != nil {
			return rei.Address{}, errors.Wrap(ErrInvalidSignature, err.Error())
		}
		return rei.Address(crypto.PubkeyToAddress(*pub)), nil
	})
}
