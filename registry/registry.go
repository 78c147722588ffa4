// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry maps one-byte type codes to decoders of a closed family
// of wire types. The wire form of a value is the RLP list [code, body].
package registry

import (
	"fmt"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Variant is a member of a registered family.
type Variant interface {
	Code() byte
	rlp.Encoder
}

// DecodeFunc decodes the RLP body of one variant.
type DecodeFunc[T Variant] func(body []byte) (T, error)

// UnknownCodeError is returned when decoding an unregistered code.
type UnknownCodeError struct {
	Family string
	Code   byte
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("%s: unknown code %d", e.Family, e.Code)
}

type envelope struct {
	Code byte
	Body rlp.RawValue
}

// Registry is a static code to decoder table. It must be fully populated
// before use and is read-only afterwards.
type Registry[T Variant] struct {
	family   string
	decoders map[byte]DecodeFunc[T]
}

// New creates an empty registry for the named family.
func New[T Variant](family string) *Registry[T] {
	return &Registry[T]{
		family:   family,
		decoders: make(map[byte]DecodeFunc[T]),
	}
}

// Register binds code to decode. Registering a code twice panics.
func (r *Registry[T]) Register(code byte, decode DecodeFunc[T]) *Registry[T] {
	if _, ok := r.decoders[code]; ok {
		panic(fmt.Sprintf("%s: code %d registered twice", r.family, code))
	}
	r.decoders[code] = decode
	return r
}

// Codes returns registered codes in ascending order.
func (r *Registry[T]) Codes() []byte {
	codes := make([]byte, 0, len(r.decoders))
	for c := range r.decoders {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Has reports whether code is registered.
func (r *Registry[T]) Has(code byte) bool {
	_, ok := r.decoders[code]
	return ok
}

// Encode writes v as [code, body].
func (r *Registry[T]) Encode(w io.Writer, v T) error {
	if !r.Has(v.Code()) {
		return &UnknownCodeError{r.family, v.Code()}
	}
	body, err := rlp.EncodeToBytes(v)
	if err != nil {
		return errors.Wrapf(err, "%s: encode code %d", r.family, v.Code())
	}
	return rlp.Encode(w, &envelope{v.Code(), body})
}

// EncodeToBytes returns the [code, body] encoding of v.
func (r *Registry[T]) EncodeToBytes(v T) ([]byte, error) {
	body, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: encode code %d", r.family, v.Code())
	}
	if !r.Has(v.Code()) {
		return nil, &UnknownCodeError{r.family, v.Code()}
	}
	return rlp.EncodeToBytes(&envelope{v.Code(), body})
}

// DecodeBytes decodes a [code, body] encoding.
func (r *Registry[T]) DecodeBytes(data []byte) (T, error) {
	var env envelope
	if err := rlp.DecodeBytes(data, &env); err != nil {
		var zero T
		return zero, errors.Wrapf(err, "%s: decode envelope", r.family)
	}
	return r.DecodeBody(env.Code, env.Body)
}

// DecodeBody decodes body as the variant registered for code.
func (r *Registry[T]) DecodeBody(code byte, body []byte) (T, error) {
	decode, ok := r.decoders[code]
	if !ok {
		var zero T
		return zero, &UnknownCodeError{r.family, code}
	}
	v, err := decode(body)
	if err != nil {
		var zero T
		return zero, errors.Wrapf(err, "%s: decode code %d", r.family, code)
	}
	return v, nil
}
