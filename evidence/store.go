// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package evidence

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/rei-network/reimint/kv"
	"github.com/rei-network/reimint/reimint"
	"github.com/rei-network/reimint/rei"
)

const (
	pendingBucket   = kv.Bucket("\x01")
	committedBucket = kv.Bucket("\x02")
)

// Database is the durable evidence storage used by the pool.
type Database interface {
	IsPending(ev reimint.Evidence) (bool, error)
	IsCommitted(ev reimint.Evidence) (bool, error)
	AddPending(ev reimint.Evidence) error
	// LoadPending returns at most limit pending evidence with height in
	// [from, to], in ascending height order or descending if reverse.
	LoadPending(from, to uint64, reverse bool, limit int) ([]reimint.Evidence, error)
	NewBatch() Batch
}

// Batch collects store updates and applies them atomically on Write.
type Batch interface {
	AddCommitted(ev reimint.Evidence) error
	RemovePending(ev reimint.Evidence) error
	Len() int
	Write() error
}

// Store persists evidence in a kv store. Keys are namespace byte, big
// endian height and evidence hash.
type Store struct {
	db        kv.Store
	pending   kv.Store
	committed kv.Store
}

// NewStore creates a store on db.
func NewStore(db kv.Store) *Store {
	return &Store{
		db:        db,
		pending:   pendingBucket.NewStore(db),
		committed: committedBucket.NewStore(db),
	}
}

func evidenceKey(height uint64, hash rei.Bytes32) []byte {
	k := make([]byte, 8+32)
	binary.BigEndian.PutUint64(k, height)
	copy(k[8:], hash[:])
	return k
}

func keyOf(ev reimint.Evidence) []byte {
	return evidenceKey(ev.Height(), ev.Hash())
}

// IsPending reports whether ev is stored as pending.
func (s *Store) IsPending(ev reimint.Evidence) (bool, error) {
	return s.pending.Has(keyOf(ev))
}

// IsCommitted reports whether ev is stored as committed.
func (s *Store) IsCommitted(ev reimint.Evidence) (bool, error) {
	return s.committed.Has(keyOf(ev))
}

// AddPending stores ev as pending.
func (s *Store) AddPending(ev reimint.Evidence) error {
	data, err := reimint.EncodeEvidence(ev)
	if err != nil {
		return err
	}
	return s.pending.Put(keyOf(ev), data)
}

// LoadPending loads pending evidence by height range.
func (s *Store) LoadPending(from, to uint64, reverse bool, limit int) ([]reimint.Evidence, error) {
	return load(s.pending, from, to, reverse, limit)
}

// LoadCommitted loads committed evidence by height range.
func (s *Store) LoadCommitted(from, to uint64, reverse bool, limit int) ([]reimint.Evidence, error) {
	return load(s.committed, from, to, reverse, limit)
}

func load(store kv.Store, from, to uint64, reverse bool, limit int) ([]reimint.Evidence, error) {
	if from > to || limit <= 0 {
		return nil, nil
	}
	var start [8]byte
	binary.BigEndian.PutUint64(start[:], from)
	r := kv.Range{Start: start[:]}
	if to < math.MaxUint64 {
		var end [8]byte
		binary.BigEndian.PutUint64(end[:], to+1)
		r.Limit = end[:]
	}

	it := store.Iterate(r)
	defer it.Release()

	first, next := it.First, it.Next
	if reverse {
		first, next = it.Last, it.Prev
	}
	var list []reimint.Evidence
	for ok := first(); ok && len(list) < limit; ok = next() {
		ev, err := reimint.DecodeEvidence(it.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "decode evidence %x", it.Key())
		}
		list = append(list, ev)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return list, nil
}

// NewBatch creates a batch writing both namespaces.
func (s *Store) NewBatch() Batch {
	bulk := s.db.Bulk()
	return &batch{
		bulk:      bulk,
		pending:   pendingBucket.NewPutter(bulk),
		committed: committedBucket.NewPutter(bulk),
	}
}

type batch struct {
	bulk      kv.Bulk
	pending   kv.Putter
	committed kv.Putter
}

func (b *batch) AddCommitted(ev reimint.Evidence) error {
	data, err := reimint.EncodeEvidence(ev)
	if err != nil {
		return err
	}
	return b.committed.Put(keyOf(ev), data)
}

func (b *batch) RemovePending(ev reimint.Evidence) error {
	return b.pending.Delete(keyOf(ev))
}

func (b *batch) Len() int {
	return b.bulk.Len()
}

func (b *batch) Write() error {
	return b.bulk.Write()
}
