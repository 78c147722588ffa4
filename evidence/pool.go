// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package evidence keeps the evidence of validator misbehavior from receipt
// until it's committed in a block.
package evidence

import (
	"math"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"github.com/rei-network/reimint/cache"
	"github.com/rei-network/reimint/config"
	"github.com/rei-network/reimint/log"
	"github.com/rei-network/reimint/metrics"
	"github.com/rei-network/reimint/reimint"
	"github.com/rei-network/reimint/rei"
)

var (
	logger = log.WithContext("pkg", "evidence")

	metricEvidenceCount = metrics.LazyLoadCounterVec("evidence_count", []string{"action"})
	metricPendingCached = metrics.LazyLoadGauge("evidence_pending_cached")

	// ErrInvalidHeight is returned by Update when height does not increase.
	ErrInvalidHeight = errors.New("evidence pool height must increase")
	// ErrExpiredEvidence is returned by AddEvidence for evidence older than the age window.
	ErrExpiredEvidence = errors.New("evidence expired")
)

// Pool is a write-through cache of pending evidence over a Database.
type Pool struct {
	db              Database
	maxCacheSize    int
	maxAgeNumBlocks uint64

	lock          sync.Mutex
	cache         *cache.FIFO[rei.Bytes32, reimint.Evidence]
	height        uint64
	pruningHeight uint64
}

// NewPool creates an evidence pool.
func NewPool(db Database, cfg config.Evidence) *Pool {
	return &Pool{
		db:              db,
		maxCacheSize:    cfg.MaxCacheSize,
		maxAgeNumBlocks: cfg.MaxAgeNumBlocks,
		cache:           cache.NewFIFO[rei.Bytes32, reimint.Evidence](cfg.MaxCacheSize),
	}
}

// Init loads the most recent pending evidence up to height+1 into the cache.
// On failure the pool is left empty at height 0.
func (p *Pool) Init(height uint64) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.cache.Purge()
	evList, err := p.db.LoadPending(0, height+1, true, p.maxCacheSize)
	if err != nil {
		p.cache.Purge()
		p.height = 0
		p.pruningHeight = 0
		return errors.Wrap(err, "load pending evidence")
	}
	// oldest first, so the newest are evicted last
	for i := len(evList) - 1; i >= 0; i-- {
		p.cache.Add(evList[i].Hash(), evList[i])
	}
	p.height = height
	p.pruningHeight = 0
	metricPendingCached().Set(int64(p.cache.Len()))
	logger.Info("evidence pool initialized", "height", height, "cached", p.cache.Len())
	return nil
}

// Height returns the height of the last Update.
func (p *Pool) Height() uint64 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.height
}

// AddEvidence adds ev as pending. It returns false if ev is already known.
// Evidence below height-maxAgeNumBlocks of the last Update is rejected, it
// would sit under the pruning scan.
func (p *Pool) AddEvidence(ev reimint.Evidence) (bool, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.height > p.maxAgeNumBlocks && ev.Height() < p.height-p.maxAgeNumBlocks {
		return false, errors.Wrapf(ErrExpiredEvidence, "height %d at %d", ev.Height(), p.height)
	}

	hash := ev.Hash()
	if p.cache.Contains(hash) {
		return false, nil
	}
	if pending, err := p.db.IsPending(ev); err != nil {
		return false, err
	} else if pending {
		return false, nil
	}
	if committed, err := p.db.IsCommitted(ev); err != nil {
		return false, err
	} else if committed {
		return false, nil
	}

	if err := p.db.AddPending(ev); err != nil {
		return false, errors.Wrap(err, "add pending evidence")
	}
	p.cache.Add(hash, ev)
	metricEvidenceCount().AddWithLabel(1, map[string]string{"action": "added"})
	metricPendingCached().Set(int64(p.cache.Len()))
	logger.Debug("evidence added", "height", ev.Height(), "hash", hash)
	return true, nil
}

// IsPending reports whether ev is pending.
func (p *Pool) IsPending(ev reimint.Evidence) (bool, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.cache.Contains(ev.Hash()) {
		return true, nil
	}
	return p.db.IsPending(ev)
}

// IsCommitted reports whether ev was committed in a block.
func (p *Pool) IsCommitted(ev reimint.Evidence) (bool, error) {
	return p.db.IsCommitted(ev)
}

// CachedCount returns the number of cached pending evidence.
func (p *Pool) CachedCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.cache.Len()
}

func (p *Pool) window(height uint64) (from, to uint64, ok bool) {
	if height == 0 {
		return 0, 0, false
	}
	if height > p.maxAgeNumBlocks {
		from = height - p.maxAgeNumBlocks
	}
	return from, height - 1, true
}

// PickEvidence returns up to count pending evidence with height in
// [height-maxAgeNumBlocks, height-1], for inclusion in a block at height.
// Store failures are ignored, the cached evidence is returned instead.
func (p *Pool) PickEvidence(height uint64, count int) []reimint.Evidence {
	p.lock.Lock()
	defer p.lock.Unlock()

	from, to, ok := p.window(height)
	if !ok || count <= 0 {
		return nil
	}

	picked := make([]reimint.Evidence, 0, count)
	seen := make(map[rei.Bytes32]struct{})
	for _, ev := range p.cache.Values() {
		if len(picked) == count {
			return picked
		}
		if h := ev.Height(); h >= from && h <= to {
			picked = append(picked, ev)
			seen[ev.Hash()] = struct{}{}
		}
	}

	stored, err := p.db.LoadPending(from, to, false, count+len(seen))
	if err != nil {
		logger.Debug("failed to load pending evidence", "from", from, "to", to, "err", err)
		return picked
	}
	for _, ev := range stored {
		if len(picked) == count {
			break
		}
		if _, ok := seen[ev.Hash()]; !ok {
			picked = append(picked, ev)
		}
	}
	return picked
}

// Update commits the evidence included in the block at height and prunes
// expired pending evidence. Height must increase on every call.
func (p *Pool) Update(committed []reimint.Evidence, height uint64) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if height <= p.height {
		return errors.Wrapf(ErrInvalidHeight, "%d after %d", height, p.height)
	}

	batch := p.db.NewBatch()
	removed := make([]rei.Bytes32, 0, len(committed))
	var newlyCommitted int
	for _, ev := range committed {
		if slices.Contains(removed, ev.Hash()) {
			continue
		}
		done, err := p.db.IsCommitted(ev)
		if err != nil {
			return err
		}
		if !done {
			if err := batch.AddCommitted(ev); err != nil {
				return err
			}
			newlyCommitted++
		}
		if err := batch.RemovePending(ev); err != nil {
			return err
		}
		removed = append(removed, ev.Hash())
	}

	expired, pruningHeight, err := p.expired(height, removed)
	if err != nil {
		return err
	}
	for _, ev := range expired {
		if err := batch.RemovePending(ev); err != nil {
			return err
		}
		removed = append(removed, ev.Hash())
	}

	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write evidence batch")
	}

	for _, hash := range removed {
		p.cache.Remove(hash)
	}
	p.height = height
	p.pruningHeight = pruningHeight

	metricEvidenceCount().AddWithLabel(int64(newlyCommitted), map[string]string{"action": "committed"})
	metricEvidenceCount().AddWithLabel(int64(len(expired)), map[string]string{"action": "pruned"})
	metricPendingCached().Set(int64(p.cache.Len()))
	if newlyCommitted > 0 || len(expired) > 0 {
		logger.Debug("evidence pool updated", "height", height, "committed", newlyCommitted, "pruned", len(expired))
	}
	return nil
}

// expired returns the pending evidence too old to be included at height,
// except the newest one, which stays as the lower bound of the next scan.
func (p *Pool) expired(height uint64, skip []rei.Bytes32) ([]reimint.Evidence, uint64, error) {
	if height <= p.maxAgeNumBlocks {
		return nil, p.pruningHeight, nil
	}
	minHeight := height - p.maxAgeNumBlocks
	if p.pruningHeight >= minHeight {
		return nil, p.pruningHeight, nil
	}

	stored, err := p.db.LoadPending(p.pruningHeight, minHeight-1, false, math.MaxInt)
	if err != nil {
		return nil, 0, errors.Wrap(err, "load expired evidence")
	}
	list := stored[:0]
	for _, ev := range stored {
		if !slices.Contains(skip, ev.Hash()) {
			list = append(list, ev)
		}
	}
	if len(list) == 0 {
		return nil, p.pruningHeight, nil
	}
	marker := list[len(list)-1]
	return list[:len(list)-1], marker.Height(), nil
}

// Slasher punishes misbehaving validators.
type Slasher interface {
	Slash(validator rei.Address, reason uint8) error
}

// SlashReasonDuplicateVote is the slash reason of DuplicateVoteEvidence.
const SlashReasonDuplicateVote uint8 = 0

// SlashValidators slashes every distinct validator proven guilty by evList.
// Evidence is expected to be committed in the same block.
func SlashValidators(slasher Slasher, evList []reimint.Evidence) error {
	slashed := make(map[rei.Address]struct{})
	for _, ev := range evList {
		if _, ok := ev.(*reimint.DuplicateVoteEvidence); !ok {
			return errors.Errorf("unknown evidence %T", ev)
		}
		vals, err := ev.Validators()
		if err != nil {
			return err
		}
		for _, v := range vals {
			if _, ok := slashed[v]; ok {
				continue
			}
			if err := slasher.Slash(v, SlashReasonDuplicateVote); err != nil {
				return errors.Wrapf(err, "slash %v", v)
			}
			slashed[v] = struct{}{}
		}
	}
	return nil
}
