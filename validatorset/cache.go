// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rei-network/reimint/cache"
	"github.com/rei-network/reimint/log"
	"github.com/rei-network/reimint/metrics"
	"github.com/rei-network/reimint/rei"
)

// CacheSize is the number of state roots kept by a Cache.
const CacheSize = 100

var (
	logger = log.WithContext("pkg", "validatorset")

	metricCacheLookup = metrics.LazyLoadCounterVec("validatorset_cache_lookup_count", []string{"kind", "result"})
	metricBuildTime   = metrics.LazyLoadHistogram("validatorset_build_duration_ms", metrics.Bucket1s)
)

// Cache keeps the validator sets of recent state roots.
type Cache struct {
	genesis *Genesis
	indexed *cache.FIFO[rei.Bytes32, *IndexedSet]
	active  *cache.FIFO[rei.Bytes32, *ActiveSet]
	lock    sync.Mutex
	group   singleflight.Group
	stats   cache.Stats
}

// NewCache creates a validator sets cache.
func NewCache(genesis *Genesis) *Cache {
	return &Cache{
		genesis: genesis,
		indexed: cache.NewFIFO[rei.Bytes32, *IndexedSet](CacheSize),
		active:  cache.NewFIFO[rei.Bytes32, *ActiveSet](CacheSize),
	}
}

// Add publishes sets derived for root. The sets must not be modified afterwards.
func (c *Cache) Add(root rei.Bytes32, sets *Sets) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.indexed.Add(root, sets.Indexed)
	c.active.Add(root, sets.Active)
}

// Has reports whether both sets of root are cached.
func (c *Cache) Has(root rei.Bytes32) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.indexed.Contains(root) && c.active.Contains(root)
}

// Indexed returns the indexed set of root, built through sm on miss.
func (c *Cache) Indexed(root rei.Bytes32, sm StakeManager, bls BlsView) (*IndexedSet, error) {
	c.lock.Lock()
	set, ok := c.indexed.Get(root)
	c.lock.Unlock()
	if ok {
		c.hit("indexed")
		return set, nil
	}
	c.miss("indexed")
	if sm == nil {
		return nil, ErrNoStakeManager
	}

	v, err, _ := c.group.Do("indexed"+root.String(), func() (any, error) {
		start := time.Now()
		set, err := IndexedFromStakeManager(sm, bls, c.genesis)
		if err != nil {
			return nil, err
		}
		metricBuildTime().Observe(time.Since(start).Milliseconds())

		c.lock.Lock()
		c.indexed.Add(root, set)
		c.lock.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*IndexedSet), nil
}

// Active returns the active set of root, built through sm on miss.
func (c *Cache) Active(root rei.Bytes32, sm StakeManager) (*ActiveSet, error) {
	c.lock.Lock()
	set, ok := c.active.Get(root)
	c.lock.Unlock()
	if ok {
		c.hit("active")
		return set, nil
	}
	c.miss("active")
	if sm == nil {
		return nil, ErrNoStakeManager
	}

	v, err, _ := c.group.Do("active"+root.String(), func() (any, error) {
		start := time.Now()
		set, err := ActiveFromStakeManager(sm, c.genesis)
		if err != nil {
			return nil, err
		}
		metricBuildTime().Observe(time.Since(start).Milliseconds())

		c.lock.Lock()
		c.active.Add(root, set)
		c.lock.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ActiveSet), nil
}

// Get returns both sets of root.
func (c *Cache) Get(root rei.Bytes32, sm StakeManager, bls BlsView) (*Sets, error) {
	indexed, err := c.Indexed(root, sm, bls)
	if err != nil {
		return nil, err
	}
	active, err := c.Active(root, sm)
	if err != nil {
		return nil, err
	}
	return &Sets{Indexed: indexed, Active: active}, nil
}

func (c *Cache) hit(kind string) {
	c.stats.Hit()
	metricCacheLookup().AddWithLabel(1, map[string]string{"kind": kind, "result": "hit"})
}

func (c *Cache) miss(kind string) {
	c.stats.Miss()
	metricCacheLookup().AddWithLabel(1, map[string]string{"kind": kind, "result": "miss"})
	if s, changed := c.stats.Snapshot(); changed {
		logger.Debug("validator sets cache stats", "hit", s.Hit, "miss", s.Miss, "rate", s.Rate())
	}
}
