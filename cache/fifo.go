// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// FIFO is a bounded cache which evicts entries in insertion order.
// Reads never refresh an entry, only Add does.
type FIFO[K comparable, V any] struct {
	c *lru.Cache
}

// NewFIFO creates a FIFO cache holding at most limit entries.
func NewFIFO[K comparable, V any](limit int) *FIFO[K, V] {
	c, err := lru.New(limit)
	if err != nil {
		panic("invalid limit for FIFO cache")
	}
	return &FIFO[K, V]{c}
}

// Get returns the value of key without touching its position.
func (f *FIFO[K, V]) Get(key K) (v V, ok bool) {
	val, ok := f.c.Peek(key)
	if !ok {
		return v, false
	}
	return val.(V), true
}

// Contains reports whether key is cached.
func (f *FIFO[K, V]) Contains(key K) bool {
	return f.c.Contains(key)
}

// Add inserts or refreshes the entry as the newest one, evicting the oldest
// entry when full.
func (f *FIFO[K, V]) Add(key K, value V) {
	f.c.Add(key, value)
}

// Remove drops the entry of key.
func (f *FIFO[K, V]) Remove(key K) {
	f.c.Remove(key)
}

// Len returns the number of cached entries.
func (f *FIFO[K, V]) Len() int {
	return f.c.Len()
}

// Purge clears the cache.
func (f *FIFO[K, V]) Purge() {
	f.c.Purge()
}

// Keys returns keys from the oldest to the newest.
func (f *FIFO[K, V]) Keys() []K {
	raw := f.c.Keys()
	keys := make([]K, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, k.(K))
	}
	return keys
}

// Values returns values from the oldest to the newest.
func (f *FIFO[K, V]) Values() []V {
	raw := f.c.Keys()
	values := make([]V, 0, len(raw))
	for _, k := range raw {
		if v, ok := f.c.Peek(k); ok {
			values = append(values, v.(V))
		}
	}
	return values
}
