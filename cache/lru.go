// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a bounded cache evicting the least recently read entry.
type LRU[K comparable, V any] struct {
	c *lru.Cache
}

// NewLRU creates an LRU cache holding at most limit entries.
func NewLRU[K comparable, V any](limit int) *LRU[K, V] {
	c, err := lru.New(limit)
	if err != nil {
		panic("invalid limit for LRU cache")
	}
	return &LRU[K, V]{c}
}

// Get returns the value of key and marks it recently used.
func (l *LRU[K, V]) Get(key K) (v V, ok bool) {
	val, ok := l.c.Get(key)
	if !ok {
		return v, false
	}
	return val.(V), true
}

// Add inserts or replaces the entry of key.
func (l *LRU[K, V]) Add(key K, value V) {
	l.c.Add(key, value)
}

// Contains reports whether key is cached, without touching its recency.
func (l *LRU[K, V]) Contains(key K) bool {
	return l.c.Contains(key)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.c.Len()
}

// GetOrLoad returns the cached value of key, calling load on a miss.
// Failed loads are not cached.
func (l *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := load(key)
	if err != nil {
		return v, err
	}
	l.c.Add(key, v)
	return v, nil
}
