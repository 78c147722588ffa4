// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rei-network/reimint/cache"
)

func TestFIFOEvictsInInsertionOrder(t *testing.T) {
	c := cache.NewFIFO[int, string](3)
	c.Add(1, "a")
	c.Add(2, "b")
	c.Add(3, "c")

	// reading must not refresh
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	c.Add(4, "d")
	assert.False(t, c.Contains(1))
	assert.Equal(t, []int{2, 3, 4}, c.Keys())
	assert.Equal(t, []string{"b", "c", "d"}, c.Values())

	c.Remove(3)
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get(3)
	assert.False(t, ok)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestFIFOInvalidLimit(t *testing.T) {
	assert.Panics(t, func() { cache.NewFIFO[int, int](0) })
}

func TestLRUGetOrLoad(t *testing.T) {
	c := cache.NewLRU[int, int](2)

	loads := 0
	double := func(key int) (int, error) {
		loads++
		return key * 2, nil
	}

	v, err := c.GetOrLoad(1, double)
	assert.NoError(t, err)
	assert.Equal(t, 2, v)

	v, _ = c.GetOrLoad(1, double)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, loads)

	_, err = c.GetOrLoad(2, func(int) (int, error) { return 0, errors.New("boom") })
	assert.Error(t, err)
	assert.False(t, c.Contains(2))
}

func TestLRUEvictsLeastRecentlyRead(t *testing.T) {
	c := cache.NewLRU[string, int](2)
	c.Add("a", 1)
	c.Add("b", 2)

	// reading refreshes a, so b goes first
	_, ok := c.Get("a")
	assert.True(t, ok)
	c.Add("c", 3)

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.Equal(t, 2, c.Len())

	assert.Panics(t, func() { cache.NewLRU[int, int](0) })
}

func TestStats(t *testing.T) {
	var s cache.Stats
	snap, changed := s.Snapshot()
	assert.False(t, changed)
	assert.Zero(t, snap.Rate())

	s.Hit()
	s.Hit()
	s.Hit()
	s.Miss()

	snap, changed = s.Snapshot()
	assert.True(t, changed)
	assert.Equal(t, cache.Snapshot{Hit: 3, Miss: 1}, snap)
	assert.Equal(t, 0.75, snap.Rate())

	_, changed = s.Snapshot()
	assert.False(t, changed)
}
