// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validatorset

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rei-network/reimint/rei"
)

func TestCacheMissWithoutStakeManager(t *testing.T) {
	c := NewCache(NewGenesis([]rei.Address{addr(1)}))
	root := rei.Keccak256([]byte("root"))

	_, err := c.Get(root, nil, nil)
	assert.ErrorIs(t, err, ErrNoStakeManager)
	assert.False(t, c.Has(root))
}

func TestCacheBuildAndHit(t *testing.T) {
	genesis := NewGenesis([]rei.Address{addr(1)})
	c := NewCache(genesis)
	root := rei.Keccak256([]byte("root"))

	sm := newMockStakeManager()
	sm.indexed = []rei.Address{addr(2)}
	sm.powers[addr(2)] = big.NewInt(10)

	sets, err := c.Get(root, sm, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sets.Indexed.Len())
	assert.True(t, sets.Active.IsGenesis(genesis))
	assert.True(t, c.Has(root))

	// served from cache, no stake manager needed
	again, err := c.Get(root, nil, nil)
	require.NoError(t, err)
	assert.Same(t, sets.Active, again.Active)
	assert.Same(t, sets.Indexed, again.Indexed)
}

func TestCacheBuildFailure(t *testing.T) {
	c := NewCache(NewGenesis([]rei.Address{addr(1)}))
	root := rei.Keccak256([]byte("root"))
	sm := newMockStakeManager()
	sm.fail = true

	_, err := c.Get(root, sm, nil)
	assert.ErrorIs(t, err, errMock)
	assert.False(t, c.Has(root))
}

func TestCacheConcurrentMiss(t *testing.T) {
	c := NewCache(NewGenesis([]rei.Address{addr(1)}))
	root := rei.Keccak256([]byte("root"))
	sm := newMockStakeManager()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Active(root, sm)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.True(t, c.active.Contains(root))
	assert.LessOrEqual(t, sm.calls.Load(), int32(8))
}

func TestCacheEviction(t *testing.T) {
	genesis := NewGenesis([]rei.Address{addr(1)})
	c := NewCache(genesis)
	active, err := GenesisActiveSet(genesis)
	require.NoError(t, err)

	var first rei.Bytes32
	for i := range CacheSize + 1 {
		root := rei.Keccak256(big.NewInt(int64(i)).Bytes())
		if i == 0 {
			first = root
		}
		c.Add(root, &Sets{Indexed: NewIndexedSet(), Active: active})
	}
	assert.False(t, c.Has(first))
	assert.Equal(t, CacheSize, c.active.Len())
}
