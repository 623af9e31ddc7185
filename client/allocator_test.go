package client

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelAllocatorRoundRobin(t *testing.T) {
	a := NewChannelAllocator(3)
	assert.Equal(t, uint16(3), a.Max())

	for want := uint16(1); want <= 3; want++ {
		id, ok := a.Allocate()
		require.True(t, ok)
		assert.Equal(t, want, id)
	}

	_, ok := a.Allocate()
	assert.False(t, ok, "all ids are taken")

	assert.True(t, a.Release(2))
	assert.False(t, a.Release(2), "double release")
	assert.False(t, a.Release(9), "never allocated")

	id, ok := a.Allocate()
	require.True(t, ok)
	assert.Equal(t, uint16(2), id)
	assert.Equal(t, 3, a.InUse())
}

func TestChannelAllocatorDoesNotReuseImmediately(t *testing.T) {
	a := NewChannelAllocator(10)

	first, _ := a.Allocate()
	require.True(t, a.Release(first))

	second, ok := a.Allocate()
	require.True(t, ok)
	assert.NotEqual(t, first, second)
}

func TestChannelAllocatorZeroMeansProtocolLimit(t *testing.T) {
	a := NewChannelAllocator(0)
	assert.Equal(t, uint16(MaxChannelID), a.Max())

	id, ok := a.Allocate()
	require.True(t, ok)
	assert.Equal(t, uint16(1), id)
}

func TestChannelAllocatorNeverHandsOutZero(t *testing.T) {
	a := NewChannelAllocator(2)
	for i := 0; i < 10; i++ {
		id, ok := a.Allocate()
		require.True(t, ok)
		assert.NotZero(t, id)
		a.Release(id)
	}
}

func TestChannelAllocatorConcurrent(t *testing.T) {
	a := NewChannelAllocator(500)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[uint16]bool)
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id, ok := a.Allocate()
				if !ok {
					t.Error("allocator exhausted early")
					return
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("id %d handed out twice", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 500)
	assert.Equal(t, 500, a.InUse())
}
