package client

import (
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// MaxChannelID is the highest channel number representable on the wire
const MaxChannelID = 65535

// ChannelAllocator hands out channel ids for one connection. Ids are
// assigned round-robin from 1 to max so a freshly released id is not
// reused while late frames for it may still be in flight.
type ChannelAllocator struct {
	mu   sync.Mutex
	max  uint32
	next uint32
	used *roaring.Bitmap
}

// NewChannelAllocator creates an allocator for ids 1..max. A max of zero
// means the protocol limit.
func NewChannelAllocator(max uint16) *ChannelAllocator {
	limit := uint32(max)
	if limit == 0 {
		limit = MaxChannelID
	}
	return &ChannelAllocator{
		max:  limit,
		next: 1,
		used: roaring.New(),
	}
}

// Allocate returns a free channel id, or false when every id is taken
func (a *ChannelAllocator) Allocate() (uint16, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.used.GetCardinality() >= uint64(a.max) {
		return 0, false
	}

	for i := uint32(0); i < a.max; i++ {
		id := a.next
		a.next++
		if a.next > a.max {
			a.next = 1
		}
		if a.used.CheckedAdd(id) {
			return uint16(id), true
		}
	}
	return 0, false
}

// Release returns an id to the pool. It reports false for ids that were
// not allocated.
func (a *ChannelAllocator) Release(id uint16) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used.CheckedRemove(uint32(id))
}

// InUse returns the number of allocated ids
func (a *ChannelAllocator) InUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return int(a.used.GetCardinality())
}

// Max returns the highest id the allocator hands out
func (a *ChannelAllocator) Max() uint16 {
	return uint16(a.max)
}
