package allocator

import (
	"hash/fnv"
	"sync"

	"tablebook/internal/domain/booking"
)

const stripeCount = 64

type stripe struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// SlotAllocator is the authoritative in-memory occupancy set. Reservation
// attempts are atomic per slot key; distinct keys contend only when they
// hash to the same stripe, never on a global lock.
type SlotAllocator struct {
	stripes [stripeCount]stripe
}

func New() *SlotAllocator {
	a := &SlotAllocator{}
	for i := range a.stripes {
		a.stripes[i].held = make(map[string]struct{})
	}
	return a
}

func (a *SlotAllocator) stripeFor(key string) *stripe {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &a.stripes[h.Sum32()%stripeCount]
}

// TryReserve claims the slot. Exactly one of N concurrent callers for the
// same slot wins.
func (a *SlotAllocator) TryReserve(slot booking.Slot) bool {
	key := slot.Key()
	s := a.stripeFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.held[key]; taken {
		return false
	}
	s.held[key] = struct{}{}
	return true
}

// Release frees the slot. Releasing a free slot is a no-op.
func (a *SlotAllocator) Release(slot booking.Slot) {
	key := slot.Key()
	s := a.stripeFor(key)

	s.mu.Lock()
	delete(s.held, key)
	s.mu.Unlock()
}

func (a *SlotAllocator) IsAvailable(slot booking.Slot) bool {
	key := slot.Key()
	s := a.stripeFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, taken := s.held[key]
	return !taken
}

// Warm marks slots as held without the availability check. Used at startup
// to rebuild occupancy from active bookings in the store.
func (a *SlotAllocator) Warm(slots []booking.Slot) {
	for _, slot := range slots {
		key := slot.Key()
		s := a.stripeFor(key)
		s.mu.Lock()
		s.held[key] = struct{}{}
		s.mu.Unlock()
	}
}
