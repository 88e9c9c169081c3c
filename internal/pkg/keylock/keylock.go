package keylock

import (
	"hash/fnv"
	"sync"
)

const stripeCount = 64

// KeyedMutex serializes work per string key using a fixed set of lock
// stripes. Two distinct keys may share a stripe, which is acceptable
// contention; two equal keys always do.
type KeyedMutex struct {
	stripes [stripeCount]sync.Mutex
}

func New() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the stripe for key and returns the unlock func.
func (m *KeyedMutex) Lock(key string) func() {
	s := &m.stripes[stripeFor(key)]
	s.Lock()
	return s.Unlock
}

func stripeFor(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32() % stripeCount
}
