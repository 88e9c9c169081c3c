//go:build unit

package keylock_test

import (
	"sync"
	"testing"

	"tablebook/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
)

func TestLock(t *testing.T) {
	t.Run("serializes holders of the same key", func(t *testing.T) {
		locks := keylock.New()

		const goroutines = 32
		counter := 0
		var wg sync.WaitGroup
		wg.Add(goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				unlock := locks.Lock("booking-1")
				defer unlock()
				counter++
			}()
		}
		wg.Wait()

		assert.Equal(t, goroutines, counter)
	})

	t.Run("unlock allows the next holder in", func(t *testing.T) {
		locks := keylock.New()

		unlock := locks.Lock("booking-1")
		unlock()

		again := locks.Lock("booking-1")
		again()
	})

	t.Run("reentry after unlock with many keys", func(t *testing.T) {
		locks := keylock.New()

		// Far more keys than stripes, so stripe sharing is exercised.
		for i := 0; i < 256; i++ {
			unlock := locks.Lock(string(rune('a' + i%26)))
			unlock()
		}
	})
}
