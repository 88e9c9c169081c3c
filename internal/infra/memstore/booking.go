package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/infra"

	"github.com/google/uuid"
)

// BookingStore is the in-memory booking store. It honors the same contract
// as the PostgreSQL store, including the active-slot uniqueness check and
// the guarded status update, so the command layer behaves identically on
// either backend.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*booking.Booking
}

func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[uuid.UUID]*booking.Booking),
	}
}

func (s *BookingStore) Create(_ context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := b.Slot().Key()
	for _, existing := range s.bookings {
		if existing.IsActive() && existing.Slot().Key() == key {
			return infra.WrapRepoErr("slot already booked", nil, infra.KindDuplicateKey)
		}
	}

	s.bookings[b.ID()] = clone(b)
	return nil
}

func (s *BookingStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return clone(b), nil
}

func (s *BookingStore) FindBySlot(_ context.Context, slot booking.Slot) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := slot.Key()
	for _, b := range s.bookings {
		if b.IsActive() && b.Slot().Key() == key {
			return clone(b), nil
		}
	}
	return nil, infra.WrapRepoErr("no active booking for slot", nil, infra.KindNotFound)
}

func (s *BookingStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to booking.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if b.Status() != from {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}

	s.bookings[id] = booking.ReconstructBooking(
		b.ID(), b.CustomerName(), b.CustomerPhone(), b.CustomerEmail(), b.Guests(),
		b.Slot(), b.SpecialRequests(), to, b.CreatedAt(), at,
	)
	return nil
}

func (s *BookingStore) ListByStatus(_ context.Context, status booking.Status) ([]*booking.Booking, error) {
	return s.list(func(b *booking.Booking) bool { return b.Status() == status }), nil
}

func (s *BookingStore) List(_ context.Context) ([]*booking.Booking, error) {
	return s.list(func(*booking.Booking) bool { return true }), nil
}

func (s *BookingStore) ListActive(_ context.Context) ([]*booking.Booking, error) {
	return s.list(func(b *booking.Booking) bool { return b.IsActive() }), nil
}

func (s *BookingStore) list(match func(*booking.Booking) bool) []*booking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*booking.Booking
	for _, b := range s.bookings {
		if match(b) {
			result = append(result, clone(b))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt().Equal(result[j].CreatedAt()) {
			return result[i].CreatedAt().Before(result[j].CreatedAt())
		}
		return result[i].ID().String() < result[j].ID().String()
	})
	return result
}

// clone keeps stored state isolated from callers mutating returned
// entities.
func clone(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.CustomerName(), b.CustomerPhone(), b.CustomerEmail(), b.Guests(),
		b.Slot(), b.SpecialRequests(), b.Status(), b.CreatedAt(), b.StatusChangedAt(),
	)
}
