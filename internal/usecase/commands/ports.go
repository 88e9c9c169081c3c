package commands

import (
	"context"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/notify"

	"github.com/google/uuid"
)

// BookingRepository is the write-side persistence contract. UpdateStatus is
// guarded: it only applies when the stored status still equals from, and
// reports KindConflict otherwise.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindBySlot(ctx context.Context, slot booking.Slot) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, at time.Time) error
	ListByStatus(ctx context.Context, status booking.Status) ([]*booking.Booking, error)
	ListActive(ctx context.Context) ([]*booking.Booking, error)
}

// SlotAllocator is the authoritative occupancy set. The repository's
// uniqueness index is a backstop; races are decided here.
type SlotAllocator interface {
	TryReserve(slot booking.Slot) bool
	Release(slot booking.Slot)
	IsAvailable(slot booking.Slot) bool
}

type EventPublisher interface {
	Publish(phone string, ev notify.Event)
}
