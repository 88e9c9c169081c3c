package commands

import (
	"context"

	"tablebook/internal/domain/booking"

	"github.com/google/uuid"
)

// ModerationCommands are the admin decisions over the booking queue.
// Confirm and Reject act on PENDING bookings; Cancel withdraws a CONFIRMED
// one. None of them touch slot occupancy except through cancellation.
type ModerationCommands interface {
	Confirm(ctx context.Context, id uuid.UUID) error
	Reject(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

type moderationCommandsImpl struct {
	tr *Transitioner
}

func NewModerationCommands(tr *Transitioner) ModerationCommands {
	return &moderationCommandsImpl{tr: tr}
}

func (m *moderationCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) error {
	return m.tr.apply(ctx, id, booking.EventAdminConfirm)
}

func (m *moderationCommandsImpl) Reject(ctx context.Context, id uuid.UUID) error {
	return m.tr.apply(ctx, id, booking.EventAdminReject)
}

func (m *moderationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	return m.tr.apply(ctx, id, booking.EventAdminCancel)
}
