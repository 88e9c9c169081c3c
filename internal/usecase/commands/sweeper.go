package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
)

// PaymentSweeper cancels AWAITING_PAYMENT bookings whose gateway outcome
// never arrived. It reuses the ordinary payment-failure transition, so slot
// release and notification behave exactly as if the gateway had reported a
// failure.
type PaymentSweeper struct {
	tr       *Transitioner
	repo     BookingRepository
	timeout  time.Duration
	interval time.Duration
}

func NewPaymentSweeper(tr *Transitioner, repo BookingRepository, cfg config.BookingConfig) *PaymentSweeper {
	return &PaymentSweeper{
		tr:       tr,
		repo:     repo,
		timeout:  cfg.PaymentTimeout,
		interval: cfg.SweepInterval,
	}
}

// Enabled reports whether a payment timeout is configured at all.
func (s *PaymentSweeper) Enabled() bool {
	return s.timeout > 0
}

// Run blocks until ctx is done, sweeping every interval.
func (s *PaymentSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept := s.SweepOnce(ctx)
			if swept > 0 {
				slog.Info("swept stale payment bookings", "count", swept)
			}
		}
	}
}

// SweepOnce cancels every awaiting-payment booking older than the timeout
// and returns how many were cancelled. Bookings that transitioned
// concurrently are skipped.
func (s *PaymentSweeper) SweepOnce(ctx context.Context) int {
	stale, err := s.repo.ListByStatus(ctx, booking.StatusAwaitingPayment)
	if err != nil {
		slog.Warn("payment sweep listing failed", "error", err.Error())
		return 0
	}

	now := s.tr.clock.Now()
	swept := 0
	for _, b := range stale {
		if now.Sub(b.StatusChangedAt()) < s.timeout {
			continue
		}
		err := s.tr.apply(ctx, b.ID(), booking.EventPaymentFailure)
		if err != nil {
			var transitionErr *booking.InvalidTransitionError
			if errors.As(err, &transitionErr) || errs.Is(err, ErrBookingNotFound) || errs.Is(err, ErrInvalidTransition) {
				continue
			}
			slog.Warn("payment sweep transition failed", "booking_id", b.ID(), "error", err.Error())
			continue
		}
		swept++
	}
	return swept
}
