//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSweeper(env *commandsEnv, timeout time.Duration) *commands.PaymentSweeper {
	return commands.NewPaymentSweeper(env.tr, env.store, config.BookingConfig{
		PaymentTimeout: timeout,
		SweepInterval:  time.Minute,
	})
}

func TestEnabled(t *testing.T) {
	env := newCommandsEnv(t)

	assert.True(t, newSweeper(env, 30*time.Minute).Enabled())
	assert.False(t, newSweeper(env, 0).Enabled())
}

func TestSweepOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels awaiting payment bookings past the timeout", func(t *testing.T) {
		env := newCommandsEnv(t)
		sweeper := newSweeper(env, 30*time.Minute)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)

		env.clk.Add(31 * time.Minute)
		assert.Equal(t, 1, sweeper.SweepOnce(ctx))

		stored, err := env.store.FindByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, stored.Status())
		assert.True(t, env.slots.IsAvailable(stored.Slot()))
	})

	t.Run("leaves fresh bookings alone", func(t *testing.T) {
		env := newCommandsEnv(t)
		sweeper := newSweeper(env, 30*time.Minute)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)

		env.clk.Add(29 * time.Minute)
		assert.Equal(t, 0, sweeper.SweepOnce(ctx))

		stored, err := env.store.FindByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAwaitingPayment, stored.Status())
	})

	t.Run("age at exactly the timeout is swept", func(t *testing.T) {
		env := newCommandsEnv(t)
		sweeper := newSweeper(env, 30*time.Minute)

		_, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)

		env.clk.Add(30 * time.Minute)
		assert.Equal(t, 1, sweeper.SweepOnce(ctx))
	})

	t.Run("ignores pending and confirmed bookings", func(t *testing.T) {
		env := newCommandsEnv(t)
		sweeper := newSweeper(env, 30*time.Minute)

		pending, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)
		confirmed, err := env.cmds.Create(ctx, builder.NewBookingBuilder().WithTime("20:00").BuildInput())
		require.NoError(t, err)
		require.NoError(t, env.moderation.Confirm(ctx, confirmed.ID))

		env.clk.Add(2 * time.Hour)
		assert.Equal(t, 0, sweeper.SweepOnce(ctx))

		stillPending, err := env.store.FindByID(ctx, pending.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, stillPending.Status())
	})

	t.Run("sweeping twice cancels only once", func(t *testing.T) {
		env := newCommandsEnv(t)
		sweeper := newSweeper(env, 30*time.Minute)

		_, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)

		env.clk.Add(time.Hour)
		assert.Equal(t, 1, sweeper.SweepOnce(ctx))
		assert.Equal(t, 0, sweeper.SweepOnce(ctx))
	})

	t.Run("payment clock restarts from the status change", func(t *testing.T) {
		env := newCommandsEnv(t)
		sweeper := newSweeper(env, 30*time.Minute)

		// Created at T, still fresh at T+20.
		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)

		env.clk.Add(20 * time.Minute)
		require.Equal(t, 0, sweeper.SweepOnce(ctx))

		// A successful payment at T+20 must keep it safe forever.
		require.NoError(t, env.cmds.RecordPaymentOutcome(ctx, view.ID, true))
		env.clk.Add(24 * time.Hour)
		assert.Equal(t, 0, sweeper.SweepOnce(ctx))
	})
}

func TestRun(t *testing.T) {
	t.Run("stops when the context is cancelled", func(t *testing.T) {
		env := newCommandsEnv(t)
		sweeper := commands.NewPaymentSweeper(env.tr, env.store, config.BookingConfig{
			PaymentTimeout: 30 * time.Minute,
			SweepInterval:  time.Millisecond,
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			sweeper.Run(ctx)
			close(done)
		}()

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop after cancel")
		}
	})
}
