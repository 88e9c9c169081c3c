//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"tablebook/internal/domain/booking"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPending(t *testing.T, env *commandsEnv) *booking.Booking {
	t.Helper()

	view, err := env.cmds.Create(context.Background(), builder.NewBookingBuilder().BuildInput())
	require.NoError(t, err)
	stored, err := env.store.FindByID(context.Background(), view.ID)
	require.NoError(t, err)
	require.Equal(t, booking.StatusPending, stored.Status())
	return stored
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("pending becomes confirmed and keeps the slot", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createPending(t, env)

		require.NoError(t, env.moderation.Confirm(ctx, b.ID()))

		stored, err := env.store.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, stored.Status())
		assert.False(t, env.slots.IsAvailable(b.Slot()))

		_, ev, ok := env.pub.last()
		require.True(t, ok)
		assert.Equal(t, booking.StatusConfirmed, ev.Status)
	})

	t.Run("confirming twice is rejected", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createPending(t, env)

		require.NoError(t, env.moderation.Confirm(ctx, b.ID()))

		err := env.moderation.Confirm(ctx, b.ID())
		var transitionErr *booking.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, booking.StatusConfirmed, transitionErr.From)
	})

	t.Run("awaiting payment cannot be confirmed by admin", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)

		err = env.moderation.Confirm(ctx, view.ID)
		var transitionErr *booking.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, booking.StatusAwaitingPayment, transitionErr.From)
	})

	t.Run("unknown booking", func(t *testing.T) {
		env := newCommandsEnv(t)
		err := env.moderation.Confirm(ctx, uuid.New())
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("pending becomes cancelled and frees the slot", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createPending(t, env)

		require.NoError(t, env.moderation.Reject(ctx, b.ID()))

		stored, err := env.store.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, stored.Status())
		assert.True(t, env.slots.IsAvailable(b.Slot()))
	})

	t.Run("confirmed booking cannot be rejected", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createPending(t, env)
		require.NoError(t, env.moderation.Confirm(ctx, b.ID()))

		err := env.moderation.Reject(ctx, b.ID())
		var transitionErr *booking.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed becomes cancelled and frees the slot", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createPending(t, env)
		require.NoError(t, env.moderation.Confirm(ctx, b.ID()))

		require.NoError(t, env.moderation.Cancel(ctx, b.ID()))

		stored, err := env.store.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, stored.Status())
		assert.True(t, env.slots.IsAvailable(b.Slot()))
	})

	t.Run("pending cannot be admin cancelled, only rejected", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createPending(t, env)

		err := env.moderation.Cancel(ctx, b.ID())
		var transitionErr *booking.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, booking.StatusPending, transitionErr.From)
		assert.Equal(t, booking.EventAdminCancel, transitionErr.Event)
	})

	t.Run("cancelled slot can be rebooked immediately", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createPending(t, env)
		require.NoError(t, env.moderation.Confirm(ctx, b.ID()))
		require.NoError(t, env.moderation.Cancel(ctx, b.ID()))

		_, err := env.cmds.Create(ctx, builder.NewBookingBuilder().WithCustomerName("Bob Diaz").BuildInput())
		assert.NoError(t, err)
	})
}
