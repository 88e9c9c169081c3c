//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra/allocator"
	"tablebook/internal/infra/memstore"
	"tablebook/internal/notify"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publisherSpy records what the command layer publishes.
type publisherSpy struct {
	mu     sync.Mutex
	phones []string
	events []notify.Event
}

func (p *publisherSpy) Publish(phone string, ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phones = append(p.phones, phone)
	p.events = append(p.events, ev)
}

func (p *publisherSpy) last() (string, notify.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return "", notify.Event{}, false
	}
	return p.phones[len(p.phones)-1], p.events[len(p.events)-1], true
}

func (p *publisherSpy) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type commandsEnv struct {
	store      *memstore.BookingStore
	slots      *allocator.SlotAllocator
	pub        *publisherSpy
	clk        *clock.MockClock
	cmds       commands.BookingCommands
	moderation commands.ModerationCommands
	tr         *commands.Transitioner
}

func newCommandsEnv(t *testing.T) *commandsEnv {
	t.Helper()

	store := memstore.NewBookingStore()
	slots := allocator.New()
	pub := &publisherSpy{}
	clk := clock.NewMockClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	tr := commands.NewTransitioner(store, slots, pub, clk)

	return &commandsEnv{
		store:      store,
		slots:      slots,
		pub:        pub,
		clk:        clk,
		cmds:       commands.NewBookingCommands(tr, table.DefaultLayout()),
		moderation: commands.NewModerationCommands(tr),
		tr:         tr,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("small party lands in PENDING", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)
		require.NotNil(t, view)

		assert.Equal(t, booking.StatusPending.String(), view.Status)
		assert.Equal(t, env.clk.Now(), view.CreatedAt)
		assert.Equal(t, view.CreatedAt, view.StatusChangedAt)
	})

	t.Run("large party lands in AWAITING_PAYMENT", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)

		assert.Equal(t, booking.StatusAwaitingPayment.String(), view.Status)
	})

	t.Run("inputs are normalized in the view", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := builder.NewBookingBuilder().
			WithCustomerName("  Alice Carter  ").
			WithPhone("+1 (555) 123-4567").
			WithTime("7:00 PM").
			BuildInput()

		view, err := env.cmds.Create(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, "Alice Carter", view.CustomerName)
		assert.Equal(t, "+15551234567", view.CustomerPhone)
		assert.Equal(t, "19:00", view.Time)
	})

	t.Run("creation claims the slot and publishes", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)

		slot, err := booking.NewSlot(view.TableID, view.Date, view.Time)
		require.NoError(t, err)
		assert.False(t, env.slots.IsAvailable(slot))

		phone, ev, ok := env.pub.last()
		require.True(t, ok)
		assert.Equal(t, view.CustomerPhone, phone)
		assert.Equal(t, view.ID, ev.BookingID)
		assert.Equal(t, booking.StatusPending, ev.Status)
		assert.Equal(t, view.TableID, ev.TableID)
	})

	t.Run("same slot twice conflicts", func(t *testing.T) {
		env := newCommandsEnv(t)

		_, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)

		_, err = env.cmds.Create(ctx, builder.NewBookingBuilder().WithCustomerName("Bob Diaz").BuildInput())
		require.ErrorIs(t, err, commands.ErrSlotConflict)
	})

	t.Run("12h and 24h spellings conflict on the same slot", func(t *testing.T) {
		env := newCommandsEnv(t)

		_, err := env.cmds.Create(ctx, builder.NewBookingBuilder().WithTime("19:00").BuildInput())
		require.NoError(t, err)

		_, err = env.cmds.Create(ctx, builder.NewBookingBuilder().WithTime("7:00 PM").BuildInput())
		require.ErrorIs(t, err, commands.ErrSlotConflict)
	})

	t.Run("different time frees the conflict", func(t *testing.T) {
		env := newCommandsEnv(t)

		_, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)

		_, err = env.cmds.Create(ctx, builder.NewBookingBuilder().WithTime("20:00").BuildInput())
		assert.NoError(t, err)
	})
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()

	expectFieldErrors := func(t *testing.T, err error, fields ...string) {
		t.Helper()
		var verr *commands.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, len(fields))
		for _, f := range fields {
			assert.Contains(t, verr.Fields, f)
		}
	}

	t.Run("every invalid field is reported at once", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := commands.CreateBookingInput{
			CustomerName:  "",
			CustomerPhone: "not a phone",
			CustomerEmail: "no-at-sign",
			Guests:        0,
			TableID:       99,
			Date:          "tomorrow",
			Time:          "evening",
		}

		_, err := env.cmds.Create(ctx, in)
		expectFieldErrors(t, err, "customerName", "customerPhone", "customerEmail", "numberOfGuests", "tableId", "date", "time")
	})

	t.Run("invalid date does not hide the invalid time", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := builder.NewBookingBuilder().WithDate("tomorrow").WithTime("evening").BuildInput()

		_, err := env.cmds.Create(ctx, in)
		expectFieldErrors(t, err, "date", "time")
	})

	t.Run("guests above table capacity", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := builder.NewBookingBuilder().WithTableID(1).WithGuests(4).BuildInput()

		_, err := env.cmds.Create(ctx, in)
		expectFieldErrors(t, err, "numberOfGuests")
	})

	t.Run("guests above global maximum", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := builder.NewBookingBuilder().WithTableID(8).WithGuests(booking.MaxGuests + 1).BuildInput()

		_, err := env.cmds.Create(ctx, in)
		expectFieldErrors(t, err, "numberOfGuests")
	})

	t.Run("unknown table", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := builder.NewBookingBuilder().WithTableID(42).BuildInput()

		_, err := env.cmds.Create(ctx, in)
		expectFieldErrors(t, err, "tableId")
	})

	t.Run("empty email is allowed", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := builder.NewBookingBuilder().WithEmail("").BuildInput()

		_, err := env.cmds.Create(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("validation failure claims no slot", func(t *testing.T) {
		env := newCommandsEnv(t)
		in := builder.NewBookingBuilder().WithCustomerName("").BuildInput()

		_, err := env.cmds.Create(ctx, in)
		require.Error(t, err)

		slot, slotErr := booking.NewSlot(in.TableID, in.Date, in.Time)
		require.NoError(t, slotErr)
		assert.True(t, env.slots.IsAvailable(slot))
		assert.Equal(t, 0, env.pub.count())
	})

	t.Run("error message lists fields in order", func(t *testing.T) {
		verrSource := commands.CreateBookingInput{
			CustomerName: "Alice",
			Guests:       2,
			TableID:      1,
			Date:         "2026-10-01",
			Time:         "19:00",
		}
		env := newCommandsEnv(t)

		_, err := env.cmds.Create(ctx, verrSource)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed:")
		assert.Contains(t, err.Error(), "customerPhone")
	})
}

func TestCancelByCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and releases the slot for rebooking", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)

		env.clk.Add(10 * time.Minute)
		require.NoError(t, env.cmds.CancelByCustomer(ctx, view.ID))

		stored, err := env.store.FindByID(ctx, view.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, stored.Status())
		assert.Equal(t, env.clk.Now(), stored.StatusChangedAt())

		_, err = env.cmds.Create(ctx, builder.NewBookingBuilder().WithCustomerName("Bob Diaz").BuildInput())
		assert.NoError(t, err)
	})

	t.Run("publishes the cancellation", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)
		require.NoError(t, env.cmds.CancelByCustomer(ctx, view.ID))

		_, ev, ok := env.pub.last()
		require.True(t, ok)
		assert.Equal(t, booking.StatusCancelled, ev.Status)
		assert.Equal(t, view.ID, ev.BookingID)
	})

	t.Run("unknown booking", func(t *testing.T) {
		env := newCommandsEnv(t)
		err := env.cmds.CancelByCustomer(ctx, uuid.New())
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("confirmed booking cannot be customer-cancelled", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)
		require.NoError(t, env.moderation.Confirm(ctx, view.ID))

		err = env.cmds.CancelByCustomer(ctx, view.ID)
		var transitionErr *booking.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, booking.StatusConfirmed, transitionErr.From)
	})
}

func TestRecordPaymentOutcome(t *testing.T) {
	ctx := context.Background()

	createAwaiting := func(t *testing.T, env *commandsEnv) *booking.Booking {
		t.Helper()
		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().AsLargeParty().BuildInput())
		require.NoError(t, err)
		stored, err := env.store.FindByID(ctx, view.ID)
		require.NoError(t, err)
		require.Equal(t, booking.StatusAwaitingPayment, stored.Status())
		return stored
	}

	t.Run("success confirms", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createAwaiting(t, env)

		require.NoError(t, env.cmds.RecordPaymentOutcome(ctx, b.ID(), true))

		stored, err := env.store.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, stored.Status())
		assert.False(t, env.slots.IsAvailable(b.Slot()))
	})

	t.Run("failure cancels and releases the slot", func(t *testing.T) {
		env := newCommandsEnv(t)
		b := createAwaiting(t, env)

		require.NoError(t, env.cmds.RecordPaymentOutcome(ctx, b.ID(), false))

		stored, err := env.store.FindByID(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, stored.Status())
		assert.True(t, env.slots.IsAvailable(b.Slot()))
	})

	t.Run("outcome for a pending booking is rejected", func(t *testing.T) {
		env := newCommandsEnv(t)

		view, err := env.cmds.Create(ctx, builder.NewBookingBuilder().BuildInput())
		require.NoError(t, err)

		err = env.cmds.RecordPaymentOutcome(ctx, view.ID, true)
		var transitionErr *booking.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
		assert.Equal(t, booking.StatusPending, transitionErr.From)
		assert.Equal(t, booking.EventPaymentSuccess, transitionErr.Event)
	})

	t.Run("unknown booking", func(t *testing.T) {
		env := newCommandsEnv(t)
		err := env.cmds.RecordPaymentOutcome(ctx, uuid.New(), true)
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}
