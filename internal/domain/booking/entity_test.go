//go:build unit

package booking_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("small party starts pending", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithGuests(2).BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.True(t, actual.IsActive())
		assert.Equal(t, actual.CreatedAt(), actual.StatusChangedAt())
	})

	t.Run("party at deposit threshold starts awaiting payment", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().AsLargeParty().BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, booking.StatusAwaitingPayment, actual.Status())
		assert.True(t, actual.IsActive())
	})

	t.Run("party just below threshold stays pending", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithGuests(5).WithTableID(4).BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, actual.Status())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b1, err1 := builder.NewBookingBuilder().BuildDomain()
		b2, err2 := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)

		assert.NotEqual(t, b1.ID(), b2.ID())
	})
}

type transitionCase struct {
	name  string
	from  booking.Status
	event booking.Event
	want  booking.Status
}

func TestApply(t *testing.T) {
	t.Run("allowed transitions", func(t *testing.T) {
		runTransitionCases(t, []transitionCase{
			{name: "pending confirmed by admin", from: booking.StatusPending, event: booking.EventAdminConfirm, want: booking.StatusConfirmed},
			{name: "pending rejected by admin", from: booking.StatusPending, event: booking.EventAdminReject, want: booking.StatusCancelled},
			{name: "pending cancelled by customer", from: booking.StatusPending, event: booking.EventCustomerCancel, want: booking.StatusCancelled},
			{name: "awaiting payment succeeds", from: booking.StatusAwaitingPayment, event: booking.EventPaymentSuccess, want: booking.StatusConfirmed},
			{name: "awaiting payment fails", from: booking.StatusAwaitingPayment, event: booking.EventPaymentFailure, want: booking.StatusCancelled},
			{name: "awaiting payment cancelled by customer", from: booking.StatusAwaitingPayment, event: booking.EventCustomerCancel, want: booking.StatusCancelled},
			{name: "confirmed cancelled by admin", from: booking.StatusConfirmed, event: booking.EventAdminCancel, want: booking.StatusCancelled},
		})
	})

	t.Run("rejected transitions", func(t *testing.T) {
		cases := []transitionCase{
			{name: "pending cannot receive payment success", from: booking.StatusPending, event: booking.EventPaymentSuccess},
			{name: "pending cannot be admin cancelled", from: booking.StatusPending, event: booking.EventAdminCancel},
			{name: "awaiting payment cannot be confirmed by admin", from: booking.StatusAwaitingPayment, event: booking.EventAdminConfirm},
			{name: "awaiting payment cannot be rejected by admin", from: booking.StatusAwaitingPayment, event: booking.EventAdminReject},
			{name: "confirmed cannot be confirmed again", from: booking.StatusConfirmed, event: booking.EventAdminConfirm},
			{name: "confirmed cannot be cancelled by customer", from: booking.StatusConfirmed, event: booking.EventCustomerCancel},
			{name: "confirmed cannot receive payment success", from: booking.StatusConfirmed, event: booking.EventPaymentSuccess},
		}
		runRejectedCases(t, cases)
	})

	t.Run("cancelled is terminal for every event", func(t *testing.T) {
		events := []booking.Event{
			booking.EventAdminConfirm,
			booking.EventAdminReject,
			booking.EventAdminCancel,
			booking.EventCustomerCancel,
			booking.EventPaymentSuccess,
			booking.EventPaymentFailure,
		}
		for _, ev := range events {
			t.Run(string(ev), func(t *testing.T) {
				b := reconstructWithStatus(t, booking.StatusCancelled)
				err := b.Apply(ev, time.Now())

				var transitionErr *booking.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, booking.StatusCancelled, b.Status())
			})
		}
	})

	t.Run("successful apply stamps status change time", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusPending)
		at := time.Date(2026, 10, 1, 18, 30, 0, 0, time.UTC)

		require.NoError(t, b.Apply(booking.EventAdminConfirm, at))
		assert.Equal(t, at, b.StatusChangedAt())
	})

	t.Run("failed apply leaves booking untouched", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusConfirmed)
		before := b.StatusChangedAt()

		err := b.Apply(booking.EventCustomerCancel, before.Add(time.Hour))
		require.Error(t, err)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, before, b.StatusChangedAt())
	})
}

func TestNamedTransitions(t *testing.T) {
	now := time.Now()

	t.Run("ConfirmByAdmin", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusPending)
		require.NoError(t, b.ConfirmByAdmin(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("RejectByAdmin", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusPending)
		require.NoError(t, b.RejectByAdmin(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("CancelByAdmin", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusConfirmed)
		require.NoError(t, b.CancelByAdmin(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("CancelByCustomer", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusAwaitingPayment)
		require.NoError(t, b.CancelByCustomer(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("PaymentSucceeded", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusAwaitingPayment)
		require.NoError(t, b.PaymentSucceeded(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("PaymentFailed", func(t *testing.T) {
		b := reconstructWithStatus(t, booking.StatusAwaitingPayment)
		require.NoError(t, b.PaymentFailed(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})
}

func runTransitionCases(t *testing.T, cases []transitionCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := reconstructWithStatus(t, c.from)
			err := b.Apply(c.event, time.Now())

			require.NoError(t, err)
			assert.Equal(t, c.want, b.Status())
		})
	}
}

func runRejectedCases(t *testing.T, cases []transitionCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := reconstructWithStatus(t, c.from)
			err := b.Apply(c.event, time.Now())

			var transitionErr *booking.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, c.from, transitionErr.From)
			assert.Equal(t, c.event, transitionErr.Event)
			assert.Equal(t, c.from, b.Status())
		})
	}
}

func reconstructWithStatus(t *testing.T, status booking.Status) *booking.Booking {
	t.Helper()

	phone, err := booking.NewPhone("+15551234567")
	require.NoError(t, err)
	slot, err := booking.NewSlot(1, "2026-10-01", "19:00")
	require.NoError(t, err)

	now := time.Now()
	return booking.ReconstructBooking(
		uuid.New(), "Alice Carter", phone, "alice@example.com", 2,
		slot, "", status, now, now,
	)
}
