package booking

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	id              uuid.UUID
	customerName    string
	customerPhone   Phone
	customerEmail   string
	guests          int
	slot            Slot
	specialRequests string
	status          Status
	createdAt       time.Time
	statusChangedAt time.Time
}

// NewBooking assumes its inputs already passed field validation; the payment
// gate decides whether the booking starts PENDING or AWAITING_PAYMENT.
func NewBooking(
	now time.Time,
	customerName string,
	customerPhone Phone,
	customerEmail string,
	guests int,
	slot Slot,
	specialRequests string,
) *Booking {
	status := StatusPending
	if RequiresPayment(guests) {
		status = StatusAwaitingPayment
	}

	return &Booking{
		id:              uuid.New(),
		customerName:    customerName,
		customerPhone:   customerPhone,
		customerEmail:   customerEmail,
		guests:          guests,
		slot:            slot,
		specialRequests: specialRequests,
		status:          status,
		createdAt:       now,
		statusChangedAt: now,
	}
}

func ReconstructBooking(
	id uuid.UUID,
	customerName string,
	customerPhone Phone,
	customerEmail string,
	guests int,
	slot Slot,
	specialRequests string,
	status Status,
	createdAt, statusChangedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		customerName:    customerName,
		customerPhone:   customerPhone,
		customerEmail:   customerEmail,
		guests:          guests,
		slot:            slot,
		specialRequests: specialRequests,
		status:          status,
		createdAt:       createdAt,
		statusChangedAt: statusChangedAt,
	}
}

// Apply runs one lifecycle event against the current status. Disallowed
// combinations return *InvalidTransitionError and leave the booking
// untouched.
func (b *Booking) Apply(event Event, now time.Time) error {
	next, ok := transitions[b.status][event]
	if !ok {
		return &InvalidTransitionError{From: b.status, Event: event}
	}
	b.status = next
	b.statusChangedAt = now
	return nil
}

// transitions is the whole lifecycle. Anything absent is rejected, which
// keeps the machine monotonic: no event leads out of CANCELLED, and nothing
// re-enters PENDING or AWAITING_PAYMENT.
var transitions = map[Status]map[Event]Status{
	StatusPending: {
		EventAdminConfirm:   StatusConfirmed,
		EventAdminReject:    StatusCancelled,
		EventCustomerCancel: StatusCancelled,
	},
	StatusAwaitingPayment: {
		EventPaymentSuccess: StatusConfirmed,
		EventPaymentFailure: StatusCancelled,
		EventCustomerCancel: StatusCancelled,
	},
	StatusConfirmed: {
		EventAdminCancel: StatusCancelled,
	},
}

func (b *Booking) ConfirmByAdmin(now time.Time) error   { return b.Apply(EventAdminConfirm, now) }
func (b *Booking) RejectByAdmin(now time.Time) error    { return b.Apply(EventAdminReject, now) }
func (b *Booking) CancelByAdmin(now time.Time) error    { return b.Apply(EventAdminCancel, now) }
func (b *Booking) CancelByCustomer(now time.Time) error { return b.Apply(EventCustomerCancel, now) }
func (b *Booking) PaymentSucceeded(now time.Time) error { return b.Apply(EventPaymentSuccess, now) }
func (b *Booking) PaymentFailed(now time.Time) error    { return b.Apply(EventPaymentFailure, now) }

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) CustomerName() string       { return b.customerName }
func (b *Booking) CustomerPhone() Phone       { return b.customerPhone }
func (b *Booking) CustomerEmail() string      { return b.customerEmail }
func (b *Booking) Guests() int                { return b.guests }
func (b *Booking) Slot() Slot                 { return b.slot }
func (b *Booking) SpecialRequests() string    { return b.specialRequests }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) StatusChangedAt() time.Time { return b.statusChangedAt }
