package booking

import "errors"

var ErrInvalidStatus = errors.New("invalid booking status")

// Status forms a monotonic lifecycle: once CANCELLED or past CONFIRMED a
// booking never returns to an earlier state.
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusConfirmed       Status = "CONFIRMED"
	StatusCancelled       Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still holds its slot.
func (s Status) IsActive() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusConfirmed:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ActiveStatuses lists every status that counts as holding a slot, in
// lifecycle order.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusAwaitingPayment, StatusConfirmed}
}

// AllStatuses lists every status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusAwaitingPayment, StatusConfirmed, StatusCancelled}
}

// Event names a lifecycle trigger. It appears in InvalidTransitionError so
// callers can report what was attempted against which state.
type Event string

const (
	EventAdminConfirm   Event = "ADMIN_CONFIRM"
	EventAdminReject    Event = "ADMIN_REJECT"
	EventAdminCancel    Event = "ADMIN_CANCEL"
	EventCustomerCancel Event = "CUSTOMER_CANCEL"
	EventPaymentSuccess Event = "PAYMENT_SUCCESS"
	EventPaymentFailure Event = "PAYMENT_FAILURE"
)

type InvalidTransitionError struct {
	From  Status
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return "invalid transition: " + string(e.Event) + " from " + string(e.From)
}
