package commands

import (
	"context"
	"strings"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/notify"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/pkg/keylock"
	"tablebook/internal/pkg/metrics"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrSlotConflict            = errs.New("slot conflict")
	ErrInvalidTransition       = errs.New("invalid transition")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Guests          int
	TableID         int
	Date            string
	Time            string
	SpecialRequests string
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error)
	CancelByCustomer(ctx context.Context, id uuid.UUID) error
	RecordPaymentOutcome(ctx context.Context, id uuid.UUID, succeeded bool) error
}

type bookingCommandsImpl struct {
	inventory *table.Inventory
	tr        *Transitioner
}

func NewBookingCommands(tr *Transitioner, inventory *table.Inventory) BookingCommands {
	return &bookingCommandsImpl{
		inventory: inventory,
		tr:        tr,
	}
}

// Create runs reserve-then-persist: the allocator decides slot races, the
// store's uniqueness constraint is only a backstop. A persist failure gives
// the slot back before reporting the error.
func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error) {
	phone, slot, err := c.validate(in)
	if err != nil {
		return nil, err
	}

	if !c.tr.slots.TryReserve(slot) {
		metrics.IncSlotConflict()
		return nil, ErrSlotConflict
	}

	b := booking.NewBooking(
		c.tr.clock.Now(),
		strings.TrimSpace(in.CustomerName),
		phone,
		strings.TrimSpace(in.CustomerEmail),
		in.Guests,
		slot,
		strings.TrimSpace(in.SpecialRequests),
	)

	if err := c.tr.repo.Create(ctx, b); err != nil {
		c.tr.slots.Release(slot)
		if infra.IsKind(err, infra.KindDuplicateKey) {
			metrics.IncSlotConflict()
			return nil, ErrSlotConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	metrics.IncBookingCreated(b.Status().String())
	c.tr.publish(b)
	return queries.NewBookingView(b), nil
}

// validate collects every field error before reporting any.
func (c *bookingCommandsImpl) validate(in CreateBookingInput) (booking.Phone, booking.Slot, error) {
	verr := newValidationError()

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		verr.add("customerName", "customer name is required")
	}

	phone, err := booking.NewPhone(in.CustomerPhone)
	if err != nil {
		verr.add("customerPhone", "a valid phone number is required")
	}

	email := strings.TrimSpace(in.CustomerEmail)
	if email != "" && !strings.Contains(email, "@") {
		verr.add("customerEmail", "email address is malformed")
	}

	if in.Guests < booking.MinGuests || in.Guests > booking.MaxGuests {
		verr.add("numberOfGuests", "party size must be between 1 and 20")
	}

	if !c.inventory.Exists(in.TableID) {
		verr.add("tableId", "unknown table")
	} else if in.Guests >= booking.MinGuests && in.Guests <= booking.MaxGuests {
		capacity, _ := c.inventory.CapacityOf(in.TableID)
		if in.Guests > capacity {
			verr.add("numberOfGuests", "party size exceeds table capacity")
		}
	}

	// Date and time are checked separately so one bad field never hides the
	// other.
	if _, err := booking.NormalizeDate(in.Date); err != nil {
		verr.add("date", "date must be YYYY-MM-DD")
	}
	if _, err := booking.NormalizeTime(in.Time); err != nil {
		verr.add("time", "time must be HH:MM or h:MM AM/PM")
	}

	if verr.hasErrors() {
		return booking.Phone{}, booking.Slot{}, verr
	}

	slot, err := booking.NewSlot(in.TableID, in.Date, in.Time)
	if err != nil {
		verr.add("tableId", "unknown table")
		return booking.Phone{}, booking.Slot{}, verr
	}
	return phone, slot, nil
}

func (c *bookingCommandsImpl) CancelByCustomer(ctx context.Context, id uuid.UUID) error {
	return c.tr.apply(ctx, id, booking.EventCustomerCancel)
}

// RecordPaymentOutcome is the single entry point for external payment
// results. Success confirms, failure cancels; anything else about the
// gateway stays outside the boundary.
func (c *bookingCommandsImpl) RecordPaymentOutcome(ctx context.Context, id uuid.UUID, succeeded bool) error {
	event := booking.EventPaymentSuccess
	if !succeeded {
		event = booking.EventPaymentFailure
	}
	return c.tr.apply(ctx, id, event)
}

// Transitioner owns the shared transition pipeline: per-booking lock, load,
// domain guard, guarded persist, slot release on cancellation, publish. One
// instance is shared by every command service so all transitions for a
// booking id serialize on the same lock.
type Transitioner struct {
	repo      BookingRepository
	slots     SlotAllocator
	publisher EventPublisher
	clock     clock.Clock
	locks     *keylock.KeyedMutex
}

func NewTransitioner(
	repo BookingRepository,
	slots SlotAllocator,
	publisher EventPublisher,
	clk clock.Clock,
) *Transitioner {
	return &Transitioner{
		repo:      repo,
		slots:     slots,
		publisher: publisher,
		clock:     clk,
		locks:     keylock.New(),
	}
}

func (t *Transitioner) apply(ctx context.Context, id uuid.UUID, event booking.Event) error {
	unlock := t.locks.Lock(id.String())
	defer unlock()

	b, err := t.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	from := b.Status()
	if err := b.Apply(event, t.clock.Now()); err != nil {
		return err
	}

	if err := t.repo.UpdateStatus(ctx, id, from, b.Status(), b.StatusChangedAt()); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// A concurrent transition won despite the per-booking lock; can
			// only happen across processes sharing one database.
			return errs.Mark(err, ErrInvalidTransition)
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if b.Status() == booking.StatusCancelled {
		t.slots.Release(b.Slot())
	}

	metrics.IncBookingTransition(string(event))
	t.publish(b)
	return nil
}

func (t *Transitioner) publish(b *booking.Booking) {
	t.publisher.Publish(b.CustomerPhone().String(), notify.Event{
		BookingID: b.ID(),
		Status:    b.Status(),
		TableID:   b.Slot().TableID(),
		Date:      b.Slot().Date(),
		Time:      b.Slot().Time(),
		Timestamp: b.StatusChangedAt(),
	})
}
