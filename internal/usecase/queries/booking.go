package queries

import (
	"context"
	"strings"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound    = errs.New("booking not found")
	ErrInvalidSlot        = errs.New("invalid slot")
	ErrInvalidStatusQuery = errs.New("invalid status filter")
	ErrQueryFailed        = errs.New("query failed")
)

// StatusFilterAll lists bookings regardless of status.
const StatusFilterAll = "all"

type BookingView struct {
	ID              uuid.UUID
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Guests          int
	TableID         int
	Date            string
	Time            string
	SpecialRequests string
	Status          string
	CreatedAt       time.Time
	StatusChangedAt time.Time
}

func NewBookingView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:              b.ID(),
		CustomerName:    b.CustomerName(),
		CustomerPhone:   b.CustomerPhone().String(),
		CustomerEmail:   b.CustomerEmail(),
		Guests:          b.Guests(),
		TableID:         b.Slot().TableID(),
		Date:            b.Slot().Date(),
		Time:            b.Slot().Time(),
		SpecialRequests: b.SpecialRequests(),
		Status:          b.Status().String(),
		CreatedAt:       b.CreatedAt(),
		StatusChangedAt: b.StatusChangedAt(),
	}
}

// SlotHolder identifies the active booking occupying a slot, shown to the
// moderation console next to unavailable tables.
type SlotHolder struct {
	BookingID    uuid.UUID
	CustomerName string
	Status       string
}

type TableAvailability struct {
	TableID   int
	Capacity  int
	Zone      string
	Available bool
	HeldBy    *SlotHolder
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindBySlot(ctx context.Context, slot booking.Slot) (*booking.Booking, error)
	ListByStatus(ctx context.Context, status booking.Status) ([]*booking.Booking, error)
	List(ctx context.Context) ([]*booking.Booking, error)
}

type SlotChecker interface {
	IsAvailable(slot booking.Slot) bool
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListPending(ctx context.Context) ([]*BookingView, error)
	ListByStatus(ctx context.Context, statusFilter string) ([]*BookingView, error)
	Availability(ctx context.Context, date, timeOfDay string) ([]*TableAvailability, error)
}

type bookingQueriesImpl struct {
	store     BookingReadStore
	inventory *table.Inventory
	slots     SlotChecker
}

func NewBookingQueries(store BookingReadStore, inventory *table.Inventory, slots SlotChecker) BookingQueries {
	return &bookingQueriesImpl{
		store:     store,
		inventory: inventory,
		slots:     slots,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return NewBookingView(b), nil
}

// ListPending returns the moderation queue in arrival order.
func (q *bookingQueriesImpl) ListPending(ctx context.Context) ([]*BookingView, error) {
	bookings, err := q.store.ListByStatus(ctx, booking.StatusPending)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return toViews(bookings), nil
}

func (q *bookingQueriesImpl) ListByStatus(ctx context.Context, statusFilter string) ([]*BookingView, error) {
	filter := strings.ToUpper(strings.TrimSpace(statusFilter))
	if filter == "" || strings.EqualFold(filter, StatusFilterAll) {
		bookings, err := q.store.List(ctx)
		if err != nil {
			return nil, errs.Mark(err, ErrQueryFailed)
		}
		return toViews(bookings), nil
	}

	status, err := booking.NewStatus(filter)
	if err != nil {
		return nil, ErrInvalidStatusQuery
	}

	bookings, err := q.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return toViews(bookings), nil
}

// Availability reports each table's occupancy for one date and time. For
// taken slots the holding booking is attached when it can still be found;
// a holder that vanished between the two lookups is simply omitted.
func (q *bookingQueriesImpl) Availability(ctx context.Context, date, timeOfDay string) ([]*TableAvailability, error) {
	tables := q.inventory.List()
	result := make([]*TableAvailability, 0, len(tables))

	for _, t := range tables {
		slot, err := booking.NewSlot(t.ID(), date, timeOfDay)
		if err != nil {
			return nil, ErrInvalidSlot
		}

		entry := &TableAvailability{
			TableID:   t.ID(),
			Capacity:  t.Capacity(),
			Zone:      t.Zone().String(),
			Available: q.slots.IsAvailable(slot),
		}
		if !entry.Available {
			if holder, err := q.store.FindBySlot(ctx, slot); err == nil {
				entry.HeldBy = &SlotHolder{
					BookingID:    holder.ID(),
					CustomerName: holder.CustomerName(),
					Status:       holder.Status().String(),
				}
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

func toViews(bookings []*booking.Booking) []*BookingView {
	views := make([]*BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = NewBookingView(b)
	}
	return views
}
