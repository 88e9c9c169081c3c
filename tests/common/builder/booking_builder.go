//go:build unit || e2e

package builder

import (
	"time"

	dombooking "tablebook/internal/domain/booking"
	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Guests          int
	TableID         int
	Date            string
	Time            string
	SpecialRequests string
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		CustomerName:  "Alice Carter",
		CustomerPhone: "+15551234567",
		CustomerEmail: "alice@example.com",
		Guests:        2,
		TableID:       1,
		Date:          "2026-10-01",
		Time:          "19:00",
		CreatedAt:     time.Now(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	phone, err := dombooking.NewPhone(b.CustomerPhone)
	if err != nil {
		return nil, err
	}
	slot, err := dombooking.NewSlot(b.TableID, b.Date, b.Time)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(
		b.CreatedAt, b.CustomerName, phone, b.CustomerEmail, b.Guests, slot, b.SpecialRequests,
	), nil
}

func (b *BookingBuilder) BuildInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerEmail:   b.CustomerEmail,
		Guests:          b.Guests,
		TableID:         b.TableID,
		Date:            b.Date,
		Time:            b.Time,
		SpecialRequests: b.SpecialRequests,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	guests := b.Guests
	tableID := b.TableID
	return reqdto.CreateBookingRequest{
		CustomerName:    b.CustomerName,
		Phone:           b.CustomerPhone,
		Email:           b.CustomerEmail,
		Guests:          &guests,
		TableID:         &tableID,
		Date:            b.Date,
		Time:            b.Time,
		SpecialRequests: b.SpecialRequests,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	status := dombooking.StatusPending
	if dombooking.RequiresPayment(b.Guests) {
		status = dombooking.StatusAwaitingPayment
	}
	return &queries.BookingView{
		ID:              uuid.New(),
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		CustomerEmail:   b.CustomerEmail,
		Guests:          b.Guests,
		TableID:         b.TableID,
		Date:            b.Date,
		Time:            b.Time,
		SpecialRequests: b.SpecialRequests,
		Status:          status.String(),
		CreatedAt:       b.CreatedAt,
		StatusChangedAt: b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithCustomerName(name string) *BookingBuilder {
	b.CustomerName = name
	return b
}

func (b *BookingBuilder) WithPhone(phone string) *BookingBuilder {
	b.CustomerPhone = phone
	return b
}

func (b *BookingBuilder) WithEmail(email string) *BookingBuilder {
	b.CustomerEmail = email
	return b
}

func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.Guests = guests
	return b
}

func (b *BookingBuilder) WithTableID(tableID int) *BookingBuilder {
	b.TableID = tableID
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithTime(timeOfDay string) *BookingBuilder {
	b.Time = timeOfDay
	return b
}

func (b *BookingBuilder) WithSpecialRequests(notes string) *BookingBuilder {
	b.SpecialRequests = notes
	return b
}

func (b *BookingBuilder) WithCreatedAt(createdAt time.Time) *BookingBuilder {
	b.CreatedAt = createdAt
	return b
}

// AsLargeParty crosses the deposit threshold, so the booking starts in
// AWAITING_PAYMENT.
func (b *BookingBuilder) AsLargeParty() *BookingBuilder {
	b.Guests = 8
	b.TableID = 8
	return b
}
