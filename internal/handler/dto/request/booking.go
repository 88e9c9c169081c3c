package request

import (
	"strings"

	"tablebook/internal/usecase/commands"
)

// CreateBookingRequest accepts every field spelling the legacy clients used.
// Canonical names win when both forms are present; the aliases exist only so
// older front ends keep working. Field validation happens in the command
// layer so all problems are reported together, which is why nothing here is
// marked binding:"required".
type CreateBookingRequest struct {
	CustomerName string `json:"customerName"`
	Name         string `json:"name"` // alias of customerName

	Phone         string `json:"phone"`
	CustomerPhone string `json:"customerPhone"` // alias of phone

	Email         string `json:"email"`
	CustomerEmail string `json:"customerEmail"` // alias of email

	Guests         *int `json:"guests"`
	Pax            *int `json:"pax"`            // alias of guests
	NumberOfGuests *int `json:"numberOfGuests"` // alias of guests

	TableID *int `json:"tableId"`
	Table   *int `json:"table"` // alias of tableId

	Date        string `json:"date"`
	BookingDate string `json:"bookingDate"` // alias of date

	Time        string `json:"time"`
	BookingTime string `json:"bookingTime"` // alias of time

	SpecialRequests string `json:"specialRequests"`
	Notes           string `json:"notes"` // alias of specialRequests
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		CustomerName:    firstNonEmpty(r.CustomerName, r.Name),
		CustomerPhone:   firstNonEmpty(r.Phone, r.CustomerPhone),
		CustomerEmail:   firstNonEmpty(r.Email, r.CustomerEmail),
		Guests:          firstInt(r.Guests, r.Pax, r.NumberOfGuests),
		TableID:         firstInt(r.TableID, r.Table),
		Date:            firstNonEmpty(r.Date, r.BookingDate),
		Time:            firstNonEmpty(r.Time, r.BookingTime),
		SpecialRequests: firstNonEmpty(r.SpecialRequests, r.Notes),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
