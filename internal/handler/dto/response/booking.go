package response

import (
	"time"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	CustomerName    string    `json:"customerName"`
	CustomerPhone   string    `json:"customerPhone"`
	CustomerEmail   string    `json:"customerEmail,omitempty"`
	Guests          int       `json:"guests"`
	TableID         int       `json:"tableId"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	StatusChangedAt time.Time `json:"statusChangedAt"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              view.ID,
		CustomerName:    view.CustomerName,
		CustomerPhone:   view.CustomerPhone,
		CustomerEmail:   view.CustomerEmail,
		Guests:          view.Guests,
		TableID:         view.TableID,
		Date:            view.Date,
		Time:            view.Time,
		SpecialRequests: view.SpecialRequests,
		Status:          view.Status,
		CreatedAt:       view.CreatedAt,
		StatusChangedAt: view.StatusChangedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		out[i] = FromBookingView(v)
	}
	return out
}
