package response

import (
	"tablebook/internal/domain/table"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableResponse struct {
	ID       int    `json:"id"`
	Capacity int    `json:"capacity"`
	Zone     string `json:"zone"`
}

func FromTables(tables []table.Table) []*TableResponse {
	out := make([]*TableResponse, len(tables))
	for i, t := range tables {
		out[i] = &TableResponse{
			ID:       t.ID(),
			Capacity: t.Capacity(),
			Zone:     t.Zone().String(),
		}
	}
	return out
}

type SlotHolderResponse struct {
	BookingID    uuid.UUID `json:"bookingId"`
	CustomerName string    `json:"customerName"`
	Status       string    `json:"status"`
}

type TableAvailabilityResponse struct {
	TableID   int                 `json:"tableId"`
	Capacity  int                 `json:"capacity"`
	Zone      string              `json:"zone"`
	Available bool                `json:"available"`
	HeldBy    *SlotHolderResponse `json:"heldBy,omitempty"`
}

func FromAvailability(entries []*queries.TableAvailability) []*TableAvailabilityResponse {
	out := make([]*TableAvailabilityResponse, len(entries))
	for i, e := range entries {
		resp := &TableAvailabilityResponse{
			TableID:   e.TableID,
			Capacity:  e.Capacity,
			Zone:      e.Zone,
			Available: e.Available,
		}
		if e.HeldBy != nil {
			resp.HeldBy = &SlotHolderResponse{
				BookingID:    e.HeldBy.BookingID,
				CustomerName: e.HeldBy.CustomerName,
				Status:       e.HeldBy.Status,
			}
		}
		out[i] = resp
	}
	return out
}
