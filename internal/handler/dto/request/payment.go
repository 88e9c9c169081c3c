package request

import "github.com/google/uuid"

// PaymentOutcomeRequest is the gateway callback payload. Succeeded is a
// pointer so a missing field binds as an error instead of a failure report.
type PaymentOutcomeRequest struct {
	BookingID uuid.UUID `json:"bookingId" binding:"required"`
	Succeeded *bool     `json:"succeeded" binding:"required"`
}
