package api

import (
	"errors"
	"net/http"

	"tablebook/internal/domain/booking"
	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// PaymentHandler receives the external gateway's outcome callback. The
// outcome is the only payment detail that ever crosses into the service.
type PaymentHandler struct {
	bookingCommands commands.BookingCommands
}

func NewPaymentHandler(bookingCommands commands.BookingCommands) *PaymentHandler {
	return &PaymentHandler{
		bookingCommands: bookingCommands,
	}
}

// @Summary Record payment outcome
// @Description Confirm or cancel an awaiting-payment booking
// @Tags payments
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.PaymentOutcomeRequest true "Payment outcome"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/outcome [post]
func (h *PaymentHandler) Outcome(c *gin.Context) {
	var req reqdto.PaymentOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err := h.bookingCommands.RecordPaymentOutcome(c.Request.Context(), req.BookingID, *req.Succeeded)
	if err != nil {
		var transitionErr *booking.InvalidTransitionError
		switch {
		case errs.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.As(err, &transitionErr):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking is not awaiting payment",
				gin.H{"from": transitionErr.From.String(), "event": string(transitionErr.Event)})
		case errs.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking state changed, reload and retry", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
