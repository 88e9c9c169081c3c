package api

import (
	"context"
	"errors"
	"net/http"

	"tablebook/internal/domain/booking"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler is the moderation console: the pending queue, history
// filtering, and the confirm/reject/cancel decisions.
type AdminHandler struct {
	moderation     commands.ModerationCommands
	bookingQueries queries.BookingQueries
}

func NewAdminHandler(moderation commands.ModerationCommands, bookingQueries queries.BookingQueries) *AdminHandler {
	return &AdminHandler{
		moderation:     moderation,
		bookingQueries: bookingQueries,
	}
}

// @Summary Pending bookings
// @Description The moderation queue in arrival order
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Router /admin/bookings/pending [get]
func (h *AdminHandler) ListPending(c *gin.Context) {
	views, err := h.bookingQueries.ListPending(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary List bookings
// @Description Booking history filtered by status, or all of it
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (PENDING, AWAITING_PAYMENT, CONFIRMED, CANCELLED or all)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/bookings [get]
func (h *AdminHandler) List(c *gin.Context) {
	views, err := h.bookingQueries.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, queries.ErrInvalidStatusQuery) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown status filter", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Confirm booking
// @Description Approve a pending booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/confirm [post]
func (h *AdminHandler) Confirm(c *gin.Context) {
	h.decide(c, h.moderation.Confirm)
}

// @Summary Reject booking
// @Description Decline a pending booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/reject [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	h.decide(c, h.moderation.Reject)
}

// @Summary Cancel booking
// @Description Withdraw a confirmed booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/bookings/{id}/cancel [post]
func (h *AdminHandler) Cancel(c *gin.Context) {
	h.decide(c, h.moderation.Cancel)
}

// decide runs one moderation decision and responds with the refreshed
// booking so the console can render the new state without a second call.
func (h *AdminHandler) decide(c *gin.Context, decision func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := decision(c.Request.Context(), id); err != nil {
		var transitionErr *booking.InvalidTransitionError
		switch {
		case errs.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.As(err, &transitionErr):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking state does not allow this decision",
				gin.H{"from": transitionErr.From.String(), "event": string(transitionErr.Event)})
		case errs.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking state changed, reload and retry", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
