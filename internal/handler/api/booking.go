package api

import (
	"errors"
	"net/http"

	"tablebook/internal/domain/booking"
	"tablebook/internal/domain/table"
	"tablebook/internal/domain/user"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	inventory       *table.Inventory
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	inventory *table.Inventory,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		inventory:       inventory,
	}
}

// @Summary Create booking
// @Description Create a booking for a table, date and time
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		var verr *commands.ValidationError
		switch {
		case errors.As(err, &verr):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", httperr.FieldErrors(verr.Fields))
		case errs.Is(err, commands.ErrSlotConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "The table is already booked for this slot", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking status by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	// Customers only see bookings made under their own phone.
	if !h.mayAccess(c, view) {
		httperr.AbortWithError(c, http.StatusNotFound, queries.ErrBookingNotFound, "Booking not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Customer cancellation of a booking not yet confirmed
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}
	if !h.mayAccess(c, view) {
		httperr.AbortWithError(c, http.StatusNotFound, queries.ErrBookingNotFound, "Booking not found", nil)
		return
	}

	if err := h.bookingCommands.CancelByCustomer(c.Request.Context(), id); err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List tables
// @Description The fixed table catalog of the venue
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TableResponse
// @Router /tables [get]
func (h *BookingHandler) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromTables(h.inventory.List()))
}

// @Summary Table availability
// @Description Per-table availability for one date and time
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Time (HH:MM or h:MM AM/PM)"
// @Success 200 {array} resdto.TableAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /tables/availability [get]
func (h *BookingHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	timeOfDay := c.Query("time")

	entries, err := h.bookingQueries.Availability(c.Request.Context(), date, timeOfDay)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidSlot) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "A valid date and time are required", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	// Holder identity is moderation-only detail.
	if role, _ := middleware.GetUserRole(c); role != user.RoleAdmin {
		for _, e := range entries {
			e.HeldBy = nil
		}
	}

	c.JSON(http.StatusOK, resdto.FromAvailability(entries))
}

func (h *BookingHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) mayAccess(c *gin.Context, view *queries.BookingView) bool {
	role, _ := middleware.GetUserRole(c)
	if role == user.RoleAdmin {
		return true
	}
	phone, ok := middleware.GetUserPhone(c)
	return ok && phone == view.CustomerPhone
}

func (h *BookingHandler) abortQueryError(c *gin.Context, err error) {
	if errors.Is(err, queries.ErrBookingNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func (h *BookingHandler) abortCommandError(c *gin.Context, err error) {
	var transitionErr *booking.InvalidTransitionError
	switch {
	case errs.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.As(err, &transitionErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking state does not allow this action",
			gin.H{"from": transitionErr.From.String(), "event": string(transitionErr.Event)})
	case errs.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking state changed, reload and retry", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
