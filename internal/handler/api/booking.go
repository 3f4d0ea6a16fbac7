package api

import (
	"errors"
	"net/http"
	"strconv"

	"cinema-booking/internal/domain/user"
	reqdto "cinema-booking/internal/handler/dto/request"
	resdto "cinema-booking/internal/handler/dto/response"
	"cinema-booking/internal/handler/middleware"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/commands"
	"cinema-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Book seats for a screening; prices and offers are applied server-side
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.Create(c.Request.Context(), userID, req.ScreeningID, req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrScreeningNotFound),
			errors.Is(err, errs.ErrMovieNotFound),
			errors.Is(err, errs.ErrSeatNotFound),
			errors.Is(err, errs.ErrPersonTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Screening, seat, or person type not found",
			})
		case errors.Is(err, errs.ErrSeatTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "One or more seats are already taken",
			})
		case errors.Is(err, errs.ErrNoTicketsRequested),
			errors.Is(err, errs.ErrDuplicateSeats),
			errors.Is(err, errs.ErrSeatNotInRoom),
			errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking request",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking by id; customers can only see their own
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	view, ok := h.ownedBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List own bookings
// @Description List the current user's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.bookingQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Confirm booking
// @Description Confirm a pending booking
// @Tags bookings
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	view, ok := h.ownedBooking(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.Confirm(c.Request.Context(), view.ID); err != nil {
		h.writeTransitionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel booking
// @Description Cancel a pending or confirmed booking and release its seats
// @Tags bookings
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	view, ok := h.ownedBooking(c)
	if !ok {
		return
	}

	if err := h.bookingCommands.Cancel(c.Request.Context(), view.ID); err != nil {
		h.writeTransitionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedBooking loads the booking from the path id and enforces
// ownership. Customers get a 404 rather than a 403 for other users'
// bookings so ids cannot be probed.
func (h *BookingHandler) ownedBooking(c *gin.Context) (*queries.BookingView, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return nil, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return nil, false
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return nil, false
	}

	role, _ := middleware.GetUserRole(c)
	if view.UserID != userID && role != user.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
		return nil, false
	}
	return view, true
}

func (h *BookingHandler) writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is not in a state that allows this operation",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
