package api

import (
	"errors"
	"net/http"

	reqdto "cinema-booking/internal/handler/dto/request"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{paymentCommands: paymentCommands}
}

// @Summary Payment success notification
// @Description Confirm the booking tied to a paid order; safe to redeliver
// @Tags payments
// @Accept json
// @Param request body reqdto.PaymentNotifyRequest true "Provider notification"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/notify [post]
func (h *PaymentHandler) NotifyPayment(c *gin.Context) {
	var req reqdto.PaymentNotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID format",
		})
		return
	}

	if err := h.paymentCommands.ConfirmPayment(c.Request.Context(), orderID); err != nil {
		h.writePaymentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Payment cancellation
// @Description Cancel a pending booking whose checkout was aborted; safe to redeliver
// @Tags payments
// @Accept json
// @Param request body reqdto.PaymentCancelRequest true "Cancellation notice"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/cancel [post]
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	var req reqdto.PaymentCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.paymentCommands.CancelPayment(c.Request.Context(), req.BookingID); err != nil {
		h.writePaymentError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PaymentHandler) writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrPaymentOrderNotFound),
		errors.Is(err, errs.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking or payment order not found",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is not in a state that allows this operation",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
