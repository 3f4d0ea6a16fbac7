package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "cinema-booking/internal/handler/dto/request"
	resdto "cinema-booking/internal/handler/dto/response"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PriceHandler struct {
	pricingQueries queries.PricingQueries
}

func NewPriceHandler(pricingQueries queries.PricingQueries) *PriceHandler {
	return &PriceHandler{pricingQueries: pricingQueries}
}

// @Summary Calculate ticket price
// @Description Price one seat of one screening for a person category, offers excluded
// @Tags pricing
// @Produce json
// @Param screeningId query int true "Screening ID"
// @Param seatId query int true "Seat ID"
// @Param personType query string true "Person type name"
// @Success 200 {object} resdto.PriceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /price/calculate [get]
func (h *PriceHandler) CalculatePrice(c *gin.Context) {
	screeningID, err1 := strconv.ParseInt(c.Query("screeningId"), 10, 64)
	seatID, err2 := strconv.ParseInt(c.Query("seatId"), 10, 64)
	personType := c.Query("personType")
	if err1 != nil || err2 != nil || personType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "screeningId, seatId and personType are required",
		})
		return
	}

	price, err := h.pricingQueries.CalculatePrice(c.Request.Context(), screeningID, seatID, personType)
	if err != nil {
		h.writePricingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.PriceResponse{Price: price})
}

// @Summary Calculate bulk price
// @Description Price a set of tickets for one screening, offers excluded
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body reqdto.BulkPriceRequest true "Bulk price request"
// @Success 200 {object} resdto.BulkPriceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /price/calculate-bulk [post]
func (h *PriceHandler) CalculateBulkPrice(c *gin.Context) {
	var req reqdto.BulkPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.pricingQueries.CalculateBulk(c.Request.Context(), req.ScreeningID, req.ToQuery())
	if err != nil {
		h.writePricingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBulkPriceResult(result))
}

func (h *PriceHandler) writePricingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrScreeningNotFound),
		errors.Is(err, errs.ErrMovieNotFound),
		errors.Is(err, errs.ErrSeatNotFound),
		errors.Is(err, errs.ErrPersonTypeNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Screening, seat, or person type not found",
		})
	case errors.Is(err, errs.ErrSeatNotInRoom),
		errors.Is(err, errs.ErrNoTicketsRequested),
		errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid pricing request",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
