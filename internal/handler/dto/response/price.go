package response

import (
	"github.com/shopspring/decimal"

	"cinema-booking/internal/usecase/queries"
)

type PriceResponse struct {
	Price decimal.Decimal `json:"price"`
}

type BulkPriceResponse struct {
	TicketPrices []decimal.Decimal `json:"ticketPrices"`
	TotalPrice   decimal.Decimal   `json:"totalPrice"`
}

func FromBulkPriceResult(rm *queries.BulkPriceResult) *BulkPriceResponse {
	return &BulkPriceResponse{
		TicketPrices: rm.TicketPrices,
		TotalPrice:   rm.TotalPrice,
	}
}
