package request

import "cinema-booking/internal/usecase/queries"

type BulkPriceRequest struct {
	ScreeningID int64           `json:"screeningId" binding:"required,gt=0"`
	Tickets     []TicketRequest `json:"tickets" binding:"required,min=1,dive"`
}

func (r *BulkPriceRequest) ToQuery() []queries.TicketPriceRequest {
	tickets := make([]queries.TicketPriceRequest, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = queries.TicketPriceRequest{SeatID: t.SeatID, PersonType: t.PersonType}
	}
	return tickets
}
