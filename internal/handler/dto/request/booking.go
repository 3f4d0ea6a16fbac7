package request

import "cinema-booking/internal/usecase/commands"

type TicketRequest struct {
	SeatID     int64  `json:"seatId" binding:"required,gt=0"`
	PersonType string `json:"personType" binding:"required"`
}

type CreateBookingRequest struct {
	ScreeningID int64           `json:"screeningId" binding:"required,gt=0"`
	Tickets     []TicketRequest `json:"tickets" binding:"required,min=1,dive"`
}

func (r *CreateBookingRequest) ToCommand() []commands.TicketRequest {
	tickets := make([]commands.TicketRequest, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = commands.TicketRequest{SeatID: t.SeatID, PersonType: t.PersonType}
	}
	return tickets
}
