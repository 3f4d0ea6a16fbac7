package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cinema-booking/internal/usecase/queries"
)

type TicketResponse struct {
	ID         int64           `json:"id"`
	SeatID     int64           `json:"seatId"`
	SeatRow    int32           `json:"seatRow"`
	SeatNumber int32           `json:"seatNumber"`
	SeatType   string          `json:"seatType"`
	PersonType string          `json:"personType"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type AppliedOfferResponse struct {
	OfferID        int64           `json:"offerId"`
	OfferName      string          `json:"offerName"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

type BookingResponse struct {
	ID              int64                  `json:"id"`
	ScreeningID     int64                  `json:"screeningId"`
	MovieTitle      string                 `json:"movieTitle"`
	RoomID          int64                  `json:"roomId"`
	ScreeningStart  time.Time              `json:"screeningStart"`
	UserID          int64                  `json:"userId"`
	Status          string                 `json:"status"`
	BookingTime     time.Time              `json:"bookingTime"`
	BasePrice       decimal.Decimal        `json:"basePrice"`
	DiscountedPrice decimal.Decimal        `json:"discountedPrice"`
	PaymentOrderID  *uuid.UUID             `json:"paymentOrderId,omitempty"`
	Tickets         []TicketResponse       `json:"tickets"`
	AppliedOffers   []AppliedOfferResponse `json:"appliedOffers"`
}

type BookingListResponse struct {
	ID              int64           `json:"id"`
	ScreeningID     int64           `json:"screeningId"`
	MovieTitle      string          `json:"movieTitle"`
	ScreeningStart  time.Time       `json:"screeningStart"`
	Status          string          `json:"status"`
	TicketCount     int32           `json:"ticketCount"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
	BookingTime     time.Time       `json:"bookingTime"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	tickets := make([]TicketResponse, len(rm.Tickets))
	for i, t := range rm.Tickets {
		tickets[i] = TicketResponse{
			ID:         t.ID,
			SeatID:     t.SeatID,
			SeatRow:    t.SeatRow,
			SeatNumber: t.SeatNumber,
			SeatType:   t.SeatType,
			PersonType: t.PersonType,
			TotalPrice: t.TotalPrice,
		}
	}
	offers := make([]AppliedOfferResponse, len(rm.AppliedOffers))
	for i, o := range rm.AppliedOffers {
		offers[i] = AppliedOfferResponse{
			OfferID:        o.OfferID,
			OfferName:      o.OfferName,
			DiscountAmount: o.DiscountAmount,
		}
	}
	return &BookingResponse{
		ID:              rm.ID,
		ScreeningID:     rm.ScreeningID,
		MovieTitle:      rm.MovieTitle,
		RoomID:          rm.RoomID,
		ScreeningStart:  rm.ScreeningStart,
		UserID:          rm.UserID,
		Status:          rm.Status,
		BookingTime:     rm.BookingTime,
		BasePrice:       rm.BasePrice,
		DiscountedPrice: rm.DiscountedPrice,
		PaymentOrderID:  rm.PaymentOrderID,
		Tickets:         tickets,
		AppliedOffers:   offers,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		ScreeningID:     rm.ScreeningID,
		MovieTitle:      rm.MovieTitle,
		ScreeningStart:  rm.ScreeningStart,
		Status:          rm.Status,
		TicketCount:     rm.TicketCount,
		DiscountedPrice: rm.DiscountedPrice,
		BookingTime:     rm.BookingTime,
	}
}
