package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cinema-booking/internal/infra"
	"cinema-booking/internal/pkg/errs"
)

// Read models (DTO for read side)

type TicketView struct {
	ID         int64           `json:"id"`
	SeatID     int64           `json:"seat_id"`
	SeatRow    int32           `json:"seat_row"`
	SeatNumber int32           `json:"seat_number"`
	SeatType   string          `json:"seat_type"`
	PersonType string          `json:"person_type"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type AppliedOfferView struct {
	OfferID        int64           `json:"offer_id"`
	OfferName      string          `json:"offer_name"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

type BookingView struct {
	ID              int64              `json:"id"`
	ScreeningID     int64              `json:"screening_id"`
	MovieTitle      string             `json:"movie_title"`
	RoomID          int64              `json:"room_id"`
	ScreeningStart  time.Time          `json:"screening_start"`
	UserID          int64              `json:"user_id"`
	Status          string             `json:"status"`
	BookingTime     time.Time          `json:"booking_time"`
	BasePrice       decimal.Decimal    `json:"base_price"`
	DiscountedPrice decimal.Decimal    `json:"discounted_price"`
	PaymentOrderID  *uuid.UUID         `json:"payment_order_id,omitempty"`
	Tickets         []TicketView       `json:"tickets"`
	AppliedOffers   []AppliedOfferView `json:"applied_offers"`
}

type BookingListItem struct {
	ID              int64           `json:"id"`
	ScreeningID     int64           `json:"screening_id"`
	MovieTitle      string          `json:"movie_title"`
	ScreeningStart  time.Time       `json:"screening_start"`
	Status          string          `json:"status"`
	TicketCount     int32           `json:"ticket_count"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	BookingTime     time.Time       `json:"booking_time"`
}

type BookingQueries interface {
	GetByID(ctx context.Context, id int64) (*BookingView, error)
	ListByUser(ctx context.Context, userID int64) ([]*BookingListItem, error)
}

// BookingViewRepo is the read store behind BookingQueries.
type BookingViewRepo interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	FindByUserID(ctx context.Context, userID int64) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id int64) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID int64) ([]*BookingListItem, error) {
	return q.repo.FindByUserID(ctx, userID)
}
