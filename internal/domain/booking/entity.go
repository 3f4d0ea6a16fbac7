package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cinema-booking/internal/domain/offer"
)

var (
	ErrNoTickets         = errors.New("booking requires at least one ticket")
	ErrDuplicateSeat     = errors.New("booking references the same seat twice")
	ErrSeatWrongRoom     = errors.New("seat does not belong to the screening room")
	ErrNotPending        = errors.New("booking is not pending")
	ErrAlreadyFinal      = errors.New("booking is already in a terminal state")
	ErrUnknownStatus     = errors.New("unknown booking status")
	ErrInvalidUser       = errors.New("user id must be positive")
	ErrInvalidScreening  = errors.New("screening id must be positive")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// Ticket reserves one seat of one screening for one person category.
type Ticket struct {
	id           int64
	seatID       int64
	personTypeID int64
	totalPrice   decimal.Decimal
}

func NewTicket(seatID, personTypeID int64, totalPrice decimal.Decimal) Ticket {
	return Ticket{seatID: seatID, personTypeID: personTypeID, totalPrice: totalPrice}
}

func ReconstructTicket(id, seatID, personTypeID int64, totalPrice decimal.Decimal) Ticket {
	return Ticket{id: id, seatID: seatID, personTypeID: personTypeID, totalPrice: totalPrice}
}

func (t Ticket) ID() int64                  { return t.id }
func (t Ticket) SeatID() int64              { return t.seatID }
func (t Ticket) PersonTypeID() int64        { return t.personTypeID }
func (t Ticket) TotalPrice() decimal.Decimal { return t.totalPrice }

// Booking owns its tickets and applied offers. Lifecycle:
// pending -> confirmed (payment) or pending/confirmed -> cancelled
// (explicit cancel, payment cancellation, expiry sweep). Terminal
// states never transition again; cancelled seats are re-bookable.
type Booking struct {
	id              int64
	screeningID     int64
	userID          int64
	status          Status
	bookingTime     time.Time
	basePrice       decimal.Decimal
	discountedPrice decimal.Decimal
	tickets         []Ticket
	appliedOffers   []offer.Applied
	paymentOrderID  *uuid.UUID
}

func ReconstructBooking(
	id, screeningID, userID int64,
	status Status,
	bookingTime time.Time,
	basePrice, discountedPrice decimal.Decimal,
	tickets []Ticket,
	appliedOffers []offer.Applied,
	paymentOrderID *uuid.UUID,
) *Booking {
	return &Booking{
		id:              id,
		screeningID:     screeningID,
		userID:          userID,
		status:          status,
		bookingTime:     bookingTime,
		basePrice:       basePrice,
		discountedPrice: discountedPrice,
		tickets:         tickets,
		appliedOffers:   appliedOffers,
		paymentOrderID:  paymentOrderID,
	}
}

func (b *Booking) ID() int64                        { return b.id }
func (b *Booking) ScreeningID() int64               { return b.screeningID }
func (b *Booking) UserID() int64                    { return b.userID }
func (b *Booking) Status() Status                   { return b.status }
func (b *Booking) BookingTime() time.Time           { return b.bookingTime }
func (b *Booking) BasePrice() decimal.Decimal       { return b.basePrice }
func (b *Booking) DiscountedPrice() decimal.Decimal { return b.discountedPrice }
func (b *Booking) Tickets() []Ticket                { return b.tickets }
func (b *Booking) AppliedOffers() []offer.Applied   { return b.appliedOffers }
func (b *Booking) PaymentOrderID() *uuid.UUID       { return b.paymentOrderID }

func (b *Booking) IsPending() bool   { return b.status == StatusPending }
func (b *Booking) IsConfirmed() bool { return b.status == StatusConfirmed }
func (b *Booking) IsCancelled() bool { return b.status == StatusCancelled }

// Confirm is valid only from pending.
func (b *Booking) Confirm() error {
	if b.status != StatusPending {
		return ErrNotPending
	}
	b.status = StatusConfirmed
	return nil
}

// Cancel is valid from pending and confirmed; cancelling releases the
// booking's seats.
func (b *Booking) Cancel() error {
	if b.status == StatusCancelled {
		return ErrAlreadyFinal
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) AttachPaymentOrder(orderID uuid.UUID) {
	id := orderID
	b.paymentOrderID = &id
}

// ExpiredAt reports whether a pending booking has outlived its hold.
func (b *Booking) ExpiredAt(now time.Time, hold time.Duration) bool {
	return b.status == StatusPending && b.bookingTime.Before(now.Add(-hold))
}
