package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/domain/offer"
)

// Minimal snapshots for command-side validation reads. The usecase layer
// turns these into domain entities before doing anything with them.

type ScreeningSnapshot struct {
	ID               int64
	MovieID          int64
	RoomID           int64
	ProjectionTypeID int64
	StartTime        time.Time
	EndTime          time.Time
	BasePrice        decimal.Decimal
}

type MovieSnapshot struct {
	ID        int64
	Title     string
	Duration  time.Duration
	GenreID   int64
	BasePrice decimal.Decimal
}

type SeatSnapshot struct {
	ID         int64
	RoomID     int64
	Row        int32
	Number     int32
	SeatTypeID int64
}

// LookupSnapshot covers the seat/projection/person type tables; Amount
// is the flat surcharge, Percent the percentage discount, depending on
// the kind.
type LookupSnapshot struct {
	ID      int64
	Name    string
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

type BookingSnapshot struct {
	ID             int64
	ScreeningID    int64
	UserID         int64
	Status         booking.Status
	BookingTime    time.Time
	PaymentOrderID *uuid.UUID
}

type UserSnapshot struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         string
}

// CommandReads are the validation reads a write use case needs. They run
// against the pool outside a transaction, or against the transaction via
// Tx.Reads when consistency with pending writes matters.
type CommandReads interface {
	ScreeningByID(ctx context.Context, id int64) (*ScreeningSnapshot, error)
	MovieByID(ctx context.Context, id int64) (*MovieSnapshot, error)
	ProjectionTypeByID(ctx context.Context, id int64) (*LookupSnapshot, error)
	SeatByID(ctx context.Context, id int64) (*SeatSnapshot, error)
	SeatTypeByID(ctx context.Context, id int64) (*LookupSnapshot, error)
	PersonTypeByID(ctx context.Context, id int64) (*LookupSnapshot, error)
	PersonTypeByName(ctx context.Context, name string) (*LookupSnapshot, error)

	// ActiveOffers returns offers whose validity window contains at,
	// ordered by priority descending with id ascending on ties.
	ActiveOffers(ctx context.Context, at time.Time) ([]*offer.Offer, error)

	// TakenSeatIDs returns the requested seat ids already referenced by
	// a ticket of a non-cancelled booking for the screening.
	TakenSeatIDs(ctx context.Context, screeningID int64, seatIDs []int64) ([]int64, error)

	BookingByID(ctx context.Context, id int64) (*BookingSnapshot, error)
	BookingByPaymentOrder(ctx context.Context, orderID uuid.UUID) (*BookingSnapshot, error)

	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}
