package queries

import (
	"context"

	"github.com/shopspring/decimal"

	"cinema-booking/internal/domain/pricing"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/shared"
)

type TicketPriceRequest struct {
	SeatID     int64
	PersonType string
}

type BulkPriceResult struct {
	TicketPrices []decimal.Decimal `json:"ticket_prices"`
	TotalPrice   decimal.Decimal   `json:"total_price"`
}

// PricingQueries computes catalog-only prices, no offers involved.
// Deterministic for a given catalog state.
type PricingQueries interface {
	CalculatePrice(ctx context.Context, screeningID, seatID int64, personType string) (decimal.Decimal, error)
	CalculateBulk(ctx context.Context, screeningID int64, tickets []TicketPriceRequest) (*BulkPriceResult, error)
}

type pricingQueriesImpl struct {
	reads      shared.CommandReads
	calculator pricing.Calculator
}

func NewPricingQueries(reads shared.CommandReads, calculator pricing.Calculator) PricingQueries {
	return &pricingQueriesImpl{reads: reads, calculator: calculator}
}

func (q *pricingQueriesImpl) CalculatePrice(ctx context.Context, screeningID, seatID int64, personType string) (decimal.Decimal, error) {
	result, err := q.CalculateBulk(ctx, screeningID, []TicketPriceRequest{{SeatID: seatID, PersonType: personType}})
	if err != nil {
		return decimal.Zero, err
	}
	return result.TicketPrices[0], nil
}

func (q *pricingQueriesImpl) CalculateBulk(ctx context.Context, screeningID int64, tickets []TicketPriceRequest) (*BulkPriceResult, error) {
	if screeningID <= 0 {
		return nil, errs.ErrDomainValidation
	}
	if len(tickets) == 0 {
		return nil, errs.ErrNoTicketsRequested
	}
	for _, t := range tickets {
		if t.SeatID <= 0 || t.PersonType == "" {
			return nil, errs.ErrDomainValidation
		}
	}

	resolved, err := shared.ResolveScreeningContext(ctx, q.reads, screeningID)
	if err != nil {
		return nil, err
	}

	inputs := make([]pricing.TicketInput, len(tickets))
	for i, t := range tickets {
		ticketCtx, err := shared.ResolveTicketContext(ctx, q.reads, t.SeatID, t.PersonType)
		if err != nil {
			return nil, err
		}
		if !ticketCtx.Seat.InRoom(resolved.Screening.RoomID()) {
			return nil, errs.ErrSeatNotInRoom
		}
		inputs[i] = pricing.TicketInput{
			Screening:  resolved.Screening,
			Movie:      resolved.Movie,
			Projection: resolved.Projection,
			SeatType:   ticketCtx.SeatType,
			Person:     ticketCtx.Person,
		}
	}

	prices, total := q.calculator.BulkPrice(inputs)
	return &BulkPriceResult{TicketPrices: prices, TotalPrice: total}, nil
}
