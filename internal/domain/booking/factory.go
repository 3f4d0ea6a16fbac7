package booking

import (
	"cinema-booking/internal/domain/catalog"
	"cinema-booking/internal/domain/offer"
	"cinema-booking/internal/domain/pricing"
	"cinema-booking/internal/pkg/clock"
)

// TicketSpec is one requested seat with its resolved catalog entities.
type TicketSpec struct {
	Seat     *catalog.Seat
	SeatType *catalog.SeatType
	Person   *catalog.PersonType
}

type Factory struct {
	Clock       clock.Clock
	Calculator  pricing.Calculator
	OfferEngine *offer.Engine
}

func NewFactory(clk clock.Clock, calc pricing.Calculator, engine *offer.Engine) *Factory {
	return &Factory{
		Clock:       clk,
		Calculator:  calc,
		OfferEngine: engine,
	}
}

// CreateBooking prices the requested tickets, evaluates the candidate
// offers, and assembles a pending booking. All validation happens before
// anything is priced; the seat-exclusivity check against other bookings
// is the storage layer's job.
func (f *Factory) CreateBooking(
	screening *catalog.Screening,
	movie *catalog.Movie,
	projection *catalog.ProjectionType,
	userID int64,
	specs []TicketSpec,
	offers []*offer.Offer,
) (*Booking, error) {
	if screening == nil || screening.ID() <= 0 {
		return nil, ErrInvalidScreening
	}
	if userID <= 0 {
		return nil, ErrInvalidUser
	}
	if len(specs) == 0 {
		return nil, ErrNoTickets
	}

	seen := make(map[int64]struct{}, len(specs))
	for _, spec := range specs {
		if !spec.Seat.InRoom(screening.RoomID()) {
			return nil, ErrSeatWrongRoom
		}
		if _, dup := seen[spec.Seat.ID()]; dup {
			return nil, ErrDuplicateSeat
		}
		seen[spec.Seat.ID()] = struct{}{}
	}

	inputs := make([]pricing.TicketInput, len(specs))
	for i, spec := range specs {
		inputs[i] = pricing.TicketInput{
			Screening:  screening,
			Movie:      movie,
			Projection: projection,
			SeatType:   spec.SeatType,
			Person:     spec.Person,
		}
	}
	prices, total := f.Calculator.BulkPrice(inputs)

	tickets := make([]Ticket, len(specs))
	for i, spec := range specs {
		tickets[i] = NewTicket(spec.Seat.ID(), spec.Person.ID(), prices[i])
	}

	now := f.Clock.Now()
	evaluated := f.OfferEngine.Evaluate(offers, offer.Context{
		Now:            now,
		ScreeningStart: screening.StartTime(),
		TicketCount:    len(tickets),
	}, total)

	return &Booking{
		screeningID:     screening.ID(),
		userID:          userID,
		status:          StatusPending,
		bookingTime:     now,
		basePrice:       total,
		discountedPrice: evaluated.DiscountedTotal,
		tickets:         tickets,
		appliedOffers:   evaluated.Applied,
	}, nil
}
