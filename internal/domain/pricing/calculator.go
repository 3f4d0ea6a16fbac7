package pricing

import (
	"github.com/shopspring/decimal"

	"cinema-booking/internal/domain/catalog"
)

var hundred = decimal.NewFromInt(100)

// TicketInput is the fully resolved catalog context for pricing a single
// ticket. Resolution (and not-found handling) happens in the usecase
// layer; the calculator itself is pure.
type TicketInput struct {
	Screening  *catalog.Screening
	Movie      *catalog.Movie
	Projection *catalog.ProjectionType
	SeatType   *catalog.SeatType
	Person     *catalog.PersonType
}

type Calculator interface {
	TicketPrice(in TicketInput) decimal.Decimal
	BulkPrice(in []TicketInput) ([]decimal.Decimal, decimal.Decimal)
}

type StandardCalculator struct{}

func NewStandardCalculator() *StandardCalculator {
	return &StandardCalculator{}
}

// TicketPrice applies the pricing steps in their fixed order:
// base (screening or movie fallback), projection surcharge, seat-type
// surcharge, person-type percentage, then a 2-decimal round
// (half away from zero).
func (c *StandardCalculator) TicketPrice(in TicketInput) decimal.Decimal {
	price := in.Screening.EffectiveBasePrice(in.Movie)
	price = price.Add(in.Projection.Surcharge())
	price = price.Add(in.SeatType.Surcharge())
	price = price.Mul(hundred.Sub(in.Person.PercentDiscount())).Div(hundred)
	return price.Round(2)
}

// BulkPrice returns each rounded ticket price and their sum. The total is
// the sum of the rounded per-ticket prices, not a rounded sum.
func (c *StandardCalculator) BulkPrice(in []TicketInput) ([]decimal.Decimal, decimal.Decimal) {
	prices := make([]decimal.Decimal, len(in))
	total := decimal.Zero
	for i, ticket := range in {
		prices[i] = c.TicketPrice(ticket)
		total = total.Add(prices[i])
	}
	return prices, total
}
