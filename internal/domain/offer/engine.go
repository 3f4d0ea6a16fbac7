package offer

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Applied is the immutable record of one offer's effect on one booking.
type Applied struct {
	OfferID   int64
	OfferName string
	Discount  decimal.Decimal
}

type Result struct {
	Applied         []Applied
	TotalDiscount   decimal.Decimal
	DiscountedTotal decimal.Decimal
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate walks the offers in priority order (descending, insertion
// order on ties) and accumulates every stackable offer whose conditions
// hold. A non-stackable offer that applies stops evaluation of the
// offers behind it; anything applied before it stays applied. Offers
// whose discount works out to zero are not recorded.
func (e *Engine) Evaluate(offers []*Offer, ctx Context, preTotal decimal.Decimal) Result {
	ordered := make([]*Offer, len(offers))
	copy(ordered, offers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() > ordered[j].Priority()
	})

	result := Result{
		Applied:       []Applied{},
		TotalDiscount: decimal.Zero,
	}

	for _, o := range ordered {
		if !o.IsActiveAt(ctx.Now) {
			continue
		}
		if !o.Matches(ctx) {
			continue
		}

		discount := o.Discount(preTotal)
		if discount.IsZero() {
			continue
		}

		result.Applied = append(result.Applied, Applied{
			OfferID:   o.ID(),
			OfferName: o.Name(),
			Discount:  discount,
		})
		result.TotalDiscount = result.TotalDiscount.Add(discount)

		if !o.IsStackable() {
			break
		}
	}

	discounted := preTotal.Sub(result.TotalDiscount)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	result.DiscountedTotal = discounted
	return result
}
