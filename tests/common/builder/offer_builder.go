//go:build unit || e2e

package builder

import (
	"time"

	"github.com/shopspring/decimal"

	"cinema-booking/internal/domain/offer"
)

type OfferBuilder struct {
	ID         int64
	Name       string
	IsActive   bool
	ValidFrom  *time.Time
	ValidTo    *time.Time
	Priority   int32
	Stackable  bool
	Conditions []offer.Condition
	Effects    []offer.Effect
}

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		ID:        1,
		Name:      "Test Offer",
		IsActive:  true,
		Priority:  0,
		Stackable: true,
		Effects: []offer.Effect{
			{Type: offer.EffectFixed, Value: decimal.RequireFromString("1.00")},
		},
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) WithFixedEffect(amount string) *OfferBuilder {
	b.Effects = []offer.Effect{{Type: offer.EffectFixed, Value: decimal.RequireFromString(amount)}}
	return b
}

func (b *OfferBuilder) WithPercentEffect(percent string) *OfferBuilder {
	b.Effects = []offer.Effect{{Type: offer.EffectPercent, Value: decimal.RequireFromString(percent)}}
	return b
}

func (b *OfferBuilder) AddEffect(kind offer.EffectType, value string) *OfferBuilder {
	b.Effects = append(b.Effects, offer.Effect{Type: kind, Value: decimal.RequireFromString(value)})
	return b
}

func (b *OfferBuilder) AddCondition(kind offer.ConditionType, value string) *OfferBuilder {
	b.Conditions = append(b.Conditions, offer.Condition{Type: kind, Value: value})
	return b
}

func (b *OfferBuilder) Build() (*offer.Offer, error) {
	return offer.NewOffer(
		b.ID, b.Name, b.IsActive, b.ValidFrom, b.ValidTo,
		b.Priority, b.Stackable, b.Conditions, b.Effects,
	)
}
