package offer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidID     = errors.New("offer id must be positive")
	ErrEmptyName     = errors.New("offer name must not be empty")
	ErrInvalidWindow = errors.New("offer validFrom must not be after validTo")
	ErrNoEffects     = errors.New("offer must have at least one effect")
)

// Offer is a named, time-boxed, conditionally applicable discount rule.
type Offer struct {
	id         int64
	name       string
	isActive   bool
	validFrom  *time.Time
	validTo    *time.Time
	priority   int32
	stackable  bool
	conditions []Condition
	effects    []Effect
}

func NewOffer(
	id int64,
	name string,
	isActive bool,
	validFrom, validTo *time.Time,
	priority int32,
	stackable bool,
	conditions []Condition,
	effects []Effect,
) (*Offer, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if validFrom != nil && validTo != nil && validFrom.After(*validTo) {
		return nil, ErrInvalidWindow
	}
	if len(effects) == 0 {
		return nil, ErrNoEffects
	}
	return &Offer{
		id:         id,
		name:       name,
		isActive:   isActive,
		validFrom:  validFrom,
		validTo:    validTo,
		priority:   priority,
		stackable:  stackable,
		conditions: conditions,
		effects:    effects,
	}, nil
}

func (o *Offer) ID() int64               { return o.id }
func (o *Offer) Name() string            { return o.name }
func (o *Offer) Priority() int32         { return o.priority }
func (o *Offer) IsStackable() bool       { return o.stackable }
func (o *Offer) Conditions() []Condition { return o.conditions }
func (o *Offer) Effects() []Effect       { return o.effects }

func (o *Offer) IsActiveAt(t time.Time) bool {
	if !o.isActive {
		return false
	}
	if o.validFrom != nil && t.Before(*o.validFrom) {
		return false
	}
	if o.validTo != nil && t.After(*o.validTo) {
		return false
	}
	return true
}

// Discount computes the offer's total discount against the pre-discount
// booking price: all fixed effects summed, plus the summed percent
// effects applied to the pre-discount total. The result is clamped to
// [0, preTotal].
func (o *Offer) Discount(preTotal decimal.Decimal) decimal.Decimal {
	fixed := decimal.Zero
	percent := decimal.Zero
	for _, e := range o.effects {
		switch e.Type {
		case EffectFixed:
			fixed = fixed.Add(e.Value)
		case EffectPercent:
			percent = percent.Add(e.Value)
		}
	}

	discount := fixed.Add(preTotal.Mul(percent).Div(decimal.NewFromInt(100))).Round(2)
	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(preTotal) {
		return preTotal
	}
	return discount
}
