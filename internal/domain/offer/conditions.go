package offer

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ConditionType string

const (
	ConditionDayOfWeek          ConditionType = "DayOfWeek"
	ConditionMinimumTicketCount ConditionType = "MinimumTicketCount"
)

type EffectType string

const (
	EffectFixed   EffectType = "fixed"
	EffectPercent EffectType = "percent"
)

// Condition is one requirement of an offer. Conditions of the DayOfWeek
// type combine with OR across the offer; every other type must hold
// individually.
type Condition struct {
	Type  ConditionType
	Value string
}

type Effect struct {
	Type  EffectType
	Value decimal.Decimal
}

// Context is the booking candidate an offer is evaluated against.
type Context struct {
	Now            time.Time
	ScreeningStart time.Time
	TicketCount    int
}

// Matches evaluates all conditions against the context. DayOfWeek
// conditions pass if any of them names the screening weekday; an offer
// with no DayOfWeek condition skips that check. Any other failing
// condition disqualifies the offer. Unknown condition types fail closed.
func (o *Offer) Matches(ctx Context) bool {
	dayConditions := 0
	dayMatched := false

	for _, c := range o.conditions {
		switch c.Type {
		case ConditionDayOfWeek:
			dayConditions++
			if matchesWeekday(c.Value, ctx.ScreeningStart.Weekday()) {
				dayMatched = true
			}
		case ConditionMinimumTicketCount:
			minCount, err := strconv.Atoi(strings.TrimSpace(c.Value))
			if err != nil || ctx.TicketCount < minCount {
				return false
			}
		default:
			return false
		}
	}

	if dayConditions > 0 && !dayMatched {
		return false
	}
	return true
}

// matchesWeekday accepts a weekday name ("Saturday") or a comma-separated
// set of names; matching is case-insensitive.
func matchesWeekday(value string, day time.Weekday) bool {
	for _, part := range strings.Split(value, ",") {
		if strings.EqualFold(strings.TrimSpace(part), day.String()) {
			return true
		}
	}
	return false
}
