//go:build unit

package offer_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking/internal/domain/offer"
	"cinema-booking/tests/common/builder"
)

var (
	// a Friday evening screening
	screeningStart = time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC)
	evalTime       = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func defaultContext(ticketCount int) offer.Context {
	return offer.Context{
		Now:            evalTime,
		ScreeningStart: screeningStart,
		TicketCount:    ticketCount,
	}
}

func mustBuild(t *testing.T, b *builder.OfferBuilder) *offer.Offer {
	t.Helper()
	o, err := b.Build()
	require.NoError(t, err)
	return o
}

func TestOffer_Matches(t *testing.T) {
	testCases := []struct {
		name    string
		build   func(*builder.OfferBuilder)
		ctx     offer.Context
		matches bool
	}{
		{
			name:    "no conditions always matches",
			build:   func(b *builder.OfferBuilder) {},
			ctx:     defaultContext(1),
			matches: true,
		},
		{
			name: "day-of-week matching the screening weekday",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionDayOfWeek, "Friday")
			},
			ctx:     defaultContext(1),
			matches: true,
		},
		{
			name: "day-of-week conditions OR together",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionDayOfWeek, "Monday")
				b.AddCondition(offer.ConditionDayOfWeek, "Friday")
			},
			ctx:     defaultContext(1),
			matches: true,
		},
		{
			name: "day-of-week set in one condition value",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionDayOfWeek, "Saturday,Sunday,Friday")
			},
			ctx:     defaultContext(1),
			matches: true,
		},
		{
			name: "no day-of-week condition hits",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionDayOfWeek, "Monday")
				b.AddCondition(offer.ConditionDayOfWeek, "Tuesday")
			},
			ctx:     defaultContext(1),
			matches: false,
		},
		{
			name: "minimum ticket count met",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionMinimumTicketCount, "3")
			},
			ctx:     defaultContext(3),
			matches: true,
		},
		{
			name: "minimum ticket count not met disqualifies",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionMinimumTicketCount, "3")
			},
			ctx:     defaultContext(2),
			matches: false,
		},
		{
			name: "different condition types AND together",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionDayOfWeek, "Friday")
				b.AddCondition(offer.ConditionMinimumTicketCount, "5")
			},
			ctx:     defaultContext(2),
			matches: false,
		},
		{
			name: "malformed minimum count fails closed",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionMinimumTicketCount, "three")
			},
			ctx:     defaultContext(10),
			matches: false,
		},
		{
			name: "unknown condition type fails closed",
			build: func(b *builder.OfferBuilder) {
				b.AddCondition(offer.ConditionType("MoonPhase"), "full")
			},
			ctx:     defaultContext(1),
			matches: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := mustBuild(t, builder.NewOfferBuilder().With(tc.build))
			assert.Equal(t, tc.matches, o.Matches(tc.ctx))
		})
	}
}

func TestOffer_Discount(t *testing.T) {
	preTotal := decimal.RequireFromString("40.00")

	testCases := []struct {
		name     string
		build    func(*builder.OfferBuilder)
		expected string
	}{
		{
			name:     "fixed effect",
			build:    func(b *builder.OfferBuilder) { b.WithFixedEffect("5.00") },
			expected: "5.00",
		},
		{
			name:     "percent effect",
			build:    func(b *builder.OfferBuilder) { b.WithPercentEffect("10") },
			expected: "4.00",
		},
		{
			name: "effects are additive",
			build: func(b *builder.OfferBuilder) {
				b.WithFixedEffect("5.00").AddEffect(offer.EffectPercent, "10")
			},
			expected: "9.00",
		},
		{
			name:     "discount clamps to pre-discount total",
			build:    func(b *builder.OfferBuilder) { b.WithFixedEffect("100.00") },
			expected: "40.00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := mustBuild(t, builder.NewOfferBuilder().With(tc.build))
			got := o.Discount(preTotal)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"expected %s, got %s", tc.expected, got)
		})
	}
}

func TestEngine_Evaluate(t *testing.T) {
	engine := offer.NewEngine()
	preTotal := decimal.RequireFromString("40.00")

	t.Run("stackable offers accumulate", func(t *testing.T) {
		a := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 1
			b.Priority = 10
		}).WithFixedEffect("5.00"))
		b := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 2
			b.Priority = 5
		}).WithPercentEffect("10"))

		result := engine.Evaluate([]*offer.Offer{a, b}, defaultContext(2), preTotal)

		require.Len(t, result.Applied, 2)
		assert.Equal(t, int64(1), result.Applied[0].OfferID)
		assert.Equal(t, int64(2), result.Applied[1].OfferID)
		assert.True(t, result.TotalDiscount.Equal(decimal.RequireFromString("9.00")))
		assert.True(t, result.DiscountedTotal.Equal(decimal.RequireFromString("31.00")))
	})

	t.Run("non-stackable high priority offer wins alone", func(t *testing.T) {
		exclusive := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 1
			b.Priority = 10
			b.Stackable = false
		}).WithFixedEffect("5.00"))
		stackable := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 2
			b.Priority = 5
		}).WithPercentEffect("10"))

		result := engine.Evaluate([]*offer.Offer{stackable, exclusive}, defaultContext(2), preTotal)

		require.Len(t, result.Applied, 1)
		assert.Equal(t, int64(1), result.Applied[0].OfferID)
		assert.True(t, result.TotalDiscount.Equal(decimal.RequireFromString("5.00")))
	})

	t.Run("non-stackable offer is only exclusive going forward", func(t *testing.T) {
		first := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 1
			b.Priority = 20
		}).WithFixedEffect("2.00"))
		exclusive := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 2
			b.Priority = 10
			b.Stackable = false
		}).WithFixedEffect("5.00"))
		never := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 3
			b.Priority = 5
		}).WithFixedEffect("1.00"))

		result := engine.Evaluate([]*offer.Offer{first, exclusive, never}, defaultContext(2), preTotal)

		require.Len(t, result.Applied, 2)
		assert.Equal(t, int64(1), result.Applied[0].OfferID)
		assert.Equal(t, int64(2), result.Applied[1].OfferID)
		assert.True(t, result.TotalDiscount.Equal(decimal.RequireFromString("7.00")))
	})

	t.Run("priority ties keep insertion order", func(t *testing.T) {
		a := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 7
			b.Priority = 5
		}).WithFixedEffect("1.00"))
		b := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 3
			b.Priority = 5
		}).WithFixedEffect("2.00"))

		result := engine.Evaluate([]*offer.Offer{a, b}, defaultContext(1), preTotal)

		require.Len(t, result.Applied, 2)
		assert.Equal(t, int64(7), result.Applied[0].OfferID)
		assert.Equal(t, int64(3), result.Applied[1].OfferID)
	})

	t.Run("inactive and out-of-window offers are skipped", func(t *testing.T) {
		inactive := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 1
			b.IsActive = false
		}))
		expired := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 2
			past := evalTime.Add(-time.Hour)
			b.ValidTo = &past
		}))
		upcoming := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 3
			future := evalTime.Add(time.Hour)
			b.ValidFrom = &future
		}))

		result := engine.Evaluate([]*offer.Offer{inactive, expired, upcoming}, defaultContext(1), preTotal)
		assert.Empty(t, result.Applied)
		assert.True(t, result.DiscountedTotal.Equal(preTotal))
	})

	t.Run("zero discount offers are not recorded", func(t *testing.T) {
		zero := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 1
			b.Priority = 10
			b.Stackable = false
		}).WithFixedEffect("0.00"))
		real := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 2
			b.Priority = 5
		}).WithFixedEffect("3.00"))

		result := engine.Evaluate([]*offer.Offer{zero, real}, defaultContext(1), preTotal)

		// the zero-discount exclusive offer is skipped entirely, so the
		// stackable one behind it still applies
		require.Len(t, result.Applied, 1)
		assert.Equal(t, int64(2), result.Applied[0].OfferID)
	})

	t.Run("stacked discounts floor the total at zero", func(t *testing.T) {
		small := decimal.RequireFromString("6.00")
		a := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 1
			b.Priority = 10
		}).WithFixedEffect("4.00"))
		b := mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.ID = 2
			b.Priority = 5
		}).WithFixedEffect("4.00"))

		result := engine.Evaluate([]*offer.Offer{a, b}, defaultContext(1), small)

		require.Len(t, result.Applied, 2)
		assert.True(t, result.TotalDiscount.Equal(decimal.RequireFromString("8.00")))
		assert.True(t, result.DiscountedTotal.IsZero())
	})

	t.Run("evaluation is deterministic", func(t *testing.T) {
		offers := []*offer.Offer{
			mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) { b.ID = 1; b.Priority = 3 })),
			mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) { b.ID = 2; b.Priority = 9 })),
			mustBuild(t, builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) { b.ID = 3; b.Priority = 9 })),
		}
		first := engine.Evaluate(offers, defaultContext(2), preTotal)
		for range 5 {
			again := engine.Evaluate(offers, defaultContext(2), preTotal)
			assert.Equal(t, first.Applied, again.Applied)
			assert.True(t, first.TotalDiscount.Equal(again.TotalDiscount))
		}
	})
}
