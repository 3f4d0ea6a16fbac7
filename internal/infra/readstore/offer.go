package readstore

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"cinema-booking/internal/domain/offer"
	"cinema-booking/internal/infra"
	"cinema-booking/internal/infra/db"
	"cinema-booking/internal/pkg/pgconv"
)

type OfferReadStore struct {
	db db.DBTX
}

func NewOfferReadStore(dbtx db.DBTX) *OfferReadStore {
	return &OfferReadStore{db: dbtx}
}

const activeOffersSQL = `
SELECT id, name, is_active, valid_from, valid_to, priority, stackable
FROM offers
WHERE is_active
  AND (valid_from IS NULL OR valid_from <= $1)
  AND (valid_to IS NULL OR valid_to >= $1)
ORDER BY priority DESC, id ASC`

const offerConditionsSQL = `
SELECT offer_id, condition_type, condition_value
FROM offer_conditions
WHERE offer_id = ANY($1)
ORDER BY offer_id, id`

const offerEffectsSQL = `
SELECT offer_id, effect_type, value
FROM offer_effects
WHERE offer_id = ANY($1)
ORDER BY offer_id, id`

// ActiveOffers loads every offer whose validity window contains the
// given instant, with its conditions and effects attached. Ordering is
// priority descending, id ascending on ties, which is the order the
// evaluation engine applies them in.
func (s *OfferReadStore) ActiveOffers(ctx context.Context, at time.Time) ([]*offer.Offer, error) {
	rows, err := s.db.Query(ctx, activeOffersSQL, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active offers", err)
	}
	defer rows.Close()

	type offerRow struct {
		id        int64
		name      string
		isActive  bool
		validFrom pgtype.Timestamptz
		validTo   pgtype.Timestamptz
		priority  int32
		stackable bool
	}

	var (
		heads []offerRow
		ids   []int64
	)
	for rows.Next() {
		var h offerRow
		if err := rows.Scan(&h.id, &h.name, &h.isActive, &h.validFrom, &h.validTo, &h.priority, &h.stackable); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer", err)
		}
		heads = append(heads, h)
		ids = append(ids, h.id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read offers", err)
	}
	if len(heads) == 0 {
		return nil, nil
	}

	conditions, err := s.loadConditions(ctx, ids)
	if err != nil {
		return nil, err
	}
	effects, err := s.loadEffects(ctx, ids)
	if err != nil {
		return nil, err
	}

	offers := make([]*offer.Offer, 0, len(heads))
	for _, h := range heads {
		o, err := offer.NewOffer(
			h.id,
			h.name,
			h.isActive,
			pgconv.TimePtrFromPgtype(h.validFrom),
			pgconv.TimePtrFromPgtype(h.validTo),
			h.priority,
			h.stackable,
			conditions[h.id],
			effects[h.id],
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to build offer from row", err, infra.KindDBFailure)
		}
		offers = append(offers, o)
	}
	return offers, nil
}

func (s *OfferReadStore) loadConditions(ctx context.Context, offerIDs []int64) (map[int64][]offer.Condition, error) {
	rows, err := s.db.Query(ctx, offerConditionsSQL, offerIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query offer conditions", err)
	}
	defer rows.Close()

	out := make(map[int64][]offer.Condition)
	for rows.Next() {
		var (
			offerID  int64
			condType string
			value    string
		)
		if err := rows.Scan(&offerID, &condType, &value); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer condition", err)
		}
		out[offerID] = append(out[offerID], offer.Condition{
			Type:  offer.ConditionType(condType),
			Value: value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read offer conditions", err)
	}
	return out, nil
}

func (s *OfferReadStore) loadEffects(ctx context.Context, offerIDs []int64) (map[int64][]offer.Effect, error) {
	rows, err := s.db.Query(ctx, offerEffectsSQL, offerIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query offer effects", err)
	}
	defer rows.Close()

	out := make(map[int64][]offer.Effect)
	for rows.Next() {
		var (
			offerID    int64
			effectType string
			value      pgtype.Numeric
		)
		if err := rows.Scan(&offerID, &effectType, &value); err != nil {
			return nil, infra.WrapRepoErr("failed to scan offer effect", err)
		}
		dec, err := pgconv.DecimalFromNumeric(value)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert offer effect value", err)
		}
		out[offerID] = append(out[offerID], offer.Effect{
			Type:  offer.EffectType(effectType),
			Value: dec,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read offer effects", err)
	}
	return out, nil
}
