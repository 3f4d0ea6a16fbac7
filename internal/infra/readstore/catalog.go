package readstore

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"cinema-booking/internal/infra"
	"cinema-booking/internal/infra/db"
	"cinema-booking/internal/pkg/pgconv"
	"cinema-booking/internal/usecase/shared"
)

// CatalogReadStore serves the command-side validation reads for the
// screening catalog: screenings, movies, seats, and the lookup tables.
type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

const screeningByIDSQL = `
SELECT id, movie_id, room_id, projection_type_id, start_time, end_time, base_price
FROM screenings
WHERE id = $1`

func (s *CatalogReadStore) ScreeningByID(ctx context.Context, id int64) (*shared.ScreeningSnapshot, error) {
	var (
		snap      shared.ScreeningSnapshot
		basePrice pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, screeningByIDSQL, id).Scan(
		&snap.ID,
		&snap.MovieID,
		&snap.RoomID,
		&snap.ProjectionTypeID,
		&snap.StartTime,
		&snap.EndTime,
		&basePrice,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find screening", err)
	}
	// A NULL screening price means the movie's base price applies.
	snap.BasePrice, err = nullableDecimal(basePrice)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert screening base price", err)
	}
	return &snap, nil
}

const movieByIDSQL = `
SELECT id, title, duration_minutes, genre_id, base_price
FROM movies
WHERE id = $1`

func (s *CatalogReadStore) MovieByID(ctx context.Context, id int64) (*shared.MovieSnapshot, error) {
	var (
		snap        shared.MovieSnapshot
		durationMin int32
		basePrice   pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, movieByIDSQL, id).Scan(
		&snap.ID,
		&snap.Title,
		&durationMin,
		&snap.GenreID,
		&basePrice,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find movie", err)
	}
	snap.Duration = time.Duration(durationMin) * time.Minute
	snap.BasePrice, err = pgconv.DecimalFromNumeric(basePrice)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert movie base price", err)
	}
	return &snap, nil
}

const seatByIDSQL = `
SELECT id, room_id, row_number, seat_number, seat_type_id
FROM seats
WHERE id = $1`

func (s *CatalogReadStore) SeatByID(ctx context.Context, id int64) (*shared.SeatSnapshot, error) {
	var snap shared.SeatSnapshot
	err := s.db.QueryRow(ctx, seatByIDSQL, id).Scan(
		&snap.ID,
		&snap.RoomID,
		&snap.Row,
		&snap.Number,
		&snap.SeatTypeID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find seat", err)
	}
	return &snap, nil
}

const seatTypeByIDSQL = `
SELECT id, name, surcharge FROM seat_types WHERE id = $1`

func (s *CatalogReadStore) SeatTypeByID(ctx context.Context, id int64) (*shared.LookupSnapshot, error) {
	return s.surchargeLookup(ctx, seatTypeByIDSQL, id, "failed to find seat type")
}

const projectionTypeByIDSQL = `
SELECT id, name, surcharge FROM projection_types WHERE id = $1`

func (s *CatalogReadStore) ProjectionTypeByID(ctx context.Context, id int64) (*shared.LookupSnapshot, error) {
	return s.surchargeLookup(ctx, projectionTypeByIDSQL, id, "failed to find projection type")
}

func (s *CatalogReadStore) surchargeLookup(ctx context.Context, query string, id int64, failMsg string) (*shared.LookupSnapshot, error) {
	var (
		snap   shared.LookupSnapshot
		amount pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &amount)
	if err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	snap.Amount, err = pgconv.DecimalFromNumeric(amount)
	if err != nil {
		return nil, infra.WrapRepoErr(failMsg, err)
	}
	return &snap, nil
}

const personTypeByIDSQL = `
SELECT id, name, percent_discount FROM person_types WHERE id = $1`

const personTypeByNameSQL = `
SELECT id, name, percent_discount FROM person_types WHERE lower(name) = lower($1)`

func (s *CatalogReadStore) PersonTypeByID(ctx context.Context, id int64) (*shared.LookupSnapshot, error) {
	return s.personTypeLookup(ctx, personTypeByIDSQL, id)
}

func (s *CatalogReadStore) PersonTypeByName(ctx context.Context, name string) (*shared.LookupSnapshot, error) {
	return s.personTypeLookup(ctx, personTypeByNameSQL, name)
}

func (s *CatalogReadStore) personTypeLookup(ctx context.Context, query string, arg any) (*shared.LookupSnapshot, error) {
	var (
		snap    shared.LookupSnapshot
		percent pgtype.Numeric
	)
	err := s.db.QueryRow(ctx, query, arg).Scan(&snap.ID, &snap.Name, &percent)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find person type", err)
	}
	snap.Percent, err = pgconv.DecimalFromNumeric(percent)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert person type discount", err)
	}
	return &snap, nil
}

const takenSeatIDsSQL = `
SELECT seat_id
FROM tickets
WHERE screening_id = $1 AND seat_id = ANY($2) AND NOT cancelled
ORDER BY seat_id`

func (s *CatalogReadStore) TakenSeatIDs(ctx context.Context, screeningID int64, seatIDs []int64) ([]int64, error) {
	rows, err := s.db.Query(ctx, takenSeatIDsSQL, screeningID, seatIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query taken seats", err)
	}
	defer rows.Close()

	var taken []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan taken seat id", err)
		}
		taken = append(taken, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read taken seats", err)
	}
	return taken, nil
}

func nullableDecimal(pn pgtype.Numeric) (decimal.Decimal, error) {
	if !pn.Valid {
		return decimal.Zero, nil
	}
	return pgconv.DecimalFromNumeric(pn)
}
