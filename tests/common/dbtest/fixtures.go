//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) int64 {
	t.Helper()

	ctx := context.Background()
	var userID int64
	err := db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id`,
		email, testPasswordHash, role).Scan(&userID)
	require.NoError(t, err)

	return userID
}

// CatalogFixture is one bookable screening with enough seats and
// lookup rows for most scenarios.
type CatalogFixture struct {
	GenreID          int64
	MovieID          int64
	RoomID           int64
	ProjectionTypeID int64
	RegularSeatType  int64
	VIPSeatType      int64
	AdultPersonType  int64
	ChildPersonType  int64
	ScreeningID      int64
	SeatIDs          []int64
	VIPSeatID        int64
	ScreeningStart   time.Time
}

// SeedCatalog inserts a screening on a Friday evening with a 12.00
// screening price over a 10.00 movie, Regular seats plus one VIP seat
// with a 5.00 surcharge, and Adult (0%) / Child (30%) person types.
func SeedCatalog(t *testing.T, db DBLike) *CatalogFixture {
	t.Helper()
	ctx := context.Background()
	f := &CatalogFixture{
		ScreeningStart: time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC),
	}

	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO genres (name) VALUES ('Drama') RETURNING id`).Scan(&f.GenreID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO movies (title, duration_minutes, genre_id, base_price)
		 VALUES ('The Long Night', 120, $1, 10.00) RETURNING id`, f.GenreID).Scan(&f.MovieID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO rooms (name) VALUES ('Room 1') RETURNING id`).Scan(&f.RoomID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO projection_types (name, surcharge) VALUES ('Digital', 0) RETURNING id`).Scan(&f.ProjectionTypeID))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO seat_types (name, surcharge) VALUES ('Regular', 0) RETURNING id`).Scan(&f.RegularSeatType))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO seat_types (name, surcharge) VALUES ('VIP', 5.00) RETURNING id`).Scan(&f.VIPSeatType))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO person_types (name, percent_discount) VALUES ('Adult', 0) RETURNING id`).Scan(&f.AdultPersonType))
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO person_types (name, percent_discount) VALUES ('Child', 30) RETURNING id`).Scan(&f.ChildPersonType))

	for n := 1; n <= 5; n++ {
		var seatID int64
		require.NoError(t, db.QueryRow(ctx,
			`INSERT INTO seats (room_id, row_number, seat_number, seat_type_id)
			 VALUES ($1, 1, $2, $3) RETURNING id`,
			f.RoomID, n, f.RegularSeatType).Scan(&seatID))
		f.SeatIDs = append(f.SeatIDs, seatID)
	}
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO seats (room_id, row_number, seat_number, seat_type_id)
		 VALUES ($1, 2, 1, $2) RETURNING id`,
		f.RoomID, f.VIPSeatType).Scan(&f.VIPSeatID))

	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO screenings (movie_id, room_id, projection_type_id, start_time, end_time, base_price)
		 VALUES ($1, $2, $3, $4, $5, 12.00) RETURNING id`,
		f.MovieID, f.RoomID, f.ProjectionTypeID,
		f.ScreeningStart, f.ScreeningStart.Add(2*time.Hour)).Scan(&f.ScreeningID))

	return f
}

type OfferEffectSpec struct {
	Type  string
	Value decimal.Decimal
}

type OfferConditionSpec struct {
	Type  string
	Value string
}

func SeedOffer(t *testing.T, db DBLike, name string, priority int32, stackable bool, conditions []OfferConditionSpec, effects []OfferEffectSpec) int64 {
	t.Helper()
	ctx := context.Background()

	var offerID int64
	require.NoError(t, db.QueryRow(ctx,
		`INSERT INTO offers (name, is_active, priority, stackable)
		 VALUES ($1, TRUE, $2, $3) RETURNING id`,
		name, priority, stackable).Scan(&offerID))

	for _, c := range conditions {
		_, err := db.Exec(ctx,
			`INSERT INTO offer_conditions (offer_id, condition_type, condition_value) VALUES ($1, $2, $3)`,
			offerID, c.Type, c.Value)
		require.NoError(t, err)
	}
	for _, e := range effects {
		_, err := db.Exec(ctx,
			`INSERT INTO offer_effects (offer_id, effect_type, value) VALUES ($1, $2, $3)`,
			offerID, e.Type, e.Value)
		require.NoError(t, err)
	}
	return offerID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}
	return nil
}
