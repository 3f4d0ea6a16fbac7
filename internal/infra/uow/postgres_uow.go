package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"cinema-booking/internal/domain/offer"
	"cinema-booking/internal/infra/db"
	"cinema-booking/internal/infra/readstore"
	"cinema-booking/internal/infra/repository"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// CommandReads returns pool-bound validation reads for use outside a
// transaction.
func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return NewCommandReads(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo  shared.BookingRepository
	commandReads shared.CommandReads
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = NewCommandReads(t.dbtx)
	}
	return t.commandReads
}

// commandReads fans the CommandReads interface out to the per-table
// read stores, all bound to the same pool or transaction.
type commandReads struct {
	catalog  *readstore.CatalogReadStore
	offers   *readstore.OfferReadStore
	bookings *readstore.BookingReadStore
	users    *readstore.UserReadStore
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &commandReads{
		catalog:  readstore.NewCatalogReadStore(dbtx),
		offers:   readstore.NewOfferReadStore(dbtx),
		bookings: readstore.NewBookingReadStore(dbtx),
		users:    readstore.NewUserReadStore(dbtx),
	}
}

func (r *commandReads) ScreeningByID(ctx context.Context, id int64) (*shared.ScreeningSnapshot, error) {
	return r.catalog.ScreeningByID(ctx, id)
}

func (r *commandReads) MovieByID(ctx context.Context, id int64) (*shared.MovieSnapshot, error) {
	return r.catalog.MovieByID(ctx, id)
}

func (r *commandReads) ProjectionTypeByID(ctx context.Context, id int64) (*shared.LookupSnapshot, error) {
	return r.catalog.ProjectionTypeByID(ctx, id)
}

func (r *commandReads) SeatByID(ctx context.Context, id int64) (*shared.SeatSnapshot, error) {
	return r.catalog.SeatByID(ctx, id)
}

func (r *commandReads) SeatTypeByID(ctx context.Context, id int64) (*shared.LookupSnapshot, error) {
	return r.catalog.SeatTypeByID(ctx, id)
}

func (r *commandReads) PersonTypeByID(ctx context.Context, id int64) (*shared.LookupSnapshot, error) {
	return r.catalog.PersonTypeByID(ctx, id)
}

func (r *commandReads) PersonTypeByName(ctx context.Context, name string) (*shared.LookupSnapshot, error) {
	return r.catalog.PersonTypeByName(ctx, name)
}

func (r *commandReads) ActiveOffers(ctx context.Context, at time.Time) ([]*offer.Offer, error) {
	return r.offers.ActiveOffers(ctx, at)
}

func (r *commandReads) TakenSeatIDs(ctx context.Context, screeningID int64, seatIDs []int64) ([]int64, error) {
	return r.catalog.TakenSeatIDs(ctx, screeningID, seatIDs)
}

func (r *commandReads) BookingByID(ctx context.Context, id int64) (*shared.BookingSnapshot, error) {
	return r.bookings.SnapshotByID(ctx, id)
}

func (r *commandReads) BookingByPaymentOrder(ctx context.Context, orderID uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.bookings.SnapshotByPaymentOrder(ctx, orderID)
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	return r.users.FindByEmail(ctx, email)
}
