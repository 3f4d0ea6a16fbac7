package commands

import (
	"context"
	"log/slog"
	"time"

	"cinema-booking/internal/pkg/clock"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/shared"
)

// ExpiryCommands sweeps pending bookings whose hold window has lapsed,
// cancelling them and releasing their seats in one transaction.
type ExpiryCommands interface {
	ExpireStaleBookings(ctx context.Context) (int, error)
}

type expiryCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	hold  time.Duration
}

func NewExpiryCommands(uow shared.UnitOfWork, clk clock.Clock, hold time.Duration) ExpiryCommands {
	return &expiryCommandsImpl{uow: uow, clock: clk, hold: hold}
}

func (e *expiryCommandsImpl) ExpireStaleBookings(ctx context.Context) (int, error) {
	cutoff := e.clock.Now().Add(-e.hold)

	var expired []int64
	err := e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ids, sweepErr := tx.Bookings().CancelExpired(ctx, cutoff)
		if sweepErr != nil {
			return sweepErr
		}
		expired = ids
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if len(expired) > 0 {
		slog.Info("expired stale bookings", "count", len(expired), "cutoff", cutoff, "booking_ids", expired)
	}
	return len(expired), nil
}
