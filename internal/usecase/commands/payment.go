package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/infra"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/shared"
)

// PaymentCommands handles callbacks from the payment provider. Both
// notifications are idempotent: providers retry, and a redelivered
// callback must not flip a booking twice.
type PaymentCommands interface {
	ConfirmPayment(ctx context.Context, orderID uuid.UUID) error
	CancelPayment(ctx context.Context, bookingID int64) error
}

type paymentCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewPaymentCommands(uow shared.UnitOfWork) PaymentCommands {
	return &paymentCommandsImpl{uow: uow}
}

func (p *paymentCommandsImpl) ConfirmPayment(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return errs.ErrDomainValidation
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByPaymentOrder(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrPaymentOrderNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		switch snap.Status {
		case booking.StatusConfirmed:
			// Redelivered notification, nothing to do.
			return nil
		case booking.StatusCancelled:
			return errs.ErrInvalidTransition
		}

		changed, err := tx.Bookings().UpdateStatus(ctx, snap.ID, booking.StatusPending, booking.StatusConfirmed)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !changed {
			slog.Warn("payment confirmation lost the status race", "booking_id", snap.ID, "order_id", orderID)
			return errs.ErrInvalidTransition
		}
		return nil
	})
}

func (p *paymentCommandsImpl) CancelPayment(ctx context.Context, bookingID int64) error {
	if bookingID <= 0 {
		return errs.ErrDomainValidation
	}

	return p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		switch snap.Status {
		case booking.StatusCancelled:
			return nil
		case booking.StatusConfirmed:
			return errs.ErrInvalidTransition
		}

		changed, err := tx.Bookings().UpdateStatus(ctx, bookingID, booking.StatusPending, booking.StatusCancelled)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !changed {
			return errs.ErrInvalidTransition
		}
		if err := tx.Bookings().ReleaseSeats(ctx, bookingID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
