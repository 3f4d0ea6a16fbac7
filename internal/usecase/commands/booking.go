package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/infra"
	"cinema-booking/internal/pkg/clock"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/queries"
	"cinema-booking/internal/usecase/shared"
)

type TicketRequest struct {
	SeatID     int64
	PersonType string
}

type BookingCommands interface {
	Create(ctx context.Context, userID, screeningID int64, tickets []TicketRequest) (*queries.BookingView, error)
	Confirm(ctx context.Context, bookingID int64) error
	Cancel(ctx context.Context, bookingID int64) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	reads          shared.CommandReads
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	reads shared.CommandReads,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		reads:          reads,
		factory:        factory,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

// Create validates everything before persisting anything. The
// application-level seat check is advisory; the storage-level unique
// index is what closes the race between concurrent requests.
func (c *bookingCommandsImpl) Create(ctx context.Context, userID, screeningID int64, tickets []TicketRequest) (*queries.BookingView, error) {
	if len(tickets) == 0 {
		return nil, errs.ErrNoTicketsRequested
	}
	if userID <= 0 || screeningID <= 0 {
		return nil, errs.ErrDomainValidation
	}
	for _, t := range tickets {
		if t.SeatID <= 0 || t.PersonType == "" {
			return nil, errs.ErrDomainValidation
		}
	}

	screeningCtx, err := shared.ResolveScreeningContext(ctx, c.reads, screeningID)
	if err != nil {
		return nil, err
	}

	specs := make([]booking.TicketSpec, len(tickets))
	seatIDs := make([]int64, len(tickets))
	for i, t := range tickets {
		ticketCtx, err := shared.ResolveTicketContext(ctx, c.reads, t.SeatID, t.PersonType)
		if err != nil {
			return nil, err
		}
		specs[i] = booking.TicketSpec{
			Seat:     ticketCtx.Seat,
			SeatType: ticketCtx.SeatType,
			Person:   ticketCtx.Person,
		}
		seatIDs[i] = t.SeatID
	}

	taken, err := c.reads.TakenSeatIDs(ctx, screeningID, seatIDs)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(taken) > 0 {
		return nil, errs.ErrSeatTaken
	}

	offers, err := c.reads.ActiveOffers(ctx, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entity, err := c.factory.CreateBooking(
		screeningCtx.Screening,
		screeningCtx.Movie,
		screeningCtx.Projection,
		userID,
		specs,
		offers,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	// The payment order id is minted here and handed to the provider;
	// its confirmation callback references the booking through it.
	entity.AttachPaymentOrder(uuid.New())

	var bookingID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Bookings().Create(ctx, entity)
		if createErr != nil {
			return createErr
		}
		bookingID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrSeatTaken)
		}
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Confirm moves pending to confirmed. Anything else is rejected: an
// unknown id as not-found, a terminal state as an invalid transition.
func (c *bookingCommandsImpl) Confirm(ctx context.Context, bookingID int64) error {
	if bookingID <= 0 {
		return errs.ErrDomainValidation
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		changed, err := tx.Bookings().UpdateStatus(ctx, bookingID, booking.StatusPending, booking.StatusConfirmed)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if changed {
			return nil
		}

		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		slog.Debug("confirm rejected by status guard", "booking_id", bookingID, "status", snap.Status)
		return errs.ErrInvalidTransition
	})
}

// Cancel releases the booking's seats; valid from pending and confirmed.
// A concurrent writer that moved the status first wins the race and this
// call reports the conflict.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID int64) error {
	if bookingID <= 0 {
		return errs.ErrDomainValidation
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if snap.Status == booking.StatusCancelled {
			return errs.ErrInvalidTransition
		}

		changed, err := tx.Bookings().UpdateStatus(ctx, bookingID, snap.Status, booking.StatusCancelled)
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
