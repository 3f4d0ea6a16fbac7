package shared

import (
	"context"

	"cinema-booking/internal/domain/catalog"
	"cinema-booking/internal/infra"
	"cinema-booking/internal/pkg/errs"
)

// ScreeningContext is the per-screening part of the pricing context,
// shared by every ticket in one request.
type ScreeningContext struct {
	Screening  *catalog.Screening
	Movie      *catalog.Movie
	Projection *catalog.ProjectionType
}

// TicketContext is the per-ticket part: the seat, its type, and the
// patron category.
type TicketContext struct {
	Seat     *catalog.Seat
	SeatType *catalog.SeatType
	Person   *catalog.PersonType
}

func ResolveScreeningContext(ctx context.Context, reads CommandReads, screeningID int64) (*ScreeningContext, error) {
	screeningSnap, err := reads.ScreeningByID(ctx, screeningID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrScreeningNotFound)
	}
	movieSnap, err := reads.MovieByID(ctx, screeningSnap.MovieID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrMovieNotFound)
	}
	projectionSnap, err := reads.ProjectionTypeByID(ctx, screeningSnap.ProjectionTypeID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrScreeningNotFound)
	}

	screening, err := screeningSnap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	movie, err := movieSnap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	projection, err := projectionSnap.ToProjectionType()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	return &ScreeningContext{Screening: screening, Movie: movie, Projection: projection}, nil
}

func ResolveTicketContext(ctx context.Context, reads CommandReads, seatID int64, personType string) (*TicketContext, error) {
	seatSnap, err := reads.SeatByID(ctx, seatID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrSeatNotFound)
	}
	seatTypeSnap, err := reads.SeatTypeByID(ctx, seatSnap.SeatTypeID)
	if err != nil {
		return nil, markNotFound(err, errs.ErrSeatNotFound)
	}
	personSnap, err := reads.PersonTypeByName(ctx, personType)
	if err != nil {
		return nil, markNotFound(err, errs.ErrPersonTypeNotFound)
	}

	seat, err := seatSnap.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	seatType, err := seatTypeSnap.ToSeatType()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	person, err := personSnap.ToPersonType()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	return &TicketContext{Seat: seat, SeatType: seatType, Person: person}, nil
}

func markNotFound(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
