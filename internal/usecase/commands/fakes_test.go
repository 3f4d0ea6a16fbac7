//go:build unit

package commands_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/domain/offer"
	"cinema-booking/internal/infra"
	"cinema-booking/internal/usecase/queries"
	"cinema-booking/internal/usecase/shared"
)

// Hand-rolled fakes. Each method delegates to an optional function
// field; a nil field means the test does not expect the call.

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", errors.New("no rows in result set"), infra.KindNotFound)
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr("unique violation", errors.New("23505"), infra.KindDuplicateKey)
}

type fakeReads struct {
	screeningByID         func(id int64) (*shared.ScreeningSnapshot, error)
	movieByID             func(id int64) (*shared.MovieSnapshot, error)
	projectionTypeByID    func(id int64) (*shared.LookupSnapshot, error)
	seatByID              func(id int64) (*shared.SeatSnapshot, error)
	seatTypeByID          func(id int64) (*shared.LookupSnapshot, error)
	personTypeByID        func(id int64) (*shared.LookupSnapshot, error)
	personTypeByName      func(name string) (*shared.LookupSnapshot, error)
	activeOffers          func(at time.Time) ([]*offer.Offer, error)
	takenSeatIDs          func(screeningID int64, seatIDs []int64) ([]int64, error)
	bookingByID           func(id int64) (*shared.BookingSnapshot, error)
	bookingByPaymentOrder func(orderID uuid.UUID) (*shared.BookingSnapshot, error)
	userByEmail           func(email string) (*shared.UserSnapshot, error)
}

func (f *fakeReads) ScreeningByID(_ context.Context, id int64) (*shared.ScreeningSnapshot, error) {
	return f.screeningByID(id)
}

func (f *fakeReads) MovieByID(_ context.Context, id int64) (*shared.MovieSnapshot, error) {
	return f.movieByID(id)
}

func (f *fakeReads) ProjectionTypeByID(_ context.Context, id int64) (*shared.LookupSnapshot, error) {
	return f.projectionTypeByID(id)
}

func (f *fakeReads) SeatByID(_ context.Context, id int64) (*shared.SeatSnapshot, error) {
	return f.seatByID(id)
}

func (f *fakeReads) SeatTypeByID(_ context.Context, id int64) (*shared.LookupSnapshot, error) {
	return f.seatTypeByID(id)
}

func (f *fakeReads) PersonTypeByID(_ context.Context, id int64) (*shared.LookupSnapshot, error) {
	return f.personTypeByID(id)
}

func (f *fakeReads) PersonTypeByName(_ context.Context, name string) (*shared.LookupSnapshot, error) {
	return f.personTypeByName(name)
}

func (f *fakeReads) ActiveOffers(_ context.Context, at time.Time) ([]*offer.Offer, error) {
	return f.activeOffers(at)
}

func (f *fakeReads) TakenSeatIDs(_ context.Context, screeningID int64, seatIDs []int64) ([]int64, error) {
	return f.takenSeatIDs(screeningID, seatIDs)
}

func (f *fakeReads) BookingByID(_ context.Context, id int64) (*shared.BookingSnapshot, error) {
	return f.bookingByID(id)
}

func (f *fakeReads) BookingByPaymentOrder(_ context.Context, orderID uuid.UUID) (*shared.BookingSnapshot, error) {
	return f.bookingByPaymentOrder(orderID)
}

func (f *fakeReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	return f.userByEmail(email)
}

type fakeBookingRepo struct {
	create       func(b *booking.Booking) (int64, error)
	updateStatus func(id int64, from, to booking.Status) (bool, error)
	releaseSeats func(bookingID int64) error
	cancelExpired func(cutoff time.Time) ([]int64, error)

	releasedBookingIDs []int64
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (int64, error) {
	return f.create(b)
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to booking.Status) (bool, error) {
	return f.updateStatus(id, from, to)
}

func (f *fakeBookingRepo) ReleaseSeats(_ context.Context, bookingID int64) error {
	f.releasedBookingIDs = append(f.releasedBookingIDs, bookingID)
	if f.releaseSeats != nil {
		return f.releaseSeats(bookingID)
	}
	return nil
}

func (f *fakeBookingRepo) CancelExpired(_ context.Context, cutoff time.Time) ([]int64, error) {
	return f.cancelExpired(cutoff)
}

// fakeUoW runs the unit-of-work function inline, no transaction.
type fakeUoW struct {
	repo  *fakeBookingRepo
	reads *fakeReads
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{repo: f.repo, reads: f.reads})
}

type fakeTx struct {
	repo  *fakeBookingRepo
	reads *fakeReads
}

func (f *fakeTx) Bookings() shared.BookingRepository { return f.repo }
func (f *fakeTx) Reads() shared.CommandReads         { return f.reads }

type fakeBookingQueries struct {
	getByID    func(id int64) (*queries.BookingView, error)
	listByUser func(userID int64) ([]*queries.BookingListItem, error)
}

func (f *fakeBookingQueries) GetByID(_ context.Context, id int64) (*queries.BookingView, error) {
	return f.getByID(id)
}

func (f *fakeBookingQueries) ListByUser(_ context.Context, userID int64) ([]*queries.BookingListItem, error) {
	return f.listByUser(userID)
}

// Snapshot fixtures for a plain screening: 12.00 base, no surcharges,
// Adult at full price and Child at 30% off.

func screeningSnap() *shared.ScreeningSnapshot {
	return &shared.ScreeningSnapshot{
		ID:               10,
		MovieID:          20,
		RoomID:           30,
		ProjectionTypeID: 40,
		StartTime:        time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC),
		EndTime:          time.Date(2026, 3, 6, 22, 0, 0, 0, time.UTC),
		BasePrice:        decimal.NewFromInt(12),
	}
}

func movieSnap() *shared.MovieSnapshot {
	return &shared.MovieSnapshot{
		ID:        20,
		Title:     "The Long Night",
		Duration:  2 * time.Hour,
		GenreID:   1,
		BasePrice: decimal.NewFromInt(10),
	}
}

func projectionSnap() *shared.LookupSnapshot {
	return &shared.LookupSnapshot{ID: 40, Name: "Digital", Amount: decimal.Zero}
}

func seatSnap(id int64) *shared.SeatSnapshot {
	return &shared.SeatSnapshot{ID: id, RoomID: 30, Row: 1, Number: int32(id), SeatTypeID: 50}
}

func seatTypeSnap() *shared.LookupSnapshot {
	return &shared.LookupSnapshot{ID: 50, Name: "Regular", Amount: decimal.Zero}
}

func adultSnap() *shared.LookupSnapshot {
	return &shared.LookupSnapshot{ID: 60, Name: "Adult", Percent: decimal.Zero}
}

// catalogReads wires the fixture snapshots into a fakeReads with no
// offers and no taken seats.
func catalogReads() *fakeReads {
	return &fakeReads{
		screeningByID:      func(int64) (*shared.ScreeningSnapshot, error) { return screeningSnap(), nil },
		movieByID:          func(int64) (*shared.MovieSnapshot, error) { return movieSnap(), nil },
		projectionTypeByID: func(int64) (*shared.LookupSnapshot, error) { return projectionSnap(), nil },
		seatByID:           func(id int64) (*shared.SeatSnapshot, error) { return seatSnap(id), nil },
		seatTypeByID:       func(int64) (*shared.LookupSnapshot, error) { return seatTypeSnap(), nil },
		personTypeByName:   func(string) (*shared.LookupSnapshot, error) { return adultSnap(), nil },
		activeOffers:       func(time.Time) ([]*offer.Offer, error) { return nil, nil },
		takenSeatIDs:       func(int64, []int64) ([]int64, error) { return nil, nil },
	}
}
