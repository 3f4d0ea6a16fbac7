//go:build unit || e2e

package builder

import (
	"time"

	"github.com/shopspring/decimal"

	"cinema-booking/internal/domain/catalog"
)

// CatalogBuilder assembles the resolved catalog context a single ticket
// needs: screening, movie, projection type, seat (with its type), and
// person type. Defaults describe a plain 2D screening with a regular
// seat and an adult patron at 12.00.
type CatalogBuilder struct {
	ScreeningID        int64
	MovieID            int64
	RoomID             int64
	ProjectionTypeID   int64
	StartTime          time.Time
	MovieDuration      time.Duration
	ScreeningBasePrice decimal.Decimal
	MovieBasePrice     decimal.Decimal

	ProjectionName      string
	ProjectionSurcharge decimal.Decimal

	SeatID        int64
	SeatRow       int32
	SeatNumber    int32
	SeatTypeID    int64
	SeatTypeName  string
	SeatSurcharge decimal.Decimal

	PersonTypeID    int64
	PersonTypeName  string
	PersonDiscount  decimal.Decimal
}

func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{
		ScreeningID:        1,
		MovieID:            1,
		RoomID:             1,
		ProjectionTypeID:   1,
		StartTime:          time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC), // a Friday
		MovieDuration:      2 * time.Hour,
		ScreeningBasePrice: decimal.RequireFromString("12.00"),
		MovieBasePrice:     decimal.RequireFromString("10.00"),

		ProjectionName:      "2D",
		ProjectionSurcharge: decimal.Zero,

		SeatID:        1,
		SeatRow:       1,
		SeatNumber:    1,
		SeatTypeID:    1,
		SeatTypeName:  "Regular",
		SeatSurcharge: decimal.Zero,

		PersonTypeID:   1,
		PersonTypeName: "Adult",
		PersonDiscount: decimal.Zero,
	}
}

func (b *CatalogBuilder) With(mutate func(*CatalogBuilder)) *CatalogBuilder {
	mutate(b)
	return b
}

func (b *CatalogBuilder) BuildScreening() (*catalog.Screening, error) {
	return catalog.NewScreening(
		b.ScreeningID, b.MovieID, b.RoomID, b.ProjectionTypeID,
		b.StartTime, b.StartTime.Add(b.MovieDuration), b.ScreeningBasePrice,
	)
}

func (b *CatalogBuilder) BuildMovie() (*catalog.Movie, error) {
	return catalog.NewMovie(b.MovieID, "Test Movie", b.MovieDuration, 1, b.MovieBasePrice)
}

func (b *CatalogBuilder) BuildProjectionType() (*catalog.ProjectionType, error) {
	return catalog.NewProjectionType(b.ProjectionTypeID, b.ProjectionName, b.ProjectionSurcharge)
}

func (b *CatalogBuilder) BuildSeat() (*catalog.Seat, error) {
	return catalog.NewSeat(b.SeatID, b.RoomID, b.SeatRow, b.SeatNumber, b.SeatTypeID)
}

func (b *CatalogBuilder) BuildSeatType() (*catalog.SeatType, error) {
	return catalog.NewSeatType(b.SeatTypeID, b.SeatTypeName, b.SeatSurcharge)
}

func (b *CatalogBuilder) BuildPersonType() (*catalog.PersonType, error) {
	return catalog.NewPersonType(b.PersonTypeID, b.PersonTypeName, b.PersonDiscount)
}
