package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTimeRange = errors.New("screening must end after it starts")
	ErrInvalidDuration  = errors.New("movie duration must be positive")
)

type Movie struct {
	id        int64
	title     string
	duration  time.Duration
	genreID   int64
	basePrice decimal.Decimal
}

func NewMovie(id int64, title string, duration time.Duration, genreID int64, basePrice decimal.Decimal) (*Movie, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if title == "" {
		return nil, ErrEmptyName
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if basePrice.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Movie{id: id, title: title, duration: duration, genreID: genreID, basePrice: basePrice}, nil
}

func (m *Movie) ID() int64                  { return m.id }
func (m *Movie) Title() string              { return m.title }
func (m *Movie) Duration() time.Duration    { return m.duration }
func (m *Movie) GenreID() int64             { return m.genreID }
func (m *Movie) BasePrice() decimal.Decimal { return m.basePrice }

type Screening struct {
	id               int64
	movieID          int64
	roomID           int64
	projectionTypeID int64
	startTime        time.Time
	endTime          time.Time
	basePrice        decimal.Decimal
}

func NewScreening(id, movieID, roomID, projectionTypeID int64, startTime, endTime time.Time, basePrice decimal.Decimal) (*Screening, error) {
	if id <= 0 || movieID <= 0 || roomID <= 0 || projectionTypeID <= 0 {
		return nil, ErrInvalidID
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}
	if basePrice.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &Screening{
		id:               id,
		movieID:          movieID,
		roomID:           roomID,
		projectionTypeID: projectionTypeID,
		startTime:        startTime,
		endTime:          endTime,
		basePrice:        basePrice,
	}, nil
}

func (s *Screening) ID() int64               { return s.id }
func (s *Screening) MovieID() int64          { return s.movieID }
func (s *Screening) RoomID() int64           { return s.roomID }
func (s *Screening) ProjectionTypeID() int64 { return s.projectionTypeID }
func (s *Screening) StartTime() time.Time    { return s.startTime }
func (s *Screening) EndTime() time.Time      { return s.endTime }
func (s *Screening) BasePrice() decimal.Decimal {
	return s.basePrice
}

// EffectiveBasePrice resolves the price-fallback rule: a screening price
// of zero is a sentinel meaning "use the movie's base price".
func (s *Screening) EffectiveBasePrice(movie *Movie) decimal.Decimal {
	if s.basePrice.IsPositive() {
		return s.basePrice
	}
	return movie.BasePrice()
}

// Overlaps reports whether two screenings in the same room collide on
// their [start,end) intervals.
func (s *Screening) Overlaps(other *Screening) bool {
	if s.roomID != other.roomID {
		return false
	}
	return s.startTime.Before(other.endTime) && other.startTime.Before(s.endTime)
}
