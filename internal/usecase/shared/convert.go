package shared

import "cinema-booking/internal/domain/catalog"

func (s *ScreeningSnapshot) ToDomain() (*catalog.Screening, error) {
	return catalog.NewScreening(s.ID, s.MovieID, s.RoomID, s.ProjectionTypeID, s.StartTime, s.EndTime, s.BasePrice)
}

func (m *MovieSnapshot) ToDomain() (*catalog.Movie, error) {
	return catalog.NewMovie(m.ID, m.Title, m.Duration, m.GenreID, m.BasePrice)
}

func (s *SeatSnapshot) ToDomain() (*catalog.Seat, error) {
	return catalog.NewSeat(s.ID, s.RoomID, s.Row, s.Number, s.SeatTypeID)
}

func (l *LookupSnapshot) ToSeatType() (*catalog.SeatType, error) {
	return catalog.NewSeatType(l.ID, l.Name, l.Amount)
}

func (l *LookupSnapshot) ToProjectionType() (*catalog.ProjectionType, error) {
	return catalog.NewProjectionType(l.ID, l.Name, l.Amount)
}

func (l *LookupSnapshot) ToPersonType() (*catalog.PersonType, error) {
	return catalog.NewPersonType(l.ID, l.Name, l.Percent)
}
