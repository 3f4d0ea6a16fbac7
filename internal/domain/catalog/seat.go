package catalog

import "errors"

var ErrInvalidSeatPosition = errors.New("seat row and number must be positive")

// Seat identity is (room, row, number); a seat belongs to exactly one room.
type Seat struct {
	id         int64
	roomID     int64
	row        int32
	number     int32
	seatTypeID int64
}

func NewSeat(id, roomID int64, row, number int32, seatTypeID int64) (*Seat, error) {
	if id <= 0 || roomID <= 0 || seatTypeID <= 0 {
		return nil, ErrInvalidID
	}
	if row <= 0 || number <= 0 {
		return nil, ErrInvalidSeatPosition
	}
	return &Seat{id: id, roomID: roomID, row: row, number: number, seatTypeID: seatTypeID}, nil
}

func (s *Seat) ID() int64         { return s.id }
func (s *Seat) RoomID() int64     { return s.roomID }
func (s *Seat) Row() int32        { return s.row }
func (s *Seat) Number() int32     { return s.number }
func (s *Seat) SeatTypeID() int64 { return s.seatTypeID }

func (s *Seat) InRoom(roomID int64) bool {
	return s.roomID == roomID
}
