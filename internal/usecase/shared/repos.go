package shared

import (
	"context"
	"time"

	"cinema-booking/internal/domain/booking"
)

// BookingRepository is the write side of the booking aggregate. All
// methods run inside the unit-of-work transaction.
type BookingRepository interface {
	// Create persists the booking with its tickets and applied offers
	// in one atomic write. Losing the seat-uniqueness race surfaces as
	// a duplicate-key repository error.
	Create(ctx context.Context, b *booking.Booking) (int64, error)

	// UpdateStatus moves a booking from one status to another with an
	// optimistic guard; it reports whether a row actually changed.
	UpdateStatus(ctx context.Context, id int64, from, to booking.Status) (bool, error)

	// ReleaseSeats flips the cancelled flag on the booking's tickets so
	// the partial unique index stops counting them.
	ReleaseSeats(ctx context.Context, bookingID int64) error

	// CancelExpired transitions every pending booking older than the
	// cutoff to cancelled and releases their seats; it returns the ids
	// of the bookings it cancelled.
	CancelExpired(ctx context.Context, cutoff time.Time) ([]int64, error)
}
