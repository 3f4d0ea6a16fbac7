package shared

import "context"

// UnitOfWork wraps one write use case in a single transaction. The
// implementation owns retry behavior for serialization failures.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to the running transaction.
type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
}
