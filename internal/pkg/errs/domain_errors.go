package errs

import "errors"

// Domain-specific sentinel errors for the usecase layers
var (
	// Catalog errors
	ErrScreeningNotFound  = errors.New("screening not found")
	ErrSeatNotFound       = errors.New("seat not found")
	ErrMovieNotFound      = errors.New("movie not found")
	ErrPersonTypeNotFound = errors.New("person type not found")
	ErrSeatNotInRoom      = errors.New("seat does not belong to the screening room")

	// Booking errors
	ErrBookingNotFound    = errors.New("booking not found")
	ErrSeatTaken          = errors.New("seat already booked for this screening")
	ErrDuplicateSeats     = errors.New("duplicate seats in booking request")
	ErrNoTicketsRequested = errors.New("at least one ticket is required")
	ErrInvalidTransition  = errors.New("invalid booking status transition")

	// Payment errors
	ErrPaymentOrderNotFound = errors.New("payment order not found")

	// Auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
