//go:build unit

package commands_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/pkg/errs"
	"cinema-booking/internal/usecase/commands"
	"cinema-booking/internal/usecase/shared"
)

func newPaymentCommands(reads *fakeReads, repo *fakeBookingRepo) commands.PaymentCommands {
	return commands.NewPaymentCommands(&fakeUoW{repo: repo, reads: reads})
}

func TestPaymentCommands_ConfirmPayment(t *testing.T) {
	t.Parallel()
	orderID := uuid.New()

	t.Run("confirms the pending booking behind the order", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByPaymentOrder = func(id uuid.UUID) (*shared.BookingSnapshot, error) {
			require.Equal(t, orderID, id)
			return &shared.BookingSnapshot{ID: 77, Status: booking.StatusPending, PaymentOrderID: &orderID}, nil
		}
		repo := &fakeBookingRepo{
			updateStatus: func(id int64, from, to booking.Status) (bool, error) {
				assert.Equal(t, int64(77), id)
				assert.Equal(t, booking.StatusPending, from)
				assert.Equal(t, booking.StatusConfirmed, to)
				return true, nil
			},
		}

		require.NoError(t, newPaymentCommands(reads, repo).ConfirmPayment(t.Context(), orderID))
	})

	t.Run("treats a redelivered notification as success", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByPaymentOrder = func(uuid.UUID) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{ID: 77, Status: booking.StatusConfirmed}, nil
		}

		require.NoError(t, newPaymentCommands(reads, &fakeBookingRepo{}).ConfirmPayment(t.Context(), orderID))
	})

	t.Run("rejects a notification for a cancelled booking", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByPaymentOrder = func(uuid.UUID) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{ID: 77, Status: booking.StatusCancelled}, nil
		}

		err := newPaymentCommands(reads, &fakeBookingRepo{}).ConfirmPayment(t.Context(), orderID)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("reports an unknown order id", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByPaymentOrder = func(uuid.UUID) (*shared.BookingSnapshot, error) { return nil, notFoundErr() }

		err := newPaymentCommands(reads, &fakeBookingRepo{}).ConfirmPayment(t.Context(), orderID)
		assert.ErrorIs(t, err, errs.ErrPaymentOrderNotFound)
	})

	t.Run("rejects the nil order id", func(t *testing.T) {
		t.Parallel()
		err := newPaymentCommands(catalogReads(), &fakeBookingRepo{}).ConfirmPayment(t.Context(), uuid.Nil)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("reports the conflict when the status race is lost", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByPaymentOrder = func(uuid.UUID) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{ID: 77, Status: booking.StatusPending}, nil
		}
		repo := &fakeBookingRepo{
			updateStatus: func(int64, booking.Status, booking.Status) (bool, error) { return false, nil },
		}

		err := newPaymentCommands(reads, repo).ConfirmPayment(t.Context(), orderID)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestPaymentCommands_CancelPayment(t *testing.T) {
	t.Parallel()

	t.Run("cancels the pending booking and releases its seats", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByID = func(id int64) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{ID: id, Status: booking.StatusPending}, nil
		}
		repo := &fakeBookingRepo{
			updateStatus: func(id int64, from, to booking.Status) (bool, error) {
				assert.Equal(t, booking.StatusCancelled, to)
				return true, nil
			},
		}

		require.NoError(t, newPaymentCommands(reads, repo).CancelPayment(t.Context(), 77))
		assert.Equal(t, []int64{77}, repo.releasedBookingIDs)
	})

	t.Run("treats a redelivered abort as success", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByID = func(id int64) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{ID: id, Status: booking.StatusCancelled}, nil
		}

		require.NoError(t, newPaymentCommands(reads, &fakeBookingRepo{}).CancelPayment(t.Context(), 77))
	})

	t.Run("rejects aborting a confirmed booking", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByID = func(id int64) (*shared.BookingSnapshot, error) {
			return &shared.BookingSnapshot{ID: id, Status: booking.StatusConfirmed}, nil
		}

		err := newPaymentCommands(reads, &fakeBookingRepo{}).CancelPayment(t.Context(), 77)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("reports an unknown booking id", func(t *testing.T) {
		t.Parallel()
		reads := catalogReads()
		reads.bookingByID = func(int64) (*shared.BookingSnapshot, error) { return nil, notFoundErr() }

		err := newPaymentCommands(reads, &fakeBookingRepo{}).CancelPayment(t.Context(), 404)
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}
