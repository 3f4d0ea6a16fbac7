package repository

import (
	"context"
	"time"

	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/infra"
	"cinema-booking/internal/infra/db"
	"cinema-booking/internal/usecase/shared"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) shared.BookingRepository {
	return &BookingRepository{db: dbtx}
}

const insertBookingSQL = `
INSERT INTO bookings (screening_id, user_id, status, booking_time, base_price, discounted_price, payment_order_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

const insertTicketSQL = `
INSERT INTO tickets (booking_id, screening_id, seat_id, person_type_id, price)
VALUES ($1, $2, $3, $4, $5)`

const insertBookingOfferSQL = `
INSERT INTO booking_offers (booking_id, offer_id, offer_name, discount)
VALUES ($1, $2, $3, $4)`

// Create writes the booking aggregate in insertion order: the booking
// row first, then its tickets, then the offer records. The partial
// unique index on live tickets turns a lost seat race into a
// duplicate-key error here.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, insertBookingSQL,
		b.ScreeningID(),
		b.UserID(),
		string(b.Status()),
		b.BookingTime(),
		b.BasePrice(),
		b.DiscountedPrice(),
		b.PaymentOrderID(),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert booking", err)
	}

	for _, t := range b.Tickets() {
		_, err := r.db.Exec(ctx, insertTicketSQL,
			id,
			b.ScreeningID(),
			t.SeatID(),
			t.PersonTypeID(),
			t.TotalPrice(),
		)
		if err != nil {
			return 0, infra.WrapRepoErr("failed to insert ticket", err)
		}
	}

	for _, a := range b.AppliedOffers() {
		_, err := r.db.Exec(ctx, insertBookingOfferSQL, id, a.OfferID, a.OfferName, a.Discount)
		if err != nil {
			return 0, infra.WrapRepoErr("failed to insert applied offer", err)
		}
	}

	return id, nil
}

const updateStatusSQL = `
UPDATE bookings
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, from, to booking.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, updateStatusSQL, id, string(from), string(to))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err)
	}
	return tag.RowsAffected() > 0, nil
}

const releaseSeatsSQL = `
UPDATE tickets
SET cancelled = TRUE
WHERE booking_id = $1 AND NOT cancelled`

func (r *BookingRepository) ReleaseSeats(ctx context.Context, bookingID int64) error {
	if _, err := r.db.Exec(ctx, releaseSeatsSQL, bookingID); err != nil {
		return infra.WrapRepoErr("failed to release booking seats", err)
	}
	return nil
}

// Data-modifying CTE so the sweep cancels the bookings and releases
// their seats in one statement.
const cancelExpiredSQL = `
WITH expired AS (
	UPDATE bookings
	SET status = 'cancelled', updated_at = now()
	WHERE status = 'pending' AND booking_time < $1
	RETURNING id
), released AS (
	UPDATE tickets
	SET cancelled = TRUE
	WHERE booking_id IN (SELECT id FROM expired) AND NOT cancelled
)
SELECT id FROM expired ORDER BY id`

func (r *BookingRepository) CancelExpired(ctx context.Context, cutoff time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, cancelExpiredSQL, cutoff)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to cancel expired bookings", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired booking id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired booking ids", err)
	}
	return ids, nil
}
