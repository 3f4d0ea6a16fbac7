package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"cinema-booking/internal/domain/booking"
	"cinema-booking/internal/infra"
	"cinema-booking/internal/infra/db"
	"cinema-booking/internal/pkg/pgconv"
	"cinema-booking/internal/usecase/queries"
	"cinema-booking/internal/usecase/shared"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingSnapshotByIDSQL = `
SELECT id, screening_id, user_id, status, booking_time, payment_order_id
FROM bookings
WHERE id = $1`

const bookingSnapshotByOrderSQL = `
SELECT id, screening_id, user_id, status, booking_time, payment_order_id
FROM bookings
WHERE payment_order_id = $1`

func (s *BookingReadStore) SnapshotByID(ctx context.Context, id int64) (*shared.BookingSnapshot, error) {
	return s.snapshot(ctx, bookingSnapshotByIDSQL, id)
}

func (s *BookingReadStore) SnapshotByPaymentOrder(ctx context.Context, orderID uuid.UUID) (*shared.BookingSnapshot, error) {
	return s.snapshot(ctx, bookingSnapshotByOrderSQL, orderID)
}

func (s *BookingReadStore) snapshot(ctx context.Context, query string, arg any) (*shared.BookingSnapshot, error) {
	var (
		snap    shared.BookingSnapshot
		status  string
		orderID pgtype.UUID
	)
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&snap.ID,
		&snap.ScreeningID,
		&snap.UserID,
		&status,
		&snap.BookingTime,
		&orderID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	snap.Status, err = booking.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("unknown booking status in row", err, infra.KindDBFailure)
	}
	if orderID.Valid {
		id := uuid.UUID(orderID.Bytes)
		snap.PaymentOrderID = &id
	}
	return &snap, nil
}

const bookingViewSQL = `
SELECT b.id, b.screening_id, m.title, sc.room_id, sc.start_time,
       b.user_id, b.status, b.booking_time, b.base_price, b.discounted_price,
       b.payment_order_id
FROM bookings b
JOIN screenings sc ON sc.id = b.screening_id
JOIN movies m ON m.id = sc.movie_id
WHERE b.id = $1`

const bookingTicketsSQL = `
SELECT t.id, t.seat_id, s.row_number, s.seat_number, st.name, pt.name, t.price
FROM tickets t
JOIN seats s ON s.id = t.seat_id
JOIN seat_types st ON st.id = s.seat_type_id
JOIN person_types pt ON pt.id = t.person_type_id
WHERE t.booking_id = $1
ORDER BY t.id`

const bookingOffersSQL = `
SELECT offer_id, offer_name, discount
FROM booking_offers
WHERE booking_id = $1
ORDER BY id`

func (s *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	var (
		view    queries.BookingView
		price   pgtype.Numeric
		disc    pgtype.Numeric
		orderID pgtype.UUID
	)
	err := s.db.QueryRow(ctx, bookingViewSQL, id).Scan(
		&view.ID,
		&view.ScreeningID,
		&view.MovieTitle,
		&view.RoomID,
		&view.ScreeningStart,
		&view.UserID,
		&view.Status,
		&view.BookingTime,
		&price,
		&disc,
		&orderID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	if view.BasePrice, err = pgconv.DecimalFromNumeric(price); err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking price", err)
	}
	if view.DiscountedPrice, err = pgconv.DecimalFromNumeric(disc); err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking price", err)
	}
	if orderID.Valid {
		oid := uuid.UUID(orderID.Bytes)
		view.PaymentOrderID = &oid
	}

	if view.Tickets, err = s.ticketViews(ctx, id); err != nil {
		return nil, err
	}
	if view.AppliedOffers, err = s.appliedOfferViews(ctx, id); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *BookingReadStore) ticketViews(ctx context.Context, bookingID int64) ([]queries.TicketView, error) {
	rows, err := s.db.Query(ctx, bookingTicketsSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking tickets", err)
	}
	defer rows.Close()

	views := []queries.TicketView{}
	for rows.Next() {
		var (
			tv    queries.TicketView
			price pgtype.Numeric
		)
		if err := rows.Scan(&tv.ID, &tv.SeatID, &tv.SeatRow, &tv.SeatNumber, &tv.SeatType, &tv.PersonType, &price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan ticket view", err)
		}
		if tv.TotalPrice, err = pgconv.DecimalFromNumeric(price); err != nil {
			return nil, infra.WrapRepoErr("failed to convert ticket price", err)
		}
		views = append(views, tv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking tickets", err)
	}
	return views, nil
}

func (s *BookingReadStore) appliedOfferViews(ctx context.Context, bookingID int64) ([]queries.AppliedOfferView, error) {
	rows, err := s.db.Query(ctx, bookingOffersSQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query applied offers", err)
	}
	defer rows.Close()

	views := []queries.AppliedOfferView{}
	for rows.Next() {
		var (
			ov       queries.AppliedOfferView
			discount pgtype.Numeric
		)
		if err := rows.Scan(&ov.OfferID, &ov.OfferName, &discount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan applied offer", err)
		}
		if ov.DiscountAmount, err = pgconv.DecimalFromNumeric(discount); err != nil {
			return nil, infra.WrapRepoErr("failed to convert offer discount", err)
		}
		views = append(views, ov)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read applied offers", err)
	}
	return views, nil
}

const bookingsByUserSQL = `
SELECT b.id, b.screening_id, m.title, sc.start_time, b.status, b.booking_time,
       b.discounted_price,
       (SELECT count(*) FROM tickets t WHERE t.booking_id = b.id) AS ticket_count
FROM bookings b
JOIN screenings sc ON sc.id = b.screening_id
JOIN movies m ON m.id = sc.movie_id
WHERE b.user_id = $1
ORDER BY b.booking_time DESC, b.id DESC`

func (s *BookingReadStore) FindByUserID(ctx context.Context, userID int64) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, bookingsByUserSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query user bookings", err)
	}
	defer rows.Close()

	items := []*queries.BookingListItem{}
	for rows.Next() {
		var (
			item queries.BookingListItem
			disc pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.ScreeningID, &item.MovieTitle, &item.ScreeningStart, &item.Status, &item.BookingTime, &disc, &item.TicketCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		if item.DiscountedPrice, err = pgconv.DecimalFromNumeric(disc); err != nil {
			return nil, infra.WrapRepoErr("failed to convert booking price", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read user bookings", err)
	}
	return items, nil
}
