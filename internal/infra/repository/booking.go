package repository

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

const bookingColumns = `
	id, customer_name, customer_phone, customer_email, guests,
	table_id, booking_date, booking_time, special_requests, status,
	created_at, status_changed_at`

// BookingStore persists bookings in PostgreSQL. A partial unique index on
// (table_id, booking_date, booking_time) over active statuses backs the
// one-active-booking-per-slot invariant at the storage layer.
type BookingStore struct {
	pool *pgxpool.Pool
}

func NewBookingStore(pool *pgxpool.Pool) *BookingStore {
	return &BookingStore{pool: pool}
}

func (s *BookingStore) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, customer_name, customer_phone, customer_email, guests,
			table_id, booking_date, booking_time, special_requests, status,
			created_at, status_changed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.pool.Exec(ctx, query,
		b.ID(),
		b.CustomerName(),
		b.CustomerPhone().String(),
		b.CustomerEmail(),
		b.Guests(),
		b.Slot().TableID(),
		b.Slot().Date(),
		b.Slot().Time(),
		b.SpecialRequests(),
		b.Status().String(),
		b.CreatedAt(),
		b.StatusChangedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return infra.WrapRepoErr("slot already booked", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`

	row := s.pool.QueryRow(ctx, query, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return b, nil
}

func (s *BookingStore) FindBySlot(ctx context.Context, slot booking.Slot) (*booking.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE table_id = $1 AND booking_date = $2 AND booking_time = $3
		  AND status IN ('PENDING', 'AWAITING_PAYMENT', 'CONFIRMED')`

	row := s.pool.QueryRow(ctx, query, slot.TableID(), slot.Date(), slot.Time())
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("no active booking for slot", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by slot", err)
	}
	return b, nil
}

// UpdateStatus applies a guarded transition: the row only changes when its
// current status matches from. Zero rows affected means a concurrent
// transition won, reported as KindConflict.
func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, at time.Time) error {
	const query = `
		UPDATE bookings
		SET status = $1, status_changed_at = $2
		WHERE id = $3 AND status = $4`

	tag, err := s.pool.Exec(ctx, query, to.String(), at, id, from.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func (s *BookingStore) ListByStatus(ctx context.Context, status booking.Status) ([]*booking.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE status = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query, status.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by status", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (s *BookingStore) List(ctx context.Context) ([]*booking.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		ORDER BY created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (s *BookingStore) ListActive(ctx context.Context) ([]*booking.Booking, error) {
	query := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE status IN ('PENDING', 'AWAITING_PAYMENT', 'CONFIRMED')
		ORDER BY created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id              uuid.UUID
		customerName    string
		customerPhone   string
		customerEmail   string
		guests          int
		tableID         int
		bookingDate     string
		bookingTime     string
		specialRequests string
		statusRaw       string
		createdAt       time.Time
		statusChangedAt time.Time
	)

	err := row.Scan(
		&id, &customerName, &customerPhone, &customerEmail, &guests,
		&tableID, &bookingDate, &bookingTime, &specialRequests, &statusRaw,
		&createdAt, &statusChangedAt,
	)
	if err != nil {
		return nil, err
	}

	status, err := booking.NewStatus(statusRaw)
	if err != nil {
		return nil, err
	}
	phone, err := booking.NewPhone(customerPhone)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewSlot(tableID, bookingDate, bookingTime)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, customerName, phone, customerEmail, guests,
		slot, specialRequests, status, createdAt, statusChangedAt,
	), nil
}
