package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentivo-backend/internal/domain"
	"rentivo-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, item_id, renter_id, start_date, end_date, extended_until, status,
	COALESCE(handover_photo, ''), COALESCE(handover_notes, ''),
	COALESCE(return_photo, ''), COALESCE(return_notes, ''), created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.ItemID, &b.RenterID, &b.StartDate, &b.EndDate, &b.ExtendedUntil,
		&b.Status, &b.HandoverPhoto, &b.HandoverNotes, &b.ReturnPhoto, &b.ReturnNotes,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, item_id, renter_id, start_date, end_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, b.ID, b.ItemID, b.RenterID, b.StartDate, b.EndDate, b.Status, now, now)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Errf(domain.CodeNotFound, "booking %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE renter_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) RecordHandover(ctx context.Context, id, photo, notes string) (bool, error) {
	query := `UPDATE bookings SET status = $1, handover_photo = $2, handover_notes = $3, updated_at = $4
	          WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query, domain.BookingStatusOngoing, photo, notes, time.Now(), id, domain.BookingStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *bookingRepository) RecordReturn(ctx context.Context, id, photo, notes string) (bool, error) {
	query := `UPDATE bookings SET status = $1, return_photo = $2, return_notes = $3, updated_at = $4
	          WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query, domain.BookingStatusCompleted, photo, notes, time.Now(), id, domain.BookingStatusOngoing)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *bookingRepository) SetExtension(ctx context.Context, id string, until time.Time) error {
	query := `UPDATE bookings SET extended_until = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, until, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.Errf(domain.CodeNotFound, "booking %s not found", id)
	}
	return nil
}

func (r *bookingRepository) AddAvailability(ctx context.Context, w *domain.AvailabilityWindow) error {
	query := `INSERT INTO availability_windows (id, item_id, start_date, end_date, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	w.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, w.ID, w.ItemID, w.StartDate, w.EndDate, w.CreatedAt)
	return err
}

func (r *bookingRepository) ListAvailability(ctx context.Context, itemID string) ([]domain.AvailabilityWindow, error) {
	query := `SELECT id, item_id, start_date, end_date, created_at FROM availability_windows
	          WHERE item_id = $1 ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []domain.AvailabilityWindow
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.ItemID, &w.StartDate, &w.EndDate, &w.CreatedAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *bookingRepository) ListOverdueOngoing(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status = $1 AND COALESCE(extended_until, end_date) < $2
	          ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, domain.BookingStatusOngoing, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
