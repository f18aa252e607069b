package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time check: BookingRepository implements domain.BookingRepository.
var _ domain.BookingRepository = (*BookingRepository)(nil)

// BookingRepository implements domain.BookingRepository using SQLite.
type BookingRepository struct {
	db *sql.DB
}

const bookingColumns = `id, vendor_id, customer_name, mobile, date, notes, status, created_at`

func (r *BookingRepository) Create(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.VendorID, b.CustomerName, b.Mobile, b.Date, b.Notes,
		string(b.Status), b.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	var b domain.Booking
	var status, createdAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id,
	).Scan(&b.ID, &b.VendorID, &b.CustomerName, &b.Mobile, &b.Date, &b.Notes,
		&status, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Booking{}, domain.ErrBookingNotFound
		}
		return domain.Booking{}, fmt.Errorf("scanning booking: %w", err)
	}

	b.Status = domain.Status(status)
	b.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	return b, nil
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var conds []string
	var args []any

	if filter.Status != nil {
		conds = append(conds, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.VendorID != "" {
		conds = append(conds, `vendor_id = ?`)
		args = append(args, filter.VendorID)
	}

	for i, cond := range conds {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var status, createdAt string

		if err := rows.Scan(&b.ID, &b.VendorID, &b.CustomerName, &b.Mobile,
			&b.Date, &b.Notes, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning booking row: %w", err)
		}

		b.Status = domain.Status(status)
		b.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) Update(ctx context.Context, b domain.Booking) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET vendor_id = ?, customer_name = ?, mobile = ?,
		 date = ?, notes = ?, status = ?
		 WHERE id = ?`,
		b.VendorID, b.CustomerName, b.Mobile, b.Date, b.Notes, string(b.Status), b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}
