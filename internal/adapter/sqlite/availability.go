package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time check: AvailabilityRepository implements domain.AvailabilityRepository.
var _ domain.AvailabilityRepository = (*AvailabilityRepository)(nil)

// AvailabilityRepository implements domain.AvailabilityRepository using
// SQLite. Replace runs delete-all-then-insert in one transaction;
// duplicate dates in the input are stored as-is.
type AvailabilityRepository struct {
	db *sql.DB
}

func (r *AvailabilityRepository) Replace(ctx context.Context, vendorID string, dates []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM availability WHERE vendor_id = ?`, vendorID); err != nil {
		return fmt.Errorf("clearing availability: %w", err)
	}

	for _, date := range dates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO availability (vendor_id, date) VALUES (?, ?)`,
			vendorID, date); err != nil {
			return fmt.Errorf("inserting availability date: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing replace: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) ListDates(ctx context.Context, vendorID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date FROM availability WHERE vendor_id = ?`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("listing availability: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scanning availability date: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}
