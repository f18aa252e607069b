package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time check: RegistrationRepository implements domain.RegistrationRepository.
var _ domain.RegistrationRepository = (*RegistrationRepository)(nil)

// RegistrationRepository implements domain.RegistrationRepository using SQLite.
type RegistrationRepository struct {
	db *sql.DB
}

const registrationColumns = `id, name, email, mobile, password, business_name,
	services, portfolio, pricing, created_at`

func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO registrations (`+registrationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.ID, reg.Name, reg.Email, reg.Mobile, reg.Password, reg.BusinessName,
		reg.Services, reg.Portfolio, reg.Pricing,
		reg.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (domain.Registration, error) {
	var reg domain.Registration
	var createdAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ?`, id,
	).Scan(&reg.ID, &reg.Name, &reg.Email, &reg.Mobile, &reg.Password,
		&reg.BusinessName, &reg.Services, &reg.Portfolio, &reg.Pricing, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Registration{}, domain.ErrRegistrationNotFound
		}
		return domain.Registration{}, fmt.Errorf("scanning registration: %w", err)
	}

	reg.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	return reg, nil
}

func (r *RegistrationRepository) Update(ctx context.Context, reg domain.Registration) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE registrations SET name = ?, email = ?, mobile = ?, password = ?,
		 business_name = ?, services = ?, portfolio = ?, pricing = ?
		 WHERE id = ?`,
		reg.Name, reg.Email, reg.Mobile, reg.Password,
		reg.BusinessName, reg.Services, reg.Portfolio, reg.Pricing, reg.ID,
	)
	if err != nil {
		return fmt.Errorf("updating registration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting registration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

func (r *RegistrationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM registrations WHERE created_at < ?`,
		cutoff.UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting expired registrations: %w", err)
	}

	return result.RowsAffected()
}
