package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time check: UserRepository implements domain.UserRepository.
var _ domain.UserRepository = (*UserRepository)(nil)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, mobile, role, password, profile_pic)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.Mobile, string(u.Role), u.Password, u.ProfilePic,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.EmailConflictError{Email: u.Email}
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	var role string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, mobile, role, password, profile_pic
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &role, &u.Password, &u.ProfilePic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = domain.Role(role)
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u domain.User) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, mobile = ?, role = ?, password = ?, profile_pic = ?
		 WHERE email = ?`,
		u.Name, u.Mobile, string(u.Role), u.Password, u.ProfilePic, u.Email,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
