package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time check: VendorRepository implements domain.VendorRepository.
var _ domain.VendorRepository = (*VendorRepository)(nil)

// VendorRepository implements domain.VendorRepository using SQLite.
type VendorRepository struct {
	db *sql.DB
}

const vendorColumns = `id, name, email, mobile, password, shop_name, description,
	services, portfolio, pricing, address, lat, lng, images, profile_pic, status, created_at`

func (r *VendorRepository) Create(ctx context.Context, v domain.Vendor) error {
	images, err := json.Marshal(imagesOrEmpty(v.Images))
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO vendors (`+vendorColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.Email, v.Mobile, v.Password, v.ShopName, v.Description,
		v.Services, v.Portfolio, v.Pricing, v.Address, v.Location.Lat, v.Location.Lng,
		string(images), v.ProfilePic, string(v.Status),
		v.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting vendor: %w", err)
	}
	return nil
}

func (r *VendorRepository) GetByID(ctx context.Context, id string) (domain.Vendor, error) {
	return scanVendor(r.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id,
	))
}

func (r *VendorRepository) GetByEmail(ctx context.Context, email string) (domain.Vendor, error) {
	return scanVendor(r.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE email = ?`, email,
	))
}

func (r *VendorRepository) GetByMobile(ctx context.Context, mobile string) (domain.Vendor, error) {
	return scanVendor(r.db.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE mobile = ?`, mobile,
	))
}

func (r *VendorRepository) List(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors`
	var args []any

	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	var vendors []domain.Vendor
	for rows.Next() {
		v, err := scanVendorFromRows(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

func (r *VendorRepository) Update(ctx context.Context, v domain.Vendor) error {
	images, err := json.Marshal(imagesOrEmpty(v.Images))
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE vendors SET name = ?, email = ?, mobile = ?, password = ?,
		 shop_name = ?, description = ?, services = ?, portfolio = ?, pricing = ?,
		 address = ?, lat = ?, lng = ?, images = ?, profile_pic = ?, status = ?
		 WHERE id = ?`,
		v.Name, v.Email, v.Mobile, v.Password, v.ShopName, v.Description,
		v.Services, v.Portfolio, v.Pricing, v.Address, v.Location.Lat, v.Location.Lng,
		string(images), v.ProfilePic, string(v.Status), v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vendor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrVendorNotFound
	}

	return nil
}

// Delete removes the vendor and cascades to its bookings and
// availability in a single transaction, so a crash cannot leave
// orphaned bookings behind.
func (r *VendorRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting vendor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrVendorNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE vendor_id = ?`, id); err != nil {
		return fmt.Errorf("deleting vendor bookings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM availability WHERE vendor_id = ?`, id); err != nil {
		return fmt.Errorf("deleting vendor availability: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

func scanVendor(row *sql.Row) (domain.Vendor, error) {
	v, err := scanVendorFields(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Vendor{}, domain.ErrVendorNotFound
		}
		return domain.Vendor{}, fmt.Errorf("scanning vendor: %w", err)
	}
	return v, nil
}

func scanVendorFromRows(rows *sql.Rows) (domain.Vendor, error) {
	v, err := scanVendorFields(rows.Scan)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("scanning vendor row: %w", err)
	}
	return v, nil
}

func scanVendorFields(scan func(...any) error) (domain.Vendor, error) {
	var v domain.Vendor
	var images, status, createdAt string

	err := scan(&v.ID, &v.Name, &v.Email, &v.Mobile, &v.Password, &v.ShopName,
		&v.Description, &v.Services, &v.Portfolio, &v.Pricing, &v.Address,
		&v.Location.Lat, &v.Location.Lng, &images, &v.ProfilePic, &status, &createdAt)
	if err != nil {
		return domain.Vendor{}, err
	}

	if err := json.Unmarshal([]byte(images), &v.Images); err != nil {
		return domain.Vendor{}, fmt.Errorf("decoding images: %w", err)
	}

	v.Status = domain.Status(status)
	v.CreatedAt, _ = time.Parse(timeFormat, createdAt)

	return v, nil
}

// imagesOrEmpty keeps the images column a JSON array even for vendors
// without media.
func imagesOrEmpty(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
