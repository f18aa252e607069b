package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// timeFormat is the canonical timestamp encoding for all tables.
const timeFormat = "2006-01-02T15:04:05Z"

// Store wraps the SQLite connection and exposes one repository per
// entity kind. All repositories share the same connection.
type Store struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready store.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready store. Use this when the *sql.DB has been
// pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for use by other
// adapters (e.g., river).
func (s *Store) DB() *sql.DB {
	return s.db
}

// Vendors returns the vendor repository.
func (s *Store) Vendors() *VendorRepository {
	return &VendorRepository{db: s.db}
}

// Registrations returns the staged-registration repository.
func (s *Store) Registrations() *RegistrationRepository {
	return &RegistrationRepository{db: s.db}
}

// Bookings returns the booking repository.
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{db: s.db}
}

// Users returns the account repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{db: s.db}
}

// Availability returns the availability repository.
func (s *Store) Availability() *AvailabilityRepository {
	return &AvailabilityRepository{db: s.db}
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
