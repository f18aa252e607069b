package sqlite_test

import (
	"context"
	"testing"

	"github.com/naandi/platform/internal/adapter/sqlite"
	"github.com/naandi/platform/internal/domain"
)

// newTestStore creates a temp-file SQLite store for testing.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateVendor(t *testing.T, repo *sqlite.VendorRepository, v domain.Vendor) {
	t.Helper()
	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatalf("mustCreateVendor failed: %v", err)
	}
}

func newVendor(id string, status domain.Status) domain.Vendor {
	return domain.Vendor{
		ID:          id,
		Name:        "Asha",
		Email:       id + "@example.com",
		Mobile:      "98765" + id,
		Password:    "pw",
		ShopName:    "Asha Events",
		Description: "Services: Catering",
		Services:    "Catering",
		Address:     "12 Main St",
		Location:    domain.Location{Lat: 12.97, Lng: 77.59},
		Images:      []string{"/uploads/a.jpg", "/uploads/b.jpg"},
		Status:      status,
	}
}
