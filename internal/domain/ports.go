package domain

import (
	"context"
	"io"
	"time"
)

// VendorRepository defines the persistence contract for vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor Vendor) error
	GetByID(ctx context.Context, id string) (Vendor, error)
	GetByEmail(ctx context.Context, email string) (Vendor, error)
	GetByMobile(ctx context.Context, mobile string) (Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]Vendor, error)
	Update(ctx context.Context, vendor Vendor) error
	// Delete removes the vendor and all bookings referencing it in a
	// single transaction.
	Delete(ctx context.Context, id string) error
}

// VendorFilter holds optional criteria for listing vendors.
type VendorFilter struct {
	Status *Status
}

// RegistrationRepository defines the persistence contract for staged
// vendor registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg Registration) error
	GetByID(ctx context.Context, id string) (Registration, error)
	Update(ctx context.Context, reg Registration) error
	Delete(ctx context.Context, id string) error
	// DeleteOlderThan reaps abandoned registrations created before the
	// cutoff and reports how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// BookingRepository defines the persistence contract for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking Booking) error
	GetByID(ctx context.Context, id string) (Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]Booking, error)
	Update(ctx context.Context, booking Booking) error
}

// BookingFilter holds optional criteria for listing bookings.
type BookingFilter struct {
	Status   *Status
	VendorID string
}

// UserRepository defines the persistence contract for platform accounts.
type UserRepository interface {
	// Create fails with EmailConflictError when the email is taken.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, user User) error
}

// AvailabilityRepository stores per-vendor availability dates.
// Replace has full-replace semantics: the previous set is discarded,
// duplicates in the input are stored as-is.
type AvailabilityRepository interface {
	Replace(ctx context.Context, vendorID string, dates []string) error
	ListDates(ctx context.Context, vendorID string) ([]string, error)
}

// EventPublisher delivers transition notifications to connected
// listeners. Delivery is best-effort: only currently connected
// listeners receive an event, and publishing never fails the caller.
type EventPublisher interface {
	PublishToAdmins(ctx context.Context, event string, payload any)
	PublishToVendor(ctx context.Context, vendorID, event string, payload any)
	PublishGlobal(ctx context.Context, event string, payload any)
}

// Notifier sends an SMS-like message to a phone number. Callers treat
// it as fire-and-forget: failures are logged, never propagated.
type Notifier interface {
	Send(ctx context.Context, mobile, message string) error
}

// BlobStore persists an uploaded file and returns a stable reference
// suitable for embedding in entity records.
type BlobStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// TransitionValidator checks whether an event is valid from a status
// and returns the destination status.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}
