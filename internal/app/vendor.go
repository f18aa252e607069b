package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naandi/platform/internal/domain"
)

// SMS messages sent on vendor transitions.
const (
	msgVendorApproved = "Your Application has been Approved."
	msgVendorRejected = "Your Application has been Rejected."
)

// VendorService orchestrates vendor lifecycle operations: admin
// approval transitions, cascade delete, login, profile and
// availability updates.
type VendorService struct {
	vendors      domain.VendorRepository
	bookings     domain.BookingRepository
	availability domain.AvailabilityRepository
	validator    domain.TransitionValidator
	publisher    domain.EventPublisher
	notifier     domain.Notifier
}

// NewVendorService creates a service with the given adapters.
func NewVendorService(
	vendors domain.VendorRepository,
	bookings domain.BookingRepository,
	availability domain.AvailabilityRepository,
	validator domain.TransitionValidator,
	publisher domain.EventPublisher,
	notifier domain.Notifier,
) *VendorService {
	return &VendorService{
		vendors:      vendors,
		bookings:     bookings,
		availability: availability,
		validator:    validator,
		publisher:    publisher,
		notifier:     notifier,
	}
}

// GetByID returns a vendor regardless of status (admin detail view).
func (s *VendorService) GetByID(ctx context.Context, id string) (domain.Vendor, error) {
	return s.vendors.GetByID(ctx, id)
}

// List returns vendors matching the filter (admin listing).
func (s *VendorService) List(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, error) {
	return s.vendors.List(ctx, filter)
}

// ListPublic returns approved vendors only. A vendor is publicly
// visible if and only if its status is approved.
func (s *VendorService) ListPublic(ctx context.Context) ([]domain.Vendor, error) {
	status := domain.StatusApproved
	return s.vendors.List(ctx, domain.VendorFilter{Status: &status})
}

// GetPublic returns an approved vendor by id, or ErrVendorNotFound for
// vendors that exist but are not approved.
func (s *VendorService) GetPublic(ctx context.Context, id string) (domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, err
	}
	if vendor.Status != domain.StatusApproved {
		return domain.Vendor{}, domain.ErrVendorNotFound
	}
	return vendor, nil
}

// Approve moves a vendor to approved and fires side effects in order:
// SMS to the vendor, global vendors:updated broadcast, targeted
// vendor:approved event. Re-approving an approved vendor keeps the
// status but re-fires the side effects.
func (s *VendorService) Approve(ctx context.Context, id string) (domain.Vendor, error) {
	vendor, err := s.transition(ctx, id, domain.EventApprove)
	if err != nil {
		return domain.Vendor{}, err
	}

	s.notify(ctx, vendor.Mobile, msgVendorApproved)
	s.publisher.PublishGlobal(ctx, domain.EventVendorsUpdated, domain.VendorStatusChange{ID: vendor.ID, Status: vendor.Status})
	s.publisher.PublishToVendor(ctx, vendor.ID, domain.EventVendorApproved, vendor)

	return vendor, nil
}

// Reject moves a vendor to rejected, notifies it by SMS, and
// broadcasts the list change. Rejection has no targeted event.
func (s *VendorService) Reject(ctx context.Context, id string) (domain.Vendor, error) {
	vendor, err := s.transition(ctx, id, domain.EventReject)
	if err != nil {
		return domain.Vendor{}, err
	}

	s.notify(ctx, vendor.Mobile, msgVendorRejected)
	s.publisher.PublishGlobal(ctx, domain.EventVendorsUpdated, domain.VendorStatusChange{ID: vendor.ID, Status: vendor.Status})

	return vendor, nil
}

// transition applies an approval event to a vendor. Applying an event
// whose destination equals the current status is a success no-op on
// state, so concurrent duplicate calls both succeed.
func (s *VendorService) transition(ctx context.Context, id string, event domain.Event) (domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, err
	}

	if vendor.Status == event.Destination() {
		return vendor, nil
	}

	newStatus, err := s.validator.Apply(ctx, vendor.Status, event)
	if err != nil {
		return domain.Vendor{}, err
	}

	vendor.Status = newStatus

	if err := s.vendors.Update(ctx, vendor); err != nil {
		return domain.Vendor{}, fmt.Errorf("updating vendor: %w", err)
	}

	return vendor, nil
}

// Delete removes a vendor and all bookings referencing it, then
// broadcasts the removal to every connected listener.
func (s *VendorService) Delete(ctx context.Context, id string) error {
	if err := s.vendors.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.PublishGlobal(ctx, domain.EventVendorsUpdated, domain.VendorDeleted{ID: id, Deleted: true})
	return nil
}

// LoginByMobile authenticates a vendor by mobile number. The password
// is only checked when supplied. Unknown or unapproved vendors both
// fail with ErrVendorNotApproved, so callers cannot probe for
// existence.
func (s *VendorService) LoginByMobile(ctx context.Context, mobile, password string) (domain.Vendor, error) {
	vendor, err := s.vendors.GetByMobile(ctx, mobile)
	if err != nil {
		return domain.Vendor{}, domain.ErrVendorNotApproved
	}
	if vendor.Status != domain.StatusApproved {
		return domain.Vendor{}, domain.ErrVendorNotApproved
	}
	if password != "" && vendor.Password != password {
		return domain.Vendor{}, domain.ErrVendorNotApproved
	}
	return vendor, nil
}

// LoginByEmail authenticates an approved vendor by email and password.
func (s *VendorService) LoginByEmail(ctx context.Context, email, password string) (domain.Vendor, error) {
	if email == "" {
		return domain.Vendor{}, &domain.ValidationError{Field: "email"}
	}
	if password == "" {
		return domain.Vendor{}, &domain.ValidationError{Field: "password"}
	}

	vendor, err := s.vendors.GetByEmail(ctx, email)
	if err != nil || vendor.Password != password || vendor.Status != domain.StatusApproved {
		return domain.Vendor{}, domain.ErrInvalidCredentials
	}
	return vendor, nil
}

// UpdateProfile applies a partial profile update and broadcasts the
// refreshed vendor to all listeners.
func (s *VendorService) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, err
	}

	update.Apply(&vendor)

	if err := s.vendors.Update(ctx, vendor); err != nil {
		return domain.Vendor{}, fmt.Errorf("updating vendor profile: %w", err)
	}

	s.publisher.PublishGlobal(ctx, domain.EventVendorsUpdated, vendor)

	return vendor, nil
}

// Availability returns the vendor's stored availability dates.
func (s *VendorService) Availability(ctx context.Context, vendorID string) ([]string, error) {
	return s.availability.ListDates(ctx, vendorID)
}

// SetAvailability replaces the vendor's availability wholesale.
// An empty list clears it.
func (s *VendorService) SetAvailability(ctx context.Context, vendorID string, dates []string) error {
	return s.availability.Replace(ctx, vendorID, dates)
}

// Orders returns all bookings referencing the vendor.
func (s *VendorService) Orders(ctx context.Context, vendorID string) ([]domain.Booking, error) {
	return s.bookings.List(ctx, domain.BookingFilter{VendorID: vendorID})
}

// notify sends an SMS and swallows any failure: notification is
// best-effort and must never fail the triggering transition.
func (s *VendorService) notify(ctx context.Context, mobile, message string) {
	if err := s.notifier.Send(ctx, mobile, message); err != nil {
		slog.WarnContext(ctx, "sms notification failed", "mobile", mobile, "error", err)
	}
}
