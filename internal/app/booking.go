package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naandi/platform/internal/domain"
)

// BookingService orchestrates the booking lifecycle: customer creation
// against an existing vendor and admin approval transitions.
type BookingService struct {
	bookings  domain.BookingRepository
	vendors   domain.VendorRepository
	validator domain.TransitionValidator
	publisher domain.EventPublisher
	notifier  domain.Notifier
}

// NewBookingService creates a service with the given adapters.
func NewBookingService(
	bookings domain.BookingRepository,
	vendors domain.VendorRepository,
	validator domain.TransitionValidator,
	publisher domain.EventPublisher,
	notifier domain.Notifier,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		vendors:   vendors,
		validator: validator,
		publisher: publisher,
		notifier:  notifier,
	}
}

// Create records a pending booking against an existing vendor and
// announces it to the admin audience. The vendor must exist but does
// not have to be approved yet.
func (s *BookingService) Create(ctx context.Context, vendorID, customerName, mobile, date, notes string) (domain.Booking, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return domain.Booking{}, err
	}

	id, err := generateID()
	if err != nil {
		return domain.Booking{}, fmt.Errorf("generating booking id: %w", err)
	}

	booking := domain.NewBooking(id, vendorID, customerName, mobile, date, notes)

	if err := s.bookings.Create(ctx, booking); err != nil {
		return domain.Booking{}, fmt.Errorf("creating booking: %w", err)
	}

	s.publisher.PublishToAdmins(ctx, domain.EventAdminNewBooking, booking)

	return booking, nil
}

// List returns bookings matching the filter (admin listing).
func (s *BookingService) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, filter)
}

// Approve moves a booking to approved, then notifies the owning vendor
// with a targeted event and an SMS. The vendor lookup is best-effort:
// if the vendor is gone the notification is skipped silently.
func (s *BookingService) Approve(ctx context.Context, id string) (domain.Booking, error) {
	booking, err := s.transition(ctx, id, domain.EventApprove)
	if err != nil {
		return domain.Booking{}, err
	}

	vendor, err := s.vendors.GetByID(ctx, booking.VendorID)
	if err == nil {
		s.publisher.PublishToVendor(ctx, vendor.ID, domain.EventBookingApproved, booking)
		s.notify(ctx, vendor.Mobile, fmt.Sprintf("New booking approved for %s by %s", booking.Date, booking.CustomerName))
	}

	return booking, nil
}

// Reject moves a booking to rejected. No notification side effects.
func (s *BookingService) Reject(ctx context.Context, id string) (domain.Booking, error) {
	return s.transition(ctx, id, domain.EventReject)
}

// transition applies an approval event to a booking with the same
// idempotency rule as vendors: re-applying the current status succeeds
// without touching state.
func (s *BookingService) transition(ctx context.Context, id string, event domain.Event) (domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}

	if booking.Status == event.Destination() {
		return booking, nil
	}

	newStatus, err := s.validator.Apply(ctx, booking.Status, event)
	if err != nil {
		return domain.Booking{}, err
	}

	booking.Status = newStatus

	if err := s.bookings.Update(ctx, booking); err != nil {
		return domain.Booking{}, fmt.Errorf("updating booking: %w", err)
	}

	return booking, nil
}

func (s *BookingService) notify(ctx context.Context, mobile, message string) {
	if err := s.notifier.Send(ctx, mobile, message); err != nil {
		slog.WarnContext(ctx, "sms notification failed", "mobile", mobile, "error", err)
	}
}
