package app

import (
	"context"
	"fmt"
	"time"

	"github.com/naandi/platform/internal/domain"
)

// RegistrationService owns the three-step staged vendor signup: step 1
// creates a staging record, step 2 merges the plan fields, step 3
// promotes the record into a pending vendor and deletes the staging row.
type RegistrationService struct {
	regs      domain.RegistrationRepository
	vendors   domain.VendorRepository
	publisher domain.EventPublisher
}

// NewRegistrationService creates a service with the given adapters.
func NewRegistrationService(regs domain.RegistrationRepository, vendors domain.VendorRepository, publisher domain.EventPublisher) *RegistrationService {
	return &RegistrationService{
		regs:      regs,
		vendors:   vendors,
		publisher: publisher,
	}
}

// Begin starts a signup with the identity fields. Name, email, and
// mobile are required; the password may be empty.
func (s *RegistrationService) Begin(ctx context.Context, name, email, mobile, password string) (domain.Registration, error) {
	for field, value := range map[string]string{"name": name, "email": email, "mobile": mobile} {
		if value == "" {
			return domain.Registration{}, &domain.ValidationError{Field: field}
		}
	}

	id, err := generateID()
	if err != nil {
		return domain.Registration{}, fmt.Errorf("generating registration id: %w", err)
	}

	reg := domain.NewRegistration(id, name, email, mobile, password)

	if err := s.regs.Create(ctx, reg); err != nil {
		return domain.Registration{}, fmt.Errorf("creating registration: %w", err)
	}

	return reg, nil
}

// AddPlan merges the business and plan fields into an existing staging
// record. Pure update: no new record is created.
func (s *RegistrationService) AddPlan(ctx context.Context, id, businessName, services, portfolio, pricing string) error {
	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	reg.BusinessName = businessName
	reg.Services = services
	reg.Portfolio = portfolio
	reg.Pricing = pricing

	if err := s.regs.Update(ctx, reg); err != nil {
		return fmt.Errorf("updating registration: %w", err)
	}
	return nil
}

// Complete promotes a staging record into a pending vendor, deletes the
// staging row, and announces the new vendor to the admin audience.
func (s *RegistrationService) Complete(ctx context.Context, id, address string, lat, lng float64, images []string) (domain.Vendor, error) {
	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		return domain.Vendor{}, err
	}

	vendorID, err := generateID()
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("generating vendor id: %w", err)
	}

	vendor := reg.Promote(vendorID, address, lat, lng, images)

	if err := s.vendors.Create(ctx, vendor); err != nil {
		return domain.Vendor{}, fmt.Errorf("creating vendor: %w", err)
	}

	if err := s.regs.Delete(ctx, id); err != nil {
		return domain.Vendor{}, fmt.Errorf("deleting registration: %w", err)
	}

	s.publisher.PublishToAdmins(ctx, domain.EventAdminNewVendor, vendor)

	return vendor, nil
}

// SweepExpired deletes staging records older than the given age.
// Abandoned signups otherwise accumulate forever.
func (s *RegistrationService) SweepExpired(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	n, err := s.regs.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweeping registrations: %w", err)
	}
	return n, nil
}
