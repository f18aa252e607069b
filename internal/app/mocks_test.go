package app_test

import (
	"context"
	"time"

	"github.com/naandi/platform/internal/domain"
)

// --- Mocks ---

type mockVendorRepo struct {
	vendors map[string]domain.Vendor
	deleted []string
}

func newMockVendorRepo() *mockVendorRepo {
	return &mockVendorRepo{vendors: make(map[string]domain.Vendor)}
}

func (m *mockVendorRepo) Create(_ context.Context, v domain.Vendor) error {
	m.vendors[v.ID] = v
	return nil
}

func (m *mockVendorRepo) GetByID(_ context.Context, id string) (domain.Vendor, error) {
	v, ok := m.vendors[id]
	if !ok {
		return domain.Vendor{}, domain.ErrVendorNotFound
	}
	return v, nil
}

func (m *mockVendorRepo) GetByEmail(_ context.Context, email string) (domain.Vendor, error) {
	for _, v := range m.vendors {
		if v.Email == email {
			return v, nil
		}
	}
	return domain.Vendor{}, domain.ErrVendorNotFound
}

func (m *mockVendorRepo) GetByMobile(_ context.Context, mobile string) (domain.Vendor, error) {
	for _, v := range m.vendors {
		if v.Mobile == mobile {
			return v, nil
		}
	}
	return domain.Vendor{}, domain.ErrVendorNotFound
}

func (m *mockVendorRepo) List(_ context.Context, filter domain.VendorFilter) ([]domain.Vendor, error) {
	out := make([]domain.Vendor, 0, len(m.vendors))
	for _, v := range m.vendors {
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockVendorRepo) Update(_ context.Context, v domain.Vendor) error {
	if _, ok := m.vendors[v.ID]; !ok {
		return domain.ErrVendorNotFound
	}
	m.vendors[v.ID] = v
	return nil
}

func (m *mockVendorRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.vendors[id]; !ok {
		return domain.ErrVendorNotFound
	}
	delete(m.vendors, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockRegRepo struct {
	regs map[string]domain.Registration
}

func newMockRegRepo() *mockRegRepo {
	return &mockRegRepo{regs: make(map[string]domain.Registration)}
}

func (m *mockRegRepo) Create(_ context.Context, r domain.Registration) error {
	m.regs[r.ID] = r
	return nil
}

func (m *mockRegRepo) GetByID(_ context.Context, id string) (domain.Registration, error) {
	r, ok := m.regs[id]
	if !ok {
		return domain.Registration{}, domain.ErrRegistrationNotFound
	}
	return r, nil
}

func (m *mockRegRepo) Update(_ context.Context, r domain.Registration) error {
	if _, ok := m.regs[r.ID]; !ok {
		return domain.ErrRegistrationNotFound
	}
	m.regs[r.ID] = r
	return nil
}

func (m *mockRegRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.regs[id]; !ok {
		return domain.ErrRegistrationNotFound
	}
	delete(m.regs, id)
	return nil
}

func (m *mockRegRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, r := range m.regs {
		if r.CreatedAt.Before(cutoff) {
			delete(m.regs, id)
			n++
		}
	}
	return n, nil
}

type mockBookingRepo struct {
	bookings map[string]domain.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]domain.Booking)}
}

func (m *mockBookingRepo) Create(_ context.Context, b domain.Booking) error {
	m.bookings[b.ID] = b
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}
	return b, nil
}

func (m *mockBookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.VendorID != "" && b.VendorID != filter.VendorID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookingRepo) Update(_ context.Context, b domain.Booking) error {
	if _, ok := m.bookings[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	m.bookings[b.ID] = b
	return nil
}

type mockUserRepo struct {
	users map[string]domain.User // keyed by email
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, u domain.User) error {
	if _, ok := m.users[u.Email]; ok {
		return &domain.EmailConflictError{Email: u.Email}
	}
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) Update(_ context.Context, u domain.User) error {
	if _, ok := m.users[u.Email]; !ok {
		return domain.ErrUserNotFound
	}
	m.users[u.Email] = u
	return nil
}

type mockAvailabilityRepo struct {
	dates map[string][]string
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{dates: make(map[string][]string)}
}

func (m *mockAvailabilityRepo) Replace(_ context.Context, vendorID string, dates []string) error {
	m.dates[vendorID] = dates
	return nil
}

func (m *mockAvailabilityRepo) ListDates(_ context.Context, vendorID string) ([]string, error) {
	return m.dates[vendorID], nil
}

// publishedEvent records one publish call with its audience.
type publishedEvent struct {
	audience string // "admins", "global", or "vendor:<id>"
	event    string
	payload  any
}

type mockPublisher struct {
	events []publishedEvent
}

func (m *mockPublisher) PublishToAdmins(_ context.Context, event string, payload any) {
	m.events = append(m.events, publishedEvent{audience: "admins", event: event, payload: payload})
}

func (m *mockPublisher) PublishToVendor(_ context.Context, vendorID, event string, payload any) {
	m.events = append(m.events, publishedEvent{audience: "vendor:" + vendorID, event: event, payload: payload})
}

func (m *mockPublisher) PublishGlobal(_ context.Context, event string, payload any) {
	m.events = append(m.events, publishedEvent{audience: "global", event: event, payload: payload})
}

type sentMessage struct {
	mobile  string
	message string
}

type mockNotifier struct {
	sent []sentMessage
	err  error
}

func (m *mockNotifier) Send(_ context.Context, mobile, message string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMessage{mobile: mobile, message: message})
	return nil
}

// tableValidator applies transitions straight from the domain table.
type tableValidator struct{}

func (tableValidator) Apply(_ context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	for _, t := range domain.Transitions {
		if t.Event == event && t.Src == current {
			return t.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}
