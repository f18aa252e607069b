package domain

import "time"

// Booking is a customer's request to engage a vendor on a date.
// VendorID is a weak reference: the store does not enforce it, so
// deleting a vendor must cascade-delete its bookings explicitly.
type Booking struct {
	ID           string
	VendorID     string
	CustomerName string
	Mobile       string
	Date         string
	Notes        string
	Status       Status
	CreatedAt    time.Time
}

// NewBooking creates a booking in the initial "pending" state.
func NewBooking(id, vendorID, customerName, mobile, date, notes string) Booking {
	return Booking{
		ID:           id,
		VendorID:     vendorID,
		CustomerName: customerName,
		Mobile:       mobile,
		Date:         date,
		Notes:        notes,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
}
