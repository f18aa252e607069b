package domain

// Wire event names delivered through the EventPublisher. The admin
// audience receives the admin:* events, a vendor's private audience
// receives the vendor:* events, and vendors:updated goes to everyone.
const (
	EventAdminNewVendor  = "admin:newVendor"
	EventAdminNewBooking = "admin:newBooking"
	EventVendorsUpdated  = "vendors:updated"
	EventVendorApproved  = "vendor:approved"
	EventBookingApproved = "vendor:bookingApproved"
)

// VendorStatusChange is the vendors:updated payload for a status flip.
type VendorStatusChange struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

// VendorDeleted is the vendors:updated payload for a removal.
type VendorDeleted struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
