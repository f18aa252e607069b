package domain

import (
	"strings"
	"time"
)

// Status represents the lifecycle state of a vendor or booking.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Event represents an admin action that triggers a state transition.
type Event string

const (
	EventApprove Event = "approve"
	EventReject  Event = "reject"
)

// Transition defines a valid state change: an event moves an entity from Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions defines all valid state changes in the approval lifecycle.
// Vendors and bookings share the same table. This is domain knowledge
// consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventApprove, Src: StatusPending, Dst: StatusApproved},
	{Event: EventReject, Src: StatusPending, Dst: StatusRejected},
}

// Destination returns the target status of an event, regardless of source.
// Used to detect idempotent re-application (re-approving an approved
// vendor keeps the status but still re-fires notifications).
func (e Event) Destination() Status {
	for _, t := range Transitions {
		if t.Event == e {
			return t.Dst
		}
	}
	return ""
}

// Location is a geographic point attached to a vendor.
type Location struct {
	Lat float64
	Lng float64
}

// Vendor is a service provider subject to admin approval before it
// becomes publicly listed and bookable.
type Vendor struct {
	ID          string
	Name        string
	Email       string
	Mobile      string
	Password    string
	ShopName    string
	Description string
	Services    string
	Portfolio   string
	Pricing     string
	Address     string
	Location    Location
	Images      []string
	ProfilePic  string
	Status      Status
	CreatedAt   time.Time
}

// ProfileUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged"; Lat/Lng only apply together.
type ProfileUpdate struct {
	ShopName    *string
	Description *string
	Address     *string
	Lat         *float64
	Lng         *float64
	ProfilePic  *string
}

// Apply merges the update into the vendor in place.
func (u ProfileUpdate) Apply(v *Vendor) {
	if u.ShopName != nil {
		v.ShopName = *u.ShopName
	}
	if u.Description != nil {
		v.Description = *u.Description
	}
	if u.Address != nil {
		v.Address = *u.Address
	}
	if u.Lat != nil && u.Lng != nil {
		v.Location = Location{Lat: *u.Lat, Lng: *u.Lng}
	}
	if u.ProfilePic != nil {
		v.ProfilePic = *u.ProfilePic
	}
}

// SynthesizeDescription builds the human-readable vendor description
// from the staged plan fields. Services always contributes a line
// (falling back to "N/A"); portfolio and pricing only when non-empty.
func SynthesizeDescription(services, portfolio, pricing string) string {
	lines := make([]string, 0, 3)
	if services == "" {
		services = "N/A"
	}
	lines = append(lines, "Services: "+services)
	if portfolio != "" {
		lines = append(lines, "Portfolio: "+portfolio)
	}
	if pricing != "" {
		lines = append(lines, "Pricing: "+pricing)
	}
	return strings.Join(lines, "\n")
}
