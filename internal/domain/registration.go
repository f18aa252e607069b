package domain

import "time"

// Registration is the transient staging record accumulating a vendor
// signup across the three registration steps. Step 1 fills the identity
// fields, step 2 merges in the plan fields, step 3 consumes the record
// and promotes it into a pending Vendor.
type Registration struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	Password     string
	BusinessName string
	Services     string
	Portfolio    string
	Pricing      string
	CreatedAt    time.Time
}

// NewRegistration creates a step-1 staging record with identity fields only.
func NewRegistration(id, name, email, mobile, password string) Registration {
	return Registration{
		ID:        id,
		Name:      name,
		Email:     email,
		Mobile:    mobile,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
}

// Promote builds the pending Vendor a completed registration becomes.
// The description is synthesized from the staged plan fields.
func (r Registration) Promote(vendorID, address string, lat, lng float64, images []string) Vendor {
	return Vendor{
		ID:          vendorID,
		Name:        r.Name,
		Email:       r.Email,
		Mobile:      r.Mobile,
		Password:    r.Password,
		ShopName:    r.BusinessName,
		Description: SynthesizeDescription(r.Services, r.Portfolio, r.Pricing),
		Services:    r.Services,
		Portfolio:   r.Portfolio,
		Pricing:     r.Pricing,
		Address:     address,
		Location:    Location{Lat: lat, Lng: lng},
		Images:      images,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}
