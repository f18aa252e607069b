package domain

// Role classifies a platform account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	// RoleVendor is never stored on a User; it is reported by the
	// combined login when a vendor authenticates by email.
	RoleVendor Role = "vendor"
)

// User is an admin or customer account. Email is unique.
type User struct {
	ID         string
	Name       string
	Email      string
	Mobile     string
	Role       Role
	Password   string
	ProfilePic string
}
