package app

import (
	"context"
	"fmt"

	"github.com/naandi/platform/internal/domain"
)

// AuthService handles admin/customer accounts and the combined login
// that also accepts approved vendors by email.
//
// Credentials are stored and compared in plaintext, and signing up with
// the configured admin secret as password grants the admin role.
type AuthService struct {
	users       domain.UserRepository
	vendors     domain.VendorRepository
	adminSecret string
}

// NewAuthService creates a service with the given adapters. adminSecret
// is the signup password that selects the admin role.
func NewAuthService(users domain.UserRepository, vendors domain.VendorRepository, adminSecret string) *AuthService {
	return &AuthService{
		users:       users,
		vendors:     vendors,
		adminSecret: adminSecret,
	}
}

// LoginResult describes an authenticated principal.
type LoginResult struct {
	Role     domain.Role
	Name     string
	Email    string
	VendorID string
}

// Register creates an account. The role is customer unless the chosen
// password equals the admin signup secret. Fails with
// EmailConflictError when the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, mobile, password string) (domain.Role, error) {
	for field, value := range map[string]string{"name": name, "email": email, "password": password} {
		if value == "" {
			return "", &domain.ValidationError{Field: field}
		}
	}

	role := domain.RoleCustomer
	if password == s.adminSecret {
		role = domain.RoleAdmin
	}

	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("generating user id: %w", err)
	}

	user := domain.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Mobile:   mobile,
		Role:     role,
		Password: password,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return role, nil
}

// Login authenticates by email and password: platform accounts first,
// then approved vendors. A user record with a non-matching password
// falls through to the vendor lookup.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil && user.Password == password {
		return LoginResult{Role: user.Role, Name: user.Name, Email: user.Email}, nil
	}

	vendor, err := s.vendors.GetByEmail(ctx, email)
	if err == nil && vendor.Password == password && vendor.Status == domain.StatusApproved {
		return LoginResult{Role: domain.RoleVendor, Name: vendor.Name, Email: vendor.Email, VendorID: vendor.ID}, nil
	}

	return LoginResult{}, domain.ErrInvalidCredentials
}

// Profile returns the account for an email.
func (s *AuthService) Profile(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, &domain.ValidationError{Field: "email"}
	}
	return s.users.GetByEmail(ctx, email)
}

// SetProfilePic stores a profile picture reference on the account.
func (s *AuthService) SetProfilePic(ctx context.Context, email, ref string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	user.ProfilePic = ref

	if err := s.users.Update(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("updating profile picture: %w", err)
	}

	return user, nil
}
