// Package http exposes the request surface as a Huma API: vendor
// registration and login, admin approval workflow, public listings,
// bookings, accounts, and the SSE event stream.
package http

import (
	"errors"
	"mime/multipart"

	"github.com/danielgtaylor/huma/v2"

	"github.com/naandi/platform/internal/adapter/fanout"
	"github.com/naandi/platform/internal/app"
	"github.com/naandi/platform/internal/domain"
)

// Services bundles everything the handlers need.
type Services struct {
	Registrations *app.RegistrationService
	Vendors       *app.VendorService
	Bookings      *app.BookingService
	Auth          *app.AuthService
	Blobs         domain.BlobStore
	Hub           *fanout.Hub
}

// Register adds all API routes to the Huma API.
func Register(api huma.API, svc Services) {
	registerRegistrationRoutes(api, svc)
	registerVendorRoutes(api, svc)
	registerBookingRoutes(api, svc)
	registerAuthRoutes(api, svc)
	registerEventRoutes(api, svc)
}

// --- Responses ---

// LocationResponse is the API representation of a vendor's coordinates.
type LocationResponse struct {
	Lat float64 `json:"lat" doc:"Latitude"`
	Lng float64 `json:"lng" doc:"Longitude"`
}

// VendorResponse is the API representation of a vendor. The stored
// password is never included.
type VendorResponse struct {
	ID          string           `json:"id" doc:"Unique identifier"`
	Name        string           `json:"name" doc:"Contact name"`
	Email       string           `json:"email" doc:"Contact email"`
	Mobile      string           `json:"mobile" doc:"Contact mobile number"`
	ShopName    string           `json:"shopName" doc:"Business name"`
	Description string           `json:"description" doc:"Synthesized service description"`
	Services    string           `json:"services" doc:"Offered services"`
	Portfolio   string           `json:"portfolio" doc:"Portfolio summary"`
	Pricing     string           `json:"pricing" doc:"Pricing summary"`
	Address     string           `json:"address" doc:"Street address"`
	Location    LocationResponse `json:"location" doc:"Geographic position"`
	Images      []string         `json:"images" doc:"Uploaded media references"`
	ProfilePic  string           `json:"profilePic" doc:"Profile picture reference"`
	Status      string           `json:"status" doc:"Lifecycle state" enum:"pending,approved,rejected"`
	CreatedAt   string           `json:"createdAt" doc:"Creation timestamp (ISO 8601)"`
}

const timeFormat = "2006-01-02T15:04:05Z"

func toVendorResponse(v domain.Vendor) VendorResponse {
	images := v.Images
	if images == nil {
		images = []string{}
	}
	return VendorResponse{
		ID:          v.ID,
		Name:        v.Name,
		Email:       v.Email,
		Mobile:      v.Mobile,
		ShopName:    v.ShopName,
		Description: v.Description,
		Services:    v.Services,
		Portfolio:   v.Portfolio,
		Pricing:     v.Pricing,
		Address:     v.Address,
		Location:    LocationResponse{Lat: v.Location.Lat, Lng: v.Location.Lng},
		Images:      images,
		ProfilePic:  v.ProfilePic,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt.Format(timeFormat),
	}
}

func toVendorResponses(vendors []domain.Vendor) []VendorResponse {
	out := make([]VendorResponse, len(vendors))
	for i, v := range vendors {
		out[i] = toVendorResponse(v)
	}
	return out
}

// BookingResponse is the API representation of a booking.
type BookingResponse struct {
	ID           string `json:"id" doc:"Unique identifier"`
	VendorID     string `json:"vendorId" doc:"Referenced vendor"`
	CustomerName string `json:"customerName" doc:"Customer name"`
	Mobile       string `json:"mobile" doc:"Customer mobile number"`
	Date         string `json:"date" doc:"Requested date"`
	Notes        string `json:"notes" doc:"Free-form notes"`
	Status       string `json:"status" doc:"Lifecycle state" enum:"pending,approved,rejected"`
	CreatedAt    string `json:"createdAt" doc:"Creation timestamp (ISO 8601)"`
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		VendorID:     b.VendorID,
		CustomerName: b.CustomerName,
		Mobile:       b.Mobile,
		Date:         b.Date,
		Notes:        b.Notes,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt.Format(timeFormat),
	}
}

func toBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}
	return out
}

// OKResponse is the minimal success acknowledgement.
type OKResponse struct {
	OK bool `json:"ok" doc:"Always true on success"`
}

// --- Error translation ---

// toHumaError translates domain errors to Huma HTTP errors. Unexpected
// store failures surface as a generic 500.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, domain.ErrVendorNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return huma.Error401Unauthorized(err.Error())
	case errors.Is(err, domain.ErrVendorNotApproved):
		return huma.Error403Forbidden("not approved or not found")
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return huma.Error400BadRequest(validationErr.Error())
	}

	var conflictErr *domain.EmailConflictError
	if errors.As(err, &conflictErr) {
		return huma.Error409Conflict(conflictErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}

// formValue reads the first value of a multipart form field.
func formValue(form multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}
