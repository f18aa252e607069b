package http

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/naandi/platform/internal/domain"
)

// --- Admin: listing and transitions ---

type ListVendorsInput struct {
	Status string `query:"status" required:"false" doc:"Filter by lifecycle state"`
}

type ListVendorsOutput struct {
	Body []VendorResponse
}

type VendorByIDInput struct {
	ID string `path:"id" doc:"Vendor ID"`
}

type VendorOutput struct {
	Body VendorResponse
}

type VendorActionOutput struct {
	Body OKResponse
}

type DeleteVendorOutput struct {
	Body struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
}

// --- Login ---

type VendorLoginInput struct {
	Body struct {
		Mobile   string `json:"mobile,omitempty" doc:"Registered mobile number"`
		Password string `json:"password,omitempty" doc:"Password, checked only when set"`
	}
}

type VendorEmailLoginInput struct {
	Body struct {
		Email    string `json:"email,omitempty" doc:"Registered email"`
		Password string `json:"password,omitempty" doc:"Password"`
	}
}

type VendorLoginOutput struct {
	Body struct {
		VendorID string         `json:"vendorId"`
		Vendor   VendorResponse `json:"vendor"`
	}
}

// --- Availability / orders / profile ---

type AvailabilityOutput struct {
	Body []string
}

type SetAvailabilityInput struct {
	ID   string `path:"id" doc:"Vendor ID"`
	Body struct {
		Dates []string `json:"dates,omitempty" doc:"Full replacement set of available dates"`
	}
}

type VendorOrdersOutput struct {
	Body []BookingResponse
}

type UpdateProfileInput struct {
	ID      string `path:"id" doc:"Vendor ID"`
	RawBody multipart.Form
}

type UpdateProfileOutput struct {
	Body struct {
		OK     bool           `json:"ok"`
		Vendor VendorResponse `json:"vendor"`
	}
}

func registerVendorRoutes(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-vendors",
		Method:      http.MethodGet,
		Path:        "/api/admin/vendors",
		Summary:     "List vendors with optional status filter",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *ListVendorsInput) (*ListVendorsOutput, error) {
		filter := domain.VendorFilter{}
		if input.Status != "" {
			s := domain.Status(input.Status)
			filter.Status = &s
		}

		vendors, err := svc.Vendors.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListVendorsOutput{Body: toVendorResponses(vendors)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-get-vendor",
		Method:      http.MethodGet,
		Path:        "/api/admin/vendor/{id}",
		Summary:     "Vendor detail, any status",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *VendorByIDInput) (*VendorOutput, error) {
		vendor, err := svc.Vendors.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VendorOutput{Body: toVendorResponse(vendor)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-approve-vendor",
		Method:      http.MethodPost,
		Path:        "/api/admin/vendor/{id}/approve",
		Summary:     "Approve a vendor",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *VendorByIDInput) (*VendorActionOutput, error) {
		if _, err := svc.Vendors.Approve(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &VendorActionOutput{Body: OKResponse{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-reject-vendor",
		Method:      http.MethodPost,
		Path:        "/api/admin/vendor/{id}/reject",
		Summary:     "Reject a vendor",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *VendorByIDInput) (*VendorActionOutput, error) {
		if _, err := svc.Vendors.Reject(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &VendorActionOutput{Body: OKResponse{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-delete-vendor",
		Method:      http.MethodDelete,
		Path:        "/api/admin/vendor/{id}",
		Summary:     "Delete a vendor and its bookings",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *VendorByIDInput) (*DeleteVendorOutput, error) {
		if err := svc.Vendors.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}

		out := &DeleteVendorOutput{}
		out.Body.OK = true
		out.Body.Message = "Vendor deleted successfully"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-login",
		Method:      http.MethodPost,
		Path:        "/api/vendor/login",
		Summary:     "Vendor login by mobile number",
		Tags:        []string{"Vendor"},
	}, func(ctx context.Context, input *VendorLoginInput) (*VendorLoginOutput, error) {
		vendor, err := svc.Vendors.LoginByMobile(ctx, input.Body.Mobile, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &VendorLoginOutput{}
		out.Body.VendorID = vendor.ID
		out.Body.Vendor = toVendorResponse(vendor)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-login-email",
		Method:      http.MethodPost,
		Path:        "/api/vendor/login/email",
		Summary:     "Vendor login by email and password",
		Tags:        []string{"Vendor"},
	}, func(ctx context.Context, input *VendorEmailLoginInput) (*VendorLoginOutput, error) {
		vendor, err := svc.Vendors.LoginByEmail(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &VendorLoginOutput{}
		out.Body.VendorID = vendor.ID
		out.Body.Vendor = toVendorResponse(vendor)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-get-availability",
		Method:      http.MethodGet,
		Path:        "/api/vendor/{id}/availability",
		Summary:     "Read a vendor's availability dates",
		Tags:        []string{"Vendor"},
	}, func(ctx context.Context, input *VendorByIDInput) (*AvailabilityOutput, error) {
		dates, err := svc.Vendors.Availability(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		if dates == nil {
			dates = []string{}
		}
		return &AvailabilityOutput{Body: dates}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-set-availability",
		Method:      http.MethodPost,
		Path:        "/api/vendor/{id}/availability",
		Summary:     "Replace a vendor's availability dates",
		Tags:        []string{"Vendor"},
	}, func(ctx context.Context, input *SetAvailabilityInput) (*VendorActionOutput, error) {
		if err := svc.Vendors.SetAvailability(ctx, input.ID, input.Body.Dates); err != nil {
			return nil, toHumaError(err)
		}
		return &VendorActionOutput{Body: OKResponse{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-list-orders",
		Method:      http.MethodGet,
		Path:        "/api/vendor/{id}/orders",
		Summary:     "List bookings referencing a vendor",
		Tags:        []string{"Vendor"},
	}, func(ctx context.Context, input *VendorByIDInput) (*VendorOrdersOutput, error) {
		bookings, err := svc.Vendors.Orders(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VendorOrdersOutput{Body: toBookingResponses(bookings)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-update-profile",
		Method:      http.MethodPost,
		Path:        "/api/vendor/{id}/profile",
		Summary:     "Update vendor profile, optionally with a new photo",
		Tags:        []string{"Vendor"},
	}, func(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
		update, err := profileUpdateFromForm(ctx, svc, input.RawBody)
		if err != nil {
			return nil, err
		}

		vendor, err := svc.Vendors.UpdateProfile(ctx, input.ID, update)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &UpdateProfileOutput{}
		out.Body.OK = true
		out.Body.Vendor = toVendorResponse(vendor)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "public-list-vendors",
		Method:      http.MethodGet,
		Path:        "/api/vendors",
		Summary:     "List approved vendors",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, _ *struct{}) (*ListVendorsOutput, error) {
		vendors, err := svc.Vendors.ListPublic(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListVendorsOutput{Body: toVendorResponses(vendors)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "public-get-vendor",
		Method:      http.MethodGet,
		Path:        "/api/vendors/{id}",
		Summary:     "Approved vendor detail",
		Tags:        []string{"Public"},
	}, func(ctx context.Context, input *VendorByIDInput) (*VendorOutput, error) {
		vendor, err := svc.Vendors.GetPublic(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &VendorOutput{Body: toVendorResponse(vendor)}, nil
	})
}

// profileUpdateFromForm builds the partial update from multipart fields.
// Absent fields stay untouched; a "profilePic" file is stored first.
func profileUpdateFromForm(ctx context.Context, svc Services, form multipart.Form) (domain.ProfileUpdate, error) {
	var update domain.ProfileUpdate

	setIfPresent := func(key string, dst **string) {
		if values := form.Value[key]; len(values) > 0 {
			v := values[0]
			*dst = &v
		}
	}
	setIfPresent("shopName", &update.ShopName)
	setIfPresent("description", &update.Description)
	setIfPresent("address", &update.Address)

	latRaw, lngRaw := formValue(form, "lat"), formValue(form, "lng")
	if latRaw != "" && lngRaw != "" {
		lat, _ := strconv.ParseFloat(latRaw, 64)
		lng, _ := strconv.ParseFloat(lngRaw, 64)
		update.Lat, update.Lng = &lat, &lng
	}

	if files := form.File["profilePic"]; len(files) > 0 {
		refs, err := saveUploads(ctx, svc, files[:1])
		if err != nil {
			return domain.ProfileUpdate{}, err
		}
		update.ProfilePic = &refs[0]
	}

	return update, nil
}
