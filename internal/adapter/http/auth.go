package http

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type RegisterAccountInput struct {
	Body struct {
		Name     string `json:"name,omitempty" doc:"Display name"`
		Email    string `json:"email,omitempty" doc:"Account email, unique"`
		Mobile   string `json:"mobile,omitempty" doc:"Optional mobile number"`
		Password string `json:"password,omitempty" doc:"Password"`
	}
}

type RegisterAccountOutput struct {
	Body struct {
		OK   bool   `json:"ok"`
		Role string `json:"role" doc:"Assigned role" enum:"admin,customer"`
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email,omitempty" doc:"Account or vendor email"`
		Password string `json:"password,omitempty" doc:"Password"`
	}
}

type LoginOutput struct {
	Body struct {
		OK       bool   `json:"ok"`
		Role     string `json:"role" doc:"Authenticated role" enum:"admin,customer,vendor"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		VendorID string `json:"vendorId,omitempty" doc:"Set when a vendor authenticated"`
	}
}

type ProfileInput struct {
	Email string `query:"email" required:"false" doc:"Account email"`
}

type ProfileOutput struct {
	Body struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Role       string `json:"role"`
		ProfilePic string `json:"profilePic"`
	}
}

type ProfilePhotoInput struct {
	RawBody multipart.Form
}

type ProfilePhotoOutput struct {
	Body struct {
		OK         bool   `json:"ok"`
		ProfilePic string `json:"profilePic" doc:"Stored photo reference"`
	}
}

func registerAuthRoutes(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "auth-register",
		Method:      http.MethodPost,
		Path:        "/api/auth/register",
		Summary:     "Create an admin or customer account",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RegisterAccountInput) (*RegisterAccountOutput, error) {
		role, err := svc.Auth.Register(ctx, input.Body.Name, input.Body.Email, input.Body.Mobile, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &RegisterAccountOutput{}
		out.Body.OK = true
		out.Body.Role = string(role)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Login as account or approved vendor",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		result, err := svc.Auth.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &LoginOutput{}
		out.Body.OK = true
		out.Body.Role = string(result.Role)
		out.Body.Name = result.Name
		out.Body.Email = result.Email
		out.Body.VendorID = result.VendorID
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-profile",
		Method:      http.MethodGet,
		Path:        "/api/admin/me",
		Summary:     "Fetch an account profile by email",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *ProfileInput) (*ProfileOutput, error) {
		user, err := svc.Auth.Profile(ctx, input.Email)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &ProfileOutput{}
		out.Body.Name = user.Name
		out.Body.Email = user.Email
		out.Body.Role = string(user.Role)
		out.Body.ProfilePic = user.ProfilePic
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-profile-photo",
		Method:      http.MethodPost,
		Path:        "/api/admin/me/photo",
		Summary:     "Upload an account profile photo",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *ProfilePhotoInput) (*ProfilePhotoOutput, error) {
		form := input.RawBody

		email := formValue(form, "email")
		if email == "" {
			return nil, huma.Error400BadRequest("email required")
		}

		files := form.File["photo"]
		if len(files) == 0 {
			return nil, huma.Error400BadRequest("photo required")
		}

		refs, err := saveUploads(ctx, svc, files[:1])
		if err != nil {
			return nil, err
		}

		user, err := svc.Auth.SetProfilePic(ctx, email, refs[0])
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &ProfilePhotoOutput{}
		out.Body.OK = true
		out.Body.ProfilePic = user.ProfilePic
		return out, nil
	})
}
