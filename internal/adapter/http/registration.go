package http

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// maxMediaFiles caps how many portfolio images one registration may attach.
const maxMediaFiles = 10

// --- Step 1: identity ---

type BeginRegistrationInput struct {
	Body struct {
		Name     string `json:"name,omitempty" doc:"Contact name"`
		Email    string `json:"email,omitempty" doc:"Contact email"`
		Mobile   string `json:"mobile,omitempty" doc:"Contact mobile number"`
		Password string `json:"password,omitempty" doc:"Optional password"`
	}
}

type BeginRegistrationOutput struct {
	Body struct {
		TempID  string `json:"tempId" doc:"Staging record identifier for the next steps"`
		Message string `json:"message"`
	}
}

// --- Step 2: plan ---

type AddPlanInput struct {
	Body struct {
		TempID       string `json:"tempId,omitempty" doc:"Staging record identifier"`
		BusinessName string `json:"businessName,omitempty" doc:"Business name"`
		Services     string `json:"services,omitempty" doc:"Offered services"`
		Portfolio    string `json:"portfolio,omitempty" doc:"Portfolio summary"`
		Pricing      string `json:"pricing,omitempty" doc:"Pricing summary"`
	}
}

type AddPlanOutput struct {
	Body OKResponse
}

// --- Step 3: location + media ---

type CompleteRegistrationInput struct {
	RawBody multipart.Form
}

type CompleteRegistrationOutput struct {
	Body struct {
		Message  string `json:"message"`
		VendorID string `json:"vendorId" doc:"Identifier of the created vendor"`
	}
}

func registerRegistrationRoutes(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "vendor-register",
		Method:      http.MethodPost,
		Path:        "/api/vendor/register",
		Summary:     "Start a vendor signup (step 1)",
		Tags:        []string{"Registration"},
	}, func(ctx context.Context, input *BeginRegistrationInput) (*BeginRegistrationOutput, error) {
		reg, err := svc.Registrations.Begin(ctx, input.Body.Name, input.Body.Email, input.Body.Mobile, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &BeginRegistrationOutput{}
		out.Body.TempID = reg.ID
		out.Body.Message = "Proceed to next step"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-register-plans",
		Method:      http.MethodPost,
		Path:        "/api/vendor/register/plans",
		Summary:     "Add business and plan details (step 2)",
		Tags:        []string{"Registration"},
	}, func(ctx context.Context, input *AddPlanInput) (*AddPlanOutput, error) {
		err := svc.Registrations.AddPlan(ctx, input.Body.TempID,
			input.Body.BusinessName, input.Body.Services, input.Body.Portfolio, input.Body.Pricing)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &AddPlanOutput{Body: OKResponse{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "vendor-register-complete",
		Method:      http.MethodPost,
		Path:        "/api/vendor/register/complete",
		Summary:     "Finish signup with location and media (step 3)",
		Tags:        []string{"Registration"},
	}, func(ctx context.Context, input *CompleteRegistrationInput) (*CompleteRegistrationOutput, error) {
		form := input.RawBody

		files := form.File["media"]
		if len(files) > maxMediaFiles {
			return nil, huma.Error400BadRequest("too many media files")
		}

		refs, err := saveUploads(ctx, svc, files)
		if err != nil {
			return nil, err
		}

		lat, _ := strconv.ParseFloat(formValue(form, "lat"), 64)
		lng, _ := strconv.ParseFloat(formValue(form, "lng"), 64)

		vendor, err := svc.Registrations.Complete(ctx,
			formValue(form, "tempId"), formValue(form, "address"), lat, lng, refs)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &CompleteRegistrationOutput{}
		out.Body.Message = "Application Submitted, Waiting for Admin's Approval."
		out.Body.VendorID = vendor.ID
		return out, nil
	})
}

// saveUploads stores each uploaded file and returns the blob references.
func saveUploads(ctx context.Context, svc Services, files []*multipart.FileHeader) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, huma.Error400BadRequest("unreadable upload: " + fh.Filename)
		}

		ref, err := svc.Blobs.Save(ctx, fh.Filename, f)
		f.Close()
		if err != nil {
			return nil, huma.Error500InternalServerError("storing upload failed")
		}

		refs = append(refs, ref)
	}
	return refs, nil
}
