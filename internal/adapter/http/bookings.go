package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/naandi/platform/internal/domain"
)

type CreateBookingInput struct {
	Body struct {
		VendorID     string `json:"vendorId,omitempty" doc:"Vendor to book"`
		CustomerName string `json:"customerName,omitempty" doc:"Customer name"`
		Mobile       string `json:"mobile,omitempty" doc:"Customer mobile number"`
		Date         string `json:"date,omitempty" doc:"Requested date"`
		Notes        string `json:"notes,omitempty" doc:"Free-form notes"`
	}
}

type CreateBookingOutput struct {
	Body struct {
		OK      bool            `json:"ok"`
		Booking BookingResponse `json:"booking"`
	}
}

type ListBookingsInput struct {
	Status string `query:"status" required:"false" doc:"Filter by lifecycle state"`
}

type ListBookingsOutput struct {
	Body []BookingResponse
}

type BookingByIDInput struct {
	ID string `path:"id" doc:"Booking ID"`
}

type BookingActionOutput struct {
	Body OKResponse
}

func registerBookingRoutes(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "create-booking",
		Method:      http.MethodPost,
		Path:        "/api/bookings",
		Summary:     "Create a booking against an existing vendor",
		Tags:        []string{"Bookings"},
	}, func(ctx context.Context, input *CreateBookingInput) (*CreateBookingOutput, error) {
		booking, err := svc.Bookings.Create(ctx, input.Body.VendorID,
			input.Body.CustomerName, input.Body.Mobile, input.Body.Date, input.Body.Notes)
		if err != nil {
			return nil, toHumaError(err)
		}

		out := &CreateBookingOutput{}
		out.Body.OK = true
		out.Body.Booking = toBookingResponse(booking)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-list-bookings",
		Method:      http.MethodGet,
		Path:        "/api/admin/bookings",
		Summary:     "List bookings with optional status filter",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *ListBookingsInput) (*ListBookingsOutput, error) {
		filter := domain.BookingFilter{}
		if input.Status != "" {
			s := domain.Status(input.Status)
			filter.Status = &s
		}

		bookings, err := svc.Bookings.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListBookingsOutput{Body: toBookingResponses(bookings)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-approve-booking",
		Method:      http.MethodPost,
		Path:        "/api/admin/bookings/{id}/approve",
		Summary:     "Approve a booking",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *BookingByIDInput) (*BookingActionOutput, error) {
		if _, err := svc.Bookings.Approve(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &BookingActionOutput{Body: OKResponse{OK: true}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-reject-booking",
		Method:      http.MethodPost,
		Path:        "/api/admin/bookings/{id}/reject",
		Summary:     "Reject a booking",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *BookingByIDInput) (*BookingActionOutput, error) {
		if _, err := svc.Bookings.Reject(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &BookingActionOutput{Body: OKResponse{OK: true}}, nil
	})
}
