package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/naandi/platform/internal/adapter/fanout"
	"github.com/naandi/platform/internal/domain"
)

// SSE message types. Huma resolves the SSE event name from the Go type,
// so each wire event gets its own named type even when payloads match.
type (
	NewVendorEvent       VendorResponse
	VendorApprovedEvent  VendorResponse
	NewBookingEvent      BookingResponse
	BookingApprovedEvent BookingResponse
	// VendorsUpdatedEvent carries {id,status}, {id,deleted} or a full
	// vendor, depending on what changed.
	VendorsUpdatedEvent map[string]any
)

type EventStreamInput struct {
	Audience string `query:"audience" required:"false" doc:"Set to \"admin\" to join the admin audience"`
	Vendor   string `query:"vendor" required:"false" doc:"Vendor ID to join that vendor's private audience"`
}

func registerEventRoutes(api huma.API, svc Services) {
	sse.Register(api, huma.Operation{
		OperationID: "stream-events",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Live lifecycle event stream",
		Tags:        []string{"Events"},
	}, map[string]any{
		domain.EventAdminNewVendor:  NewVendorEvent{},
		domain.EventAdminNewBooking: NewBookingEvent{},
		domain.EventVendorsUpdated:  VendorsUpdatedEvent{},
		domain.EventVendorApproved:  VendorApprovedEvent{},
		domain.EventBookingApproved: BookingApprovedEvent{},
	}, func(ctx context.Context, input *EventStreamInput, send sse.Sender) {
		var sub *fanout.Subscription
		switch {
		case input.Audience == "admin":
			sub = svc.Hub.SubscribeAdmin()
		case input.Vendor != "":
			sub = svc.Hub.SubscribeVendor(input.Vendor)
		default:
			sub = svc.Hub.SubscribeGlobal()
		}
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case n := <-sub.Events():
				if err := send.Data(toStreamEvent(n)); err != nil {
					return
				}
			}
		}
	})
}

// toStreamEvent converts a fanout notification into the typed SSE
// message matching its wire event name.
func toStreamEvent(n fanout.Notification) any {
	switch payload := n.Payload.(type) {
	case domain.Vendor:
		resp := toVendorResponse(payload)
		switch n.Event {
		case domain.EventAdminNewVendor:
			return NewVendorEvent(resp)
		case domain.EventVendorApproved:
			return VendorApprovedEvent(resp)
		default:
			// Profile edits broadcast the full vendor on vendors:updated.
			return vendorAsUpdate(resp)
		}
	case domain.Booking:
		resp := toBookingResponse(payload)
		if n.Event == domain.EventAdminNewBooking {
			return NewBookingEvent(resp)
		}
		return BookingApprovedEvent(resp)
	case domain.VendorStatusChange:
		return VendorsUpdatedEvent{"id": payload.ID, "status": string(payload.Status)}
	case domain.VendorDeleted:
		return VendorsUpdatedEvent{"id": payload.ID, "deleted": true}
	default:
		return VendorsUpdatedEvent{}
	}
}

func vendorAsUpdate(v VendorResponse) VendorsUpdatedEvent {
	raw, err := json.Marshal(v)
	if err != nil {
		return VendorsUpdatedEvent{"id": v.ID}
	}
	var m VendorsUpdatedEvent
	if err := json.Unmarshal(raw, &m); err != nil {
		return VendorsUpdatedEvent{"id": v.ID}
	}
	return m
}
