package http_test

import (
	"net/http"
	"testing"

	adapter "github.com/naandi/platform/internal/adapter/http"
)

func TestCreateBooking(t *testing.T) {
	srv := newTestServer(t)

	id := registerVendor(t, srv, "Asha", "asha@example.com", "9876543210")
	approveVendor(t, srv, id)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/bookings",
		`{"vendorId":"`+id+`","customerName":"Ravi","mobile":"9000000001","date":"2026-09-15","notes":"evening"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		OK      bool                    `json:"ok"`
		Booking adapter.BookingResponse `json:"booking"`
	}
	decodeBody(t, resp, &out)
	if !out.OK {
		t.Error("ok = false")
	}
	if out.Booking.Status != "pending" {
		t.Errorf("status = %q, want pending", out.Booking.Status)
	}
	if out.Booking.VendorID != id {
		t.Errorf("vendorId = %q", out.Booking.VendorID)
	}
}

func TestCreateBooking_UnknownVendor(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/bookings",
		`{"vendorId":"missing","customerName":"Ravi","mobile":"9000000001","date":"2026-09-15"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestListBookings_StatusFilter(t *testing.T) {
	srv := newTestServer(t)

	id := registerVendor(t, srv, "Asha", "asha@example.com", "9876543210")
	approveVendor(t, srv, id)
	first := createBooking(t, srv, id, "Ravi")
	createBooking(t, srv, id, "Meena")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/admin/bookings/"+first+"/approve", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve booking: status = %d", resp.StatusCode)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/admin/bookings?status=approved", "")
	var approved []adapter.BookingResponse
	decodeBody(t, resp, &approved)
	if len(approved) != 1 || approved[0].ID != first {
		t.Errorf("approved bookings = %+v, want just %q", approved, first)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/admin/bookings", "")
	var all []adapter.BookingResponse
	decodeBody(t, resp, &all)
	if len(all) != 2 {
		t.Errorf("got %d bookings, want 2", len(all))
	}
}

func TestRejectBooking(t *testing.T) {
	srv := newTestServer(t)

	id := registerVendor(t, srv, "Asha", "asha@example.com", "9876543210")
	approveVendor(t, srv, id)
	booking := createBooking(t, srv, id, "Ravi")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/admin/bookings/"+booking+"/reject", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reject: status = %d", resp.StatusCode)
	}

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/admin/bookings?status=rejected", "")
	var rejected []adapter.BookingResponse
	decodeBody(t, resp, &rejected)
	if len(rejected) != 1 || rejected[0].ID != booking {
		t.Errorf("rejected bookings = %+v", rejected)
	}
}

func TestApproveBooking_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/admin/bookings/missing/approve", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestApproveBooking_AfterRejection(t *testing.T) {
	srv := newTestServer(t)

	id := registerVendor(t, srv, "Asha", "asha@example.com", "9876543210")
	approveVendor(t, srv, id)
	booking := createBooking(t, srv, id, "Ravi")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/admin/bookings/"+booking+"/reject", "")
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/admin/bookings/"+booking+"/approve", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}
