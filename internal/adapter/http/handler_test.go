package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	adapter "github.com/naandi/platform/internal/adapter/http"

	"github.com/naandi/platform/internal/adapter/blob"
	"github.com/naandi/platform/internal/adapter/fanout"
	"github.com/naandi/platform/internal/adapter/fsm"
	"github.com/naandi/platform/internal/adapter/notify"
	"github.com/naandi/platform/internal/adapter/sqlite"
	"github.com/naandi/platform/internal/app"
)

const testAdminSecret = "Naandi@123"

// newTestServer creates a full-stack httptest.Server backed by a temp
// SQLite database and a local blob store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	blobs, err := blob.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating blob store: %v", err)
	}

	hub := fanout.NewHub()
	validator := fsm.New()
	notifier := notify.NewLog()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("naandi", "0.1.0"))
	adapter.Register(api, adapter.Services{
		Registrations: app.NewRegistrationService(store.Registrations(), store.Vendors(), hub),
		Vendors:       app.NewVendorService(store.Vendors(), store.Bookings(), store.Availability(), validator, hub, notifier),
		Bookings:      app.NewBookingService(store.Bookings(), store.Vendors(), validator, hub, notifier),
		Auth:          app.NewAuthService(store.Users(), store.Vendors(), testAdminSecret),
		Blobs:         blobs,
		Hub:           hub,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

// doRequest performs an HTTP request with context (avoids noctx linter).
func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}

	return resp
}

// doMultipart performs a multipart/form-data POST with text fields and
// optional file parts (part name to content).
func doMultipart(t *testing.T, url string, fields map[string]string, files map[string][]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			t.Fatalf("writing field %q: %v", key, err)
		}
	}
	for name, contents := range files {
		for i, content := range contents {
			part, err := w.CreateFormFile(name, fmt.Sprintf("%s-%d.jpg", name, i))
			if err != nil {
				t.Fatalf("creating file part: %v", err)
			}
			if _, err := part.Write([]byte(content)); err != nil {
				t.Fatalf("writing file part: %v", err)
			}
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &buf)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

// registerVendor drives the three-step signup and returns the vendor ID.
func registerVendor(t *testing.T, srv *httptest.Server, name, email, mobile string) string {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"mobile":%q,"password":"pw"}`, name, email, mobile)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/vendor/register", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register step 1: status = %d", resp.StatusCode)
	}
	var step1 struct {
		TempID string `json:"tempId"`
	}
	decodeBody(t, resp, &step1)

	body = fmt.Sprintf(`{"tempId":%q,"businessName":"%s Events","services":"Catering","pricing":"5000"}`, step1.TempID, name)
	resp = doRequest(t, http.MethodPost, srv.URL+"/api/vendor/register/plans", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register step 2: status = %d", resp.StatusCode)
	}

	resp = doMultipart(t, srv.URL+"/api/vendor/register/complete", map[string]string{
		"tempId":  step1.TempID,
		"address": "12 Main St",
		"lat":     "12.97",
		"lng":     "77.59",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register step 3: status = %d", resp.StatusCode)
	}
	var step3 struct {
		VendorID string `json:"vendorId"`
	}
	decodeBody(t, resp, &step3)

	if step3.VendorID == "" {
		t.Fatal("vendorId should not be empty after completing signup")
	}
	return step3.VendorID
}

// approveVendor approves a vendor through the admin API.
func approveVendor(t *testing.T, srv *httptest.Server, id string) {
	t.Helper()
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/admin/vendor/"+id+"/approve", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve vendor: status = %d", resp.StatusCode)
	}
}

// createBooking creates a booking and returns its ID.
func createBooking(t *testing.T, srv *httptest.Server, vendorID, customer string) string {
	t.Helper()

	body := fmt.Sprintf(`{"vendorId":%q,"customerName":%q,"mobile":"9000000001","date":"2026-09-15","notes":"evening"}`, vendorID, customer)
	resp := doRequest(t, http.MethodPost, srv.URL+"/api/bookings", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create booking: status = %d", resp.StatusCode)
	}
	var out struct {
		OK      bool                    `json:"ok"`
		Booking adapter.BookingResponse `json:"booking"`
	}
	decodeBody(t, resp, &out)
	return out.Booking.ID
}
