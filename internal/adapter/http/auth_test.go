package http_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestAccountRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/register",
		`{"name":"Ravi","email":"ravi@example.com","mobile":"9000000001","password":"pw"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status = %d", resp.StatusCode)
	}
	var registered struct {
		OK   bool   `json:"ok"`
		Role string `json:"role"`
	}
	decodeBody(t, resp, &registered)
	if registered.Role != "customer" {
		t.Errorf("role = %q, want customer", registered.Role)
	}

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/auth/login",
		`{"email":"ravi@example.com","password":"pw"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status = %d", resp.StatusCode)
	}
	var login struct {
		OK       bool   `json:"ok"`
		Role     string `json:"role"`
		Name     string `json:"name"`
		VendorID string `json:"vendorId"`
	}
	decodeBody(t, resp, &login)
	if login.Role != "customer" || login.Name != "Ravi" {
		t.Errorf("login = %+v", login)
	}
	if login.VendorID != "" {
		t.Errorf("vendorId = %q, want empty", login.VendorID)
	}
}

func TestAccountRegister_AdminSecret(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/register",
		`{"name":"Admin","email":"admin@example.com","password":"`+testAdminSecret+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status = %d", resp.StatusCode)
	}
	var registered struct {
		Role string `json:"role"`
	}
	decodeBody(t, resp, &registered)
	if registered.Role != "admin" {
		t.Errorf("role = %q, want admin", registered.Role)
	}
}

func TestAccountRegister_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/register",
		`{"name":"A","email":"dup@example.com","password":"pw"}`)
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, srv.URL+"/api/auth/register",
		`{"name":"B","email":"dup@example.com","password":"pw"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/login",
		`{"email":"nobody@example.com","password":"pw"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestLogin_ApprovedVendor(t *testing.T) {
	srv := newTestServer(t)

	id := registerVendor(t, srv, "Asha", "asha@example.com", "9876543210")
	approveVendor(t, srv, id)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/login",
		`{"email":"asha@example.com","password":"pw"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status = %d", resp.StatusCode)
	}
	var login struct {
		Role     string `json:"role"`
		VendorID string `json:"vendorId"`
	}
	decodeBody(t, resp, &login)
	if login.Role != "vendor" {
		t.Errorf("role = %q, want vendor", login.Role)
	}
	if login.VendorID != id {
		t.Errorf("vendorId = %q, want %q", login.VendorID, id)
	}
}

func TestLogin_PendingVendorRejected(t *testing.T) {
	srv := newTestServer(t)

	registerVendor(t, srv, "Asha", "asha@example.com", "9876543210")

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/login",
		`{"email":"asha@example.com","password":"pw"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestProfile(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/register",
		`{"name":"Ravi","email":"ravi@example.com","password":"pw"}`)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, srv.URL+"/api/admin/me?email=ravi@example.com", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile: status = %d", resp.StatusCode)
	}
	var profile struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeBody(t, resp, &profile)
	if profile.Name != "Ravi" || profile.Role != "customer" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestProfile_MissingEmail(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodGet, srv.URL+"/api/admin/me", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestProfilePhoto(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, http.MethodPost, srv.URL+"/api/auth/register",
		`{"name":"Ravi","email":"ravi@example.com","password":"pw"}`)
	resp.Body.Close()

	resp = doMultipart(t, srv.URL+"/api/admin/me/photo", map[string]string{
		"email": "ravi@example.com",
	}, map[string][]string{
		"photo": {"photo-bytes"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("photo upload: status = %d", resp.StatusCode)
	}
	var uploaded struct {
		OK         bool   `json:"ok"`
		ProfilePic string `json:"profilePic"`
	}
	decodeBody(t, resp, &uploaded)
	if !strings.HasPrefix(uploaded.ProfilePic, "/uploads/") {
		t.Errorf("profilePic = %q", uploaded.ProfilePic)
	}

	// The reference persists on the account.
	resp = doRequest(t, http.MethodGet, srv.URL+"/api/admin/me?email=ravi@example.com", "")
	var profile struct {
		ProfilePic string `json:"profilePic"`
	}
	decodeBody(t, resp, &profile)
	if profile.ProfilePic != uploaded.ProfilePic {
		t.Errorf("stored profilePic = %q, want %q", profile.ProfilePic, uploaded.ProfilePic)
	}
}

func TestProfilePhoto_MissingParts(t *testing.T) {
	srv := newTestServer(t)

	resp := doMultipart(t, srv.URL+"/api/admin/me/photo", map[string]string{}, map[string][]string{
		"photo": {"x"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing email: status = %d, want 400", resp.StatusCode)
	}

	resp = doMultipart(t, srv.URL+"/api/admin/me/photo", map[string]string{
		"email": "ravi@example.com",
	}, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing photo: status = %d, want 400", resp.StatusCode)
	}
}
