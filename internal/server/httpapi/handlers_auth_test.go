package httpapi

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegister_Success(t *testing.T) {
	f := newFixture(t, "secret")

	rec := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "pw"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[registerResponse](t, rec)
	if resp.Message != "User registered successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	if resp.User == nil || resp.User.ID == "" || resp.User.Username != "alice" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if resp.User.CreatedAt.IsZero() {
		t.Fatal("created_at must be set")
	}
	// The hash must never appear in the response.
	if body := rec.Body.String(); resp.User.PasswordHash != "" || containsHash(body) {
		t.Fatalf("response leaks password material: %s", body)
	}
}

func containsHash(body string) bool {
	// bcrypt hashes start with $2a$/$2b$.
	return strings.Contains(body, "$2a$") || strings.Contains(body, "$2b$") || strings.Contains(body, "password_hash")
}

func TestRegister_MissingFields(t *testing.T) {
	f := newFixture(t, "secret")

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "no password", body: map[string]string{"username": "alice"}},
		{name: "no username", body: map[string]string{"password": "pw"}},
		{name: "empty body", body: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/auth/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decode[errorResponse](t, rec)
			if resp.Error != "Username and password are required" {
				t.Fatalf("unexpected error message: %q", resp.Error)
			}
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture(t, "secret")

	creds := map[string]string{"username": "alice", "password": "pw"}
	if rec := f.do(t, http.MethodPost, "/auth/register", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("first register: status %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "other"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register: status = %d, want 409", rec.Code)
	}
	resp := decode[errorResponse](t, rec)
	if resp.Error != "Username already taken" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t, "secret")

	creds := map[string]string{"username": "alice", "password": "pw"}
	f.do(t, http.MethodPost, "/auth/register", "", creds)

	rec := f.do(t, http.MethodPost, "/auth/login", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[loginResponse](t, rec)
	if resp.Message != "Login successful" || resp.Token == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLogin_UniformInvalidCredentials(t *testing.T) {
	f := newFixture(t, "secret")

	f.do(t, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "right"})

	wrongPw := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "wrong"})
	unknown := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "ghost", "password": "whatever"})

	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d / %d, want 401 / 401", wrongPw.Code, unknown.Code)
	}
	// A wrong password and an unknown user must be indistinguishable.
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", wrongPw.Body.String(), unknown.Body.String())
	}
	resp := decode[errorResponse](t, wrongPw)
	if resp.Error != "Invalid credentials" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	f := newFixture(t, "secret")

	rec := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLogin_MissingSecret_ServerMisconfiguration(t *testing.T) {
	f := newFixture(t, "") // no signing secret configured

	creds := map[string]string{"username": "alice", "password": "pw"}
	f.do(t, http.MethodPost, "/auth/register", "", creds)

	rec := f.do(t, http.MethodPost, "/auth/login", "", creds)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decode[errorResponse](t, rec)
	if resp.Error != "Server misconfiguration" {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}
}

func TestPing(t *testing.T) {
	f := newFixture(t, "secret")

	rec := f.do(t, http.MethodGet, "/ping", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
