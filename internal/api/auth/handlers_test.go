package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/districtpadel/league/internal/api/authz"
	"github.com/districtpadel/league/internal/config"
	dbgen "github.com/districtpadel/league/internal/db/generated"
	"github.com/districtpadel/league/internal/ratelimit"
	"github.com/districtpadel/league/internal/testutil"
)

const testPassword = "correct horse"

func setupAuthTest(t *testing.T, maxAttempts int) {
	t.Helper()

	database := testutil.NewTestDB(t)

	prevConfig, prevQueries, prevLimiter := appConfig, queries, limiter
	t.Cleanup(func() {
		appConfig, queries, limiter = prevConfig, prevQueries, prevLimiter
	})

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.App.SecretKey = "test-secret-key"
	l := ratelimit.New(&ratelimit.Config{MaxAttempts: maxAttempts, Lockout: time.Minute, MaxIPPerHour: 100})
	t.Cleanup(l.Close)
	InitHandlers(dbgen.New(database.DB), cfg, l)

	hash, err := HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	ctx := context.Background()
	for _, user := range []dbgen.CreateUserParams{
		{ID: "user-1", Username: "admin", Email: "admin@example.com", HashedPassword: hash, IsActive: true},
		{ID: "user-2", Username: "retired", Email: "retired@example.com", HashedPassword: hash, IsActive: false},
	} {
		if _, err := queries.CreateUser(ctx, user); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
}

func login(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/auth/login", strings.NewReader(body))
	req.RemoteAddr = "203.0.113.10:4444"
	rec := httptest.NewRecorder()
	HandleLogin(rec, req)
	return rec
}

func TestHandleLoginSuccess(t *testing.T) {
	setupAuthTest(t, 5)

	rec := login(t, "admin", testPassword)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TokenType != "bearer" || resp.AccessToken == "" || resp.User.Username != "admin" {
		t.Fatalf("response = %+v", resp)
	}

	var authCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authCookieName {
			authCookie = cookie
		}
	}
	if authCookie == nil || authCookie.Value != resp.AccessToken {
		t.Fatal("expected auth cookie carrying the access token")
	}
	if authCookie.Secure {
		t.Fatal("expected non-secure cookie in development")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	user, err := UserFromRequest(req)
	if err != nil || user == nil || user.ID != "user-1" || !user.IsActive {
		t.Fatalf("UserFromRequest() = %+v, %v", user, err)
	}
}

func TestHandleLoginFailures(t *testing.T) {
	setupAuthTest(t, 5)

	tests := []struct {
		name       string
		username   string
		password   string
		wantStatus int
	}{
		{name: "wrong password", username: "admin", password: "nope", wantStatus: http.StatusUnauthorized},
		{name: "unknown user", username: "ghost", password: testPassword, wantStatus: http.StatusUnauthorized},
		{name: "inactive user", username: "retired", password: testPassword, wantStatus: http.StatusForbidden},
		{name: "missing password", username: "admin", password: "", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := login(t, tt.username, tt.password)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleLoginRateLimited(t *testing.T) {
	setupAuthTest(t, 2)

	for i := 0; i < 2; i++ {
		if rec := login(t, "admin", "wrong"); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
	}

	rec := login(t, "admin", testPassword)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestHandleMe(t *testing.T) {
	setupAuthTest(t, 5)

	rec := httptest.NewRecorder()
	HandleMe(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/auth/me", nil)
	req = req.WithContext(authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: "user-1", Username: "admin", IsActive: true}))
	rec = httptest.NewRecorder()
	HandleMe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var view userView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if view.Email != "admin@example.com" {
		t.Fatalf("view = %+v", view)
	}
}
