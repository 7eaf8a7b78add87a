package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AymenBoubertakh/IDL/internal/handlers"
	"github.com/AymenBoubertakh/IDL/internal/middleware"
	"github.com/AymenBoubertakh/IDL/internal/models"
	"github.com/AymenBoubertakh/IDL/internal/routes"
	"github.com/AymenBoubertakh/IDL/internal/service"
)

const (
	testSecret = "this-is-a-test-secret-with-32-bytes!"
	testExpiry = 24 * time.Hour
)

// =============================================================================
// Fake UserRepository
// =============================================================================

// fakeUserRepository is an in-memory user store keyed by username.
type fakeUserRepository struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("failed to find user by username %s: %w", username, gorm.ErrRecordNotFound)
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("failed to find user by id %d: %w", id, gorm.ErrRecordNotFound)
}

func (f *fakeUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepository) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.Username]; ok {
		return fmt.Errorf("failed to create user: %w", gorm.ErrDuplicatedKey)
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = user
	return nil
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupAuthRouter(t *testing.T) (*gin.Engine, *fakeUserRepository, service.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepository()
	jwtService, err := service.NewJWTService(testSecret, testExpiry)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}
	authService := service.NewAuthService(repo, jwtService, nil, zap.NewNop())

	authHandler := handlers.NewAuthHandler(authService, jwtService, zap.NewNop())
	healthHandler := handlers.NewHealthHandler("auth-service")
	metrics := middleware.NewMetrics("auth-service", prometheus.NewRegistry())

	router := gin.New()
	routes.SetupAuth(router, authHandler, healthHandler, metrics, zap.NewNop())
	return router, repo, jwtService
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username, email, password string) service.AuthResponse {
	t.Helper()
	w := postJSON(t, router, "/api/auth/register", map[string]string{
		"username":   username,
		"email":      email,
		"password":   password,
		"first_name": "Test",
		"last_name":  "User",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp service.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode register response: %v", err)
	}
	return resp
}

// =============================================================================
// Health Tests
// =============================================================================

func TestHealth(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	for _, path := range []string{"/health", "/api/auth/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode health body: %v", err)
		}
		if body["status"] != "UP" || body["service"] != "auth-service" {
			t.Errorf("health body = %v", body)
		}
	}
}

// =============================================================================
// Register Tests
// =============================================================================

func TestRegisterEndpoint(t *testing.T) {
	router, _, jwtService := setupAuthRouter(t)

	resp := registerUser(t, router, "alice", "alice@example.com", "s3cret-password")
	if resp.Token == "" {
		t.Fatal("register returned no token")
	}
	if resp.User.Username != "alice" || resp.User.Role != models.RoleUser {
		t.Errorf("register user = %+v", resp.User)
	}

	if _, err := jwtService.ValidateToken(resp.Token); err != nil {
		t.Errorf("registered token does not verify: %v", err)
	}
}

func TestRegisterEndpoint_Conflicts(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	registerUser(t, router, "alice", "alice@example.com", "s3cret-password")

	tests := []struct {
		name      string
		username  string
		email     string
		wantError string
	}{
		{name: "username taken", username: "alice", email: "new@example.com", wantError: "username already exists"},
		{name: "email taken", username: "bob", email: "alice@example.com", wantError: "email already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/auth/register", map[string]string{
				"username": tt.username,
				"email":    tt.email,
				"password": "s3cret-password",
			})

			if w.Code != http.StatusConflict {
				t.Fatalf("status = %d, want 409", w.Code)
			}

			var body struct {
				Error  string `json:"error"`
				Status int    `json:"status"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}

func TestRegisterEndpoint_BadPayload(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	w := postJSON(t, router, "/api/auth/register", map[string]string{
		"username": "alice",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// =============================================================================
// Login Tests
// =============================================================================

func TestLoginEndpoint(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	registerUser(t, router, "alice", "alice@example.com", "s3cret-password")

	w := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "s3cret-password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp service.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Error("login returned no token")
	}
}

func TestLoginEndpoint_NoEnumeration(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	registerUser(t, router, "alice", "alice@example.com", "s3cret-password")

	unknown := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "ghost",
		"password": "whatever-password",
	})
	wrongPassword := postJSON(t, router, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})

	if unknown.Code != http.StatusUnauthorized || wrongPassword.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", unknown.Code, wrongPassword.Code)
	}

	// The two failure bodies must be byte-identical: responses carry no
	// hint whether the username exists.
	if unknown.Body.String() != wrongPassword.Body.String() {
		t.Errorf("bodies differ: %q vs %q", unknown.Body.String(), wrongPassword.Body.String())
	}
}

// =============================================================================
// Me Tests
// =============================================================================

func TestMeEndpoint(t *testing.T) {
	router, _, _ := setupAuthRouter(t)
	resp := registerUser(t, router, "alice", "alice@example.com", "s3cret-password")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		User models.UserView `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode me response: %v", err)
	}
	if body.User.Username != "alice" {
		t.Errorf("me user = %+v", body.User)
	}
}

func TestMeEndpoint_Unauthorized(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "bad token", header: "Bearer not.a.token"},
		{name: "wrong scheme", header: "Basic abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestMeEndpoint_DeletedSubject(t *testing.T) {
	router, repo, _ := setupAuthRouter(t)
	resp := registerUser(t, router, "alice", "alice@example.com", "s3cret-password")

	// The account disappears between token mint and the profile read.
	delete(repo.users, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// =============================================================================
// Logout Tests
// =============================================================================

func TestLogoutEndpoint(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode logout body: %v", err)
	}
	if body["message"] == "" {
		t.Error("logout returned no message")
	}
}
