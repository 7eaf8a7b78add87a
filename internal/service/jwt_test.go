package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AymenBoubertakh/IDL/internal/models"
)

const (
	testSecret = "this-is-a-test-secret-with-32-bytes!"
	testExpiry = 24 * time.Hour
)

func testUser() *models.User {
	return &models.User{
		ID:       7,
		Username: "testuser",
		Role:     models.RoleAdmin,
		Enabled:  true,
	}
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewJWTService(t *testing.T) {
	service, err := NewJWTService(testSecret, testExpiry)
	if err != nil {
		t.Fatalf("NewJWTService() error = %v", err)
	}
	if service == nil {
		t.Fatal("NewJWTService returned nil")
	}
}

func TestNewJWTService_WeakSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{name: "empty secret", secret: ""},
		{name: "short secret", secret: "short"},
		{name: "31 bytes", secret: strings.Repeat("a", 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewJWTService(tt.secret, testExpiry)
			if err == nil {
				t.Error("NewJWTService() should fail for weak secret")
			}
			if service != nil {
				t.Error("NewJWTService() should return nil service for weak secret")
			}
		})
	}
}

// =============================================================================
// Round Trip Tests
// =============================================================================

func TestGenerateToken_RoundTrip(t *testing.T) {
	service, _ := NewJWTService(testSecret, testExpiry)

	tests := []struct {
		name     string
		userID   int64
		username string
		role     models.Role
	}{
		{name: "admin user", userID: 7, username: "admin", role: models.RoleAdmin},
		{name: "regular user", userID: 42, username: "alice", role: models.RoleUser},
		{name: "unicode username", userID: 1, username: "用户名_123", role: models.RoleUser},
		{name: "email-like username", userID: 999, username: "user@example.com", role: models.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{ID: tt.userID, Username: tt.username, Role: tt.role}

			token, err := service.GenerateToken(user)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			if token == "" {
				t.Fatal("Generated token is empty")
			}

			claims, err := service.ValidateToken(token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("Claims.UserID = %v, want %v", claims.UserID, tt.userID)
			}
			if claims.Subject != tt.username {
				t.Errorf("Claims.Subject = %v, want %v", claims.Subject, tt.username)
			}
			if claims.Role != tt.role {
				t.Errorf("Claims.Role = %v, want %v", claims.Role, tt.role)
			}
		})
	}
}

func TestGenerateToken_MissingRequiredFields(t *testing.T) {
	service, _ := NewJWTService(testSecret, testExpiry)

	tests := []struct {
		name string
		user *models.User
	}{
		{name: "nil user", user: nil},
		{name: "empty username", user: &models.User{ID: 1, Role: models.RoleUser}},
		{name: "unknown role", user: &models.User{ID: 1, Username: "alice", Role: "SUPERUSER"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.GenerateToken(tt.user); err == nil {
				t.Error("GenerateToken() should fail for incomplete claims")
			}
		})
	}
}

// =============================================================================
// Verification Failure Classification
// =============================================================================

func TestValidateToken_TamperedSignature(t *testing.T) {
	service, _ := NewJWTService(testSecret, testExpiry)

	token, err := service.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	// Flip the first character of the signature segment. The final
	// character only carries base64 padding bits, so it is not a
	// reliable tamper target.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = service.ValidateToken(tampered)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenBadSignature", err)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service, _ := NewJWTService(testSecret, testExpiry)
	other, _ := NewJWTService("another-secret-that-is-32-bytes!!", testExpiry)

	token, err := other.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = service.ValidateToken(token)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenBadSignature", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	expiredService, _ := NewJWTService(testSecret, -time.Hour)
	service, _ := NewJWTService(testSecret, testExpiry)

	token, err := expiredService.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = service.ValidateToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	service, _ := NewJWTService(testSecret, testExpiry)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a token", token: "garbage"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "four segments", token: "a.b.c.d"},
		{name: "invalid base64", token: "!!!.???.***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			if !errors.Is(err, ErrTokenMalformed) {
				t.Errorf("ValidateToken(%q) error = %v, want ErrTokenMalformed", tt.token, err)
			}
		})
	}
}

// =============================================================================
// Claim Accessor Tests
// =============================================================================

func TestExtractClaims(t *testing.T) {
	service, _ := NewJWTService(testSecret, testExpiry)

	token, err := service.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	username, err := service.ExtractUsername(token)
	if err != nil {
		t.Fatalf("ExtractUsername() error = %v", err)
	}
	if username != "testuser" {
		t.Errorf("ExtractUsername() = %v, want testuser", username)
	}

	role, err := service.ExtractRole(token)
	if err != nil {
		t.Fatalf("ExtractRole() error = %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("ExtractRole() = %v, want ADMIN", role)
	}

	userID, err := service.ExtractUserID(token)
	if err != nil {
		t.Fatalf("ExtractUserID() error = %v", err)
	}
	if userID != 7 {
		t.Errorf("ExtractUserID() = %v, want 7", userID)
	}
}

func TestExtractClaims_ReverifiesToken(t *testing.T) {
	service, _ := NewJWTService(testSecret, testExpiry)
	other, _ := NewJWTService("another-secret-that-is-32-bytes!!", testExpiry)

	token, err := other.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// No claim is readable from a token that fails verification.
	if _, err := service.ExtractUsername(token); !errors.Is(err, ErrTokenBadSignature) {
		t.Errorf("ExtractUsername() error = %v, want ErrTokenBadSignature", err)
	}
	if _, err := service.ExtractRole(token); !errors.Is(err, ErrTokenBadSignature) {
		t.Errorf("ExtractRole() error = %v, want ErrTokenBadSignature", err)
	}
	if _, err := service.ExtractUserID(token); !errors.Is(err, ErrTokenBadSignature) {
		t.Errorf("ExtractUserID() error = %v, want ErrTokenBadSignature", err)
	}
}
