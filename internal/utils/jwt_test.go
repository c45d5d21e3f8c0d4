package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("test-secret-key-for-testing")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(1, "student@example.edu", "student", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty token")
	}

	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateToken_DifferentTokens(t *testing.T) {
	token1, _ := GenerateToken(1, "a@example.edu", "student", 24)
	token2, _ := GenerateToken(2, "b@example.edu", "teacher", 24)

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestParseToken(t *testing.T) {
	userID := uint(42)
	email := "advisor@example.edu"
	role := "teacher"

	token, _ := GenerateToken(userID, email, role, 24)

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("UserID = %d, expected %d", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Email = %q, expected %q", claims.Email, email)
	}
	if claims.Role != role {
		t.Errorf("Role = %q, expected %q", claims.Role, role)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	invalidTokens := []string{
		"",
		"invalid",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature",
	}

	for _, token := range invalidTokens {
		_, err := ParseToken(token)
		if err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("original-secret")
	token, _ := GenerateToken(1, "user@example.edu", "student", 24)

	SetJWTSecret("different-secret")
	_, err := ParseToken(token)
	if err == nil {
		t.Error("token signed with different secret should not parse")
	}

	SetJWTSecret("test-secret-key-for-testing")
}

func TestParseToken_Expired(t *testing.T) {
	token, _ := GenerateToken(1, "user@example.edu", "student", -1)

	_, err := ParseToken(token)
	if err == nil {
		t.Error("expired token should not parse")
	}
}

func TestGenerateToken_Expiry(t *testing.T) {
	token, _ := GenerateToken(1, "user@example.edu", "student", 2)

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < time.Hour || remaining > 3*time.Hour {
		t.Errorf("expiry %v not in expected window", remaining)
	}
}
