package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 168*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	id := uuid.New()

	tok, err := svc.GenerateAccessToken(id, "hr@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id {
		t.Fatalf("user id = %s, want %s", claims.UserID, id)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("token type = %q, want access", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatal("access token classified as refresh")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatal("refresh token not classified as refresh")
	}
	if claims.Email != "" {
		t.Fatalf("refresh token carries email %q", claims.Email)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService()

	tok, err := svc.GenerateAccessToken(uuid.New(), "hr@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(16 * time.Minute) }
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewHMACService("different", "secrets", 15*time.Minute, 168*time.Hour)

	tok, err := svc.GenerateAccessToken(uuid.New(), "hr@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService()
	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
