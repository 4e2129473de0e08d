package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
)

func testTokens() *TokenService {
	return NewTokenService("access-secret", "refresh-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	ts := testTokens()
	user := &User{ID: 3, Email: "ravi@example.com", Role: RoleFarmer}

	token, err := ts.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := ts.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 3 || claims.Email != "ravi@example.com" || claims.Role != RoleFarmer {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if ttl := time.Until(claims.ExpiresAt.Time); ttl < 29*time.Minute || ttl > 30*time.Minute {
		t.Errorf("expected ~30m expiry, got %s", ttl)
	}
}

func TestVerifyRejectsTamperedAndWrongKind(t *testing.T) {
	ts := testTokens()
	user := &User{ID: 1, Email: "a@example.com", Role: RoleAdmin}

	access, _ := ts.IssueAccessToken(user)
	refresh, _ := ts.IssueRefreshToken(user)

	if _, err := ts.VerifyRefreshToken(access); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Errorf("access token accepted as refresh: %v", err)
	}
	if _, err := ts.VerifyAccessToken(refresh); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Errorf("refresh token accepted as access: %v", err)
	}

	tampered := access[:len(access)-2] + "xx"
	if _, err := ts.VerifyAccessToken(tampered); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Errorf("tampered token accepted: %v", err)
	}

	other := NewTokenService("other", "other", time.Minute, time.Minute)
	if _, err := other.VerifyAccessToken(access); !errors.Is(err, apperr.ErrInvalidToken) {
		t.Errorf("token from another secret accepted: %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	ts := NewTokenService("s", "s", -time.Minute, -time.Minute)
	token, err := ts.IssueRefreshToken(&User{ID: 1, Email: "a@example.com", Role: RoleFarmer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = ts.VerifyRefreshToken(token)
	if !errors.Is(err, apperr.ErrInvalidToken) || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expired token error, got %v", err)
	}
}

func TestAuthenticateHeader(t *testing.T) {
	ts := testTokens()
	token, _ := ts.IssueAccessToken(&User{ID: 9, Email: "l@example.com", Role: RoleLandlord})

	cases := map[string]bool{
		"":                false,
		token:             false,
		"Token " + token:  false,
		"Bearer garbage":  false,
		"Bearer " + token: true,
	}
	for header, ok := range cases {
		claims, err := ts.Authenticate(header)
		if ok {
			if err != nil || claims.UserID != 9 {
				t.Errorf("header %q: expected success, got %v", header, err)
			}
			continue
		}
		if !errors.Is(err, apperr.ErrUnauthorized) {
			t.Errorf("header %q: expected unauthorized, got %v", header, err)
		}
	}
}
