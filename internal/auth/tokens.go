package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/krishiconnect/krishi-backend/internal/apperr"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	bearerPrefix     = "Bearer "
)

// Claims is the JWT payload for both token kinds.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (t *TokenService) AccessTTL() time.Duration { return t.accessTTL }

// IssueAccessToken signs a short-lived token carrying the user's identity.
func (t *TokenService) IssueAccessToken(u *User) (string, error) {
	return t.sign(u, tokenTypeAccess, t.accessTTL, t.accessSecret)
}

// IssueRefreshToken signs a long-lived token. Its jti is what logout revokes.
func (t *TokenService) IssueRefreshToken(u *User) (string, error) {
	return t.sign(u, tokenTypeRefresh, t.refreshTTL, t.refreshSecret)
}

func (t *TokenService) sign(u *User, typ string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccessToken checks signature, expiry and token kind.
func (t *TokenService) VerifyAccessToken(token string) (*Claims, error) {
	return t.verify(token, tokenTypeAccess, t.accessSecret)
}

func (t *TokenService) VerifyRefreshToken(token string) (*Claims, error) {
	return t.verify(token, tokenTypeRefresh, t.refreshSecret)
}

func (t *TokenService) verify(token, typ string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.InvalidToken("Token has expired")
		}
		return nil, apperr.InvalidToken("Invalid token")
	}
	if claims.Type != typ || claims.UserID == 0 {
		return nil, apperr.InvalidToken("Invalid token")
	}
	return claims, nil
}

// Authenticate extracts and verifies the bearer token from an
// Authorization header value.
func (t *TokenService) Authenticate(header string) (*Claims, error) {
	if strings.TrimSpace(header) == "" {
		return nil, apperr.Unauthorized("Authorization header is missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, apperr.Unauthorized("Invalid token prefix")
	}
	claims, err := t.VerifyAccessToken(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.ErrUnauthorized, Message: "Invalid token or token expired", Cause: err}
	}
	return claims, nil
}
