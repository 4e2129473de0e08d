package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/krishiconnect/krishi-backend/internal/apperr"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*User, *TokenPair, error)
	Login(ctx context.Context, in LoginInput) (*TokenPair, *User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, actor Actor, refreshToken string) error
	RegisterAdmin(ctx context.Context, actor Actor, in LoginInput) (*User, error)
	EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	Tokens() *TokenService
}

type service struct {
	repo    Repository
	tokens  *TokenService
	revoked RevocationStore // nil when redis is not configured
	audit   auditlog.Service
}

func NewService(r Repository, tokens *TokenService, revoked RevocationStore, audit auditlog.Service) Service {
	return &service{repo: r, tokens: tokens, revoked: revoked, audit: audit}
}

func (s *service) Tokens() *TokenService { return s.tokens }

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches the stored hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Email    string
	Password string
	Role     string
	IP       string
}

// Register creates a farmer or landlord account. The admin role is only
// accepted while no admin exists yet; later admins come from RegisterAdmin.
func (s *service) Register(ctx context.Context, in RegisterInput) (*User, *TokenPair, error) {
	role, ok := ParseRole(in.Role)
	if !ok {
		return nil, nil, apperr.Validation("Invalid role. Must be admin, farmer or landlord")
	}
	if role == RoleAdmin {
		admins, err := s.repo.CountByRole(ctx, RoleAdmin)
		if err != nil {
			return nil, nil, err
		}
		if admins > 0 {
			return nil, nil, apperr.Forbidden("Admin accounts can only be created by an admin")
		}
	}

	user, err := s.createUser(ctx, in.Email, in.Password, role)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	s.record(ctx, &user.ID, "USER_REGISTERED", user.ID, map[string]interface{}{"email": user.Email, "role": user.Role}, in.IP, auditlog.StatusSuccess)
	return user, pair, nil
}

func (s *service) createUser(ctx context.Context, email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.Validation("Email is required")
	}
	if len(password) < minPasswordLength {
		return nil, apperr.Validation("Password must be at least %d characters long", minPasswordLength)
	}

	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Email already registered")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &User{Email: email, PasswordHash: hash, Role: role}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, err
	}
	return user, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
	IP       string
}

func (s *service) Login(ctx context.Context, in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if isNotFound(err) {
			s.record(ctx, nil, "LOGIN_FAILED", 0, map[string]interface{}{"email": in.Email, "reason": "unknown email"}, in.IP, auditlog.StatusFailure)
			return nil, nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, nil, err
	}

	if !VerifyPassword(in.Password, user.PasswordHash) {
		s.record(ctx, &user.ID, "LOGIN_FAILED", user.ID, map[string]interface{}{"email": user.Email, "reason": "bad password"}, in.IP, auditlog.StatusFailure)
		return nil, nil, apperr.Unauthorized("Invalid credentials")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}

	s.record(ctx, &user.ID, "LOGIN_SUCCESS", user.ID, nil, in.IP, auditlog.StatusSuccess)
	return pair, user, nil
}

func (s *service) issuePair(user *User) (*TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// =============================
// Refresh / Logout
// =============================

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Printf("⚠️ revocation lookup failed: %v", err)
		} else if revoked {
			return "", apperr.InvalidToken("Refresh token has been revoked")
		}
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return "", apperr.InvalidToken("User no longer exists")
		}
		return "", err
	}

	return s.tokens.IssueAccessToken(user)
}

// Logout revokes the given refresh token. Without a revocation store it is a
// no-op beyond validating the token.
func (s *service) Logout(ctx context.Context, actor Actor, refreshToken string) error {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return err
	}
	if claims.UserID != actor.UserID {
		return apperr.Forbidden("Refresh token belongs to another user")
	}

	if s.revoked != nil && claims.ExpiresAt != nil {
		if err := s.revoked.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			return err
		}
	}

	s.record(ctx, &actor.UserID, "LOGOUT", actor.UserID, nil, actor.IP, auditlog.StatusSuccess)
	return nil
}

// =============================
// Admin accounts
// =============================

func (s *service) RegisterAdmin(ctx context.Context, actor Actor, in LoginInput) (*User, error) {
	isAdmin, err := s.repo.IsAdmin(ctx, actor.Email)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperr.Forbidden("Only admins can create admin accounts")
	}

	user, err := s.createUser(ctx, in.Email, in.Password, RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &actor.UserID, "ADMIN_CREATED", user.ID, map[string]interface{}{"email": user.Email}, actor.IP, auditlog.StatusSuccess)
	return user, nil
}

// EnsureAdmin creates the bootstrap admin if the email is not registered.
// The bool reports whether a new account was created.
func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != RoleAdmin {
			return nil, false, apperr.Conflict("%s is registered with role %s", existing.Email, existing.Role)
		}
		return existing, false, nil
	}
	if !isNotFound(err) {
		return nil, false, err
	}

	user, err := s.createUser(ctx, email, password, RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	s.record(ctx, nil, "ADMIN_SEEDED", user.ID, map[string]interface{}{"email": user.Email}, "", auditlog.StatusSuccess)
	return user, true, nil
}

func (s *service) GetUserByID(ctx context.Context, id uint) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *service) record(ctx context.Context, userID *uint, action string, target uint, details map[string]interface{}, ip, status string) {
	if s.audit == nil {
		return
	}
	entry := auditlog.Entry{UserID: userID, Action: action, TargetType: "user", Details: details, IP: ip, Status: status}
	if target != 0 {
		entry.TargetID = auditlog.Ptr(target)
	}
	_ = s.audit.LogAction(ctx, entry)
}
