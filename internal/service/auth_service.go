package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors. The login paths deliberately return one generic
// error for every mismatch so the response does not reveal whether the
// username exists.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

// AuthService issues and verifies opaque bearer session tokens backed by
// the session tables. A token is 256 bits of randomness, hex encoded;
// validity is purely `expires_at > now()` at verify time. Expired rows
// are left in place — nothing sweeps them.
type AuthService struct {
	cfg         *config.Config
	sessionRepo *repository.SessionRepository
	adminRepo   *repository.AdminRepository
	userRepo    *repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	sessionRepo *repository.SessionRepository,
	adminRepo *repository.AdminRepository,
	userRepo *repository.UserRepository,
) *AuthService {
	return &AuthService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		adminRepo:   adminRepo,
		userRepo:    userRepo,
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// generateToken returns a 256-bit random token, hex encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// AdminLogin validates an admin PIN and issues a session token.
func (s *AuthService) AdminLogin(ctx context.Context, pin string) (*model.AdminUser, string, error) {
	admin, err := s.adminRepo.GetByPIN(ctx, pin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup admin: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return nil, "", err
	}

	expiresAt := time.Now().Add(s.cfg.AdminSessionTTL)
	if err := s.sessionRepo.CreateAdminSession(ctx, admin.ID, token, expiresAt); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	return admin, token, nil
}

// UserLogin validates username + password + PIN and issues a session
// token. All three must match; the error never distinguishes which
// check failed.
func (s *AuthService) UserLogin(ctx context.Context, username, password, pin string) (*model.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if err := s.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.PIN != pin {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueUserSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueUserSession creates a session row for a user and returns the
// token. Registration reuses this for its auto-login.
func (s *AuthService) IssueUserSession(ctx context.Context, userID int) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(s.cfg.UserSessionTTL)
	if err := s.sessionRepo.CreateUserSession(ctx, userID, token, expiresAt); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// VerifyAdmin resolves a bearer token to its admin owner. Returns
// ErrNoSession for missing, unknown, or expired tokens — callers treat
// that as unauthenticated, never as a server failure.
func (s *AuthService) VerifyAdmin(ctx context.Context, bearer string) (*model.AdminUser, *model.Session, error) {
	token := StripBearer(bearer)
	if token == "" {
		return nil, nil, ErrNoSession
	}
	admin, sess, err := s.sessionRepo.GetAdminByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNoSession
		}
		return nil, nil, fmt.Errorf("verify admin token: %w", err)
	}
	return admin, sess, nil
}

// VerifyUser resolves a bearer token to its user owner. Same contract
// as VerifyAdmin.
func (s *AuthService) VerifyUser(ctx context.Context, bearer string) (*model.User, *model.Session, error) {
	token := StripBearer(bearer)
	if token == "" {
		return nil, nil, ErrNoSession
	}
	user, sess, err := s.sessionRepo.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNoSession
		}
		return nil, nil, fmt.Errorf("verify user token: %w", err)
	}
	return user, sess, nil
}

// AdminLogout deletes the admin session row. Idempotent.
func (s *AuthService) AdminLogout(ctx context.Context, bearer string) error {
	token := StripBearer(bearer)
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteAdminSession(ctx, token)
}

// UserLogout deletes the user session row. Idempotent.
func (s *AuthService) UserLogout(ctx context.Context, bearer string) error {
	token := StripBearer(bearer)
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteUserSession(ctx, token)
}

// StripBearer removes an optional "Bearer " prefix from an
// Authorization header value. A bare prefix carries no token.
func StripBearer(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
