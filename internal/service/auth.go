package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/keremsimsek1907/nova-app/internal/crypto"
	"github.com/keremsimsek1907/nova-app/internal/model"
	"github.com/keremsimsek1907/nova-app/internal/repository"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", crypto.MaxPasswordBytes)
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	repo      repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo repository.UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account. The password is stored only as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return model.UserResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.UserResponse{}, ErrPasswordRequired
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return model.UserResponse{}, ErrPasswordTooShort
	}
	if len(req.Password) > crypto.MaxPasswordBytes {
		return model.UserResponse{}, ErrPasswordTooLong
	}

	// Fast path; the store's unique index settles concurrent registrations below.
	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return model.UserResponse{}, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return model.UserResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, fmt.Errorf("create user: %w", err)
	}

	return model.UserResponse{ID: user.ID, Email: user.Email}, nil
}

// Login checks the credentials and returns a signed session token.
// An unknown email and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" {
		return model.LoginResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.LoginResponse{}, ErrPasswordRequired
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.BurnCompare(req.Password)
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return model.LoginResponse{Token: token}, nil
}

// VerifyToken checks signature and expiry and returns the asserted identity.
// It never touches the store.
func (s *AuthService) VerifyToken(token string) (model.Identity, error) {
	claims, err := crypto.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{Subject: claims.Subject, Email: claims.Email}, nil
}

// Me returns the stored account behind a verified subject.
func (s *AuthService) Me(ctx context.Context, subject string) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, fmt.Errorf("lookup user: %w", err)
	}

	return model.UserResponse{ID: user.ID, Email: user.Email}, nil
}
