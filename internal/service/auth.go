// Package service implements the application logic between the HTTP API and
// the store: validation, invariants, asset side effects, and search indexing.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/auth"
	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
	"github.com/launchdeckapp/launchdeck-server/internal/id"
	"github.com/launchdeckapp/launchdeck-server/internal/ratelimit"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
	"github.com/launchdeckapp/launchdeck-server/internal/validation"
)

// validate is the shared request validator for all services.
var validate = validation.New()

// AuthService handles setup, login, and token verification for the single
// operator account.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	loginLimiter *ratelimit.KeyedRateLimiter
	logger       *slog.Logger
}

// NewAuthService creates an authentication service.
func NewAuthService(s store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        s,
		tokenService: tokenService,
		// Failed logins are the only brute-forceable surface; one attempt
		// per two seconds with a small burst per client IP.
		loginLimiter: ratelimit.New(0.5, 5),
		logger:       logger,
	}
}

// SetupRequest contains the initial operator account data.
type SetupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains login credentials. IPAddress is extracted from the
// request by the handler and used only for rate limiting.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"`
}

// AuthResponse contains the access token and the authenticated user.
type AuthResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// IsConfigured reports whether the operator account already exists.
func (s *AuthService) IsConfigured(ctx context.Context) (bool, error) {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

// Setup creates the operator account. Usable exactly once; returns
// ALREADY_CONFIGURED afterwards.
func (s *AuthService) Setup(ctx context.Context, req SetupRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	configured, err := s.IsConfigured(ctx)
	if err != nil {
		return nil, err
	}
	if configured {
		return nil, domainerrors.ErrAlreadyConfigured
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if store.IsAlreadyExists(err) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("server setup complete", "user_id", userID, "email", user.Email)

	return s.issueToken(user)
}

// Login verifies credentials and returns a fresh access token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if req.IPAddress != "" && !s.loginLimiter.Allow(req.IPAddress) {
		return nil, domainerrors.Unavailable("too many login attempts, try again shortly")
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if store.IsNotFound(err) {
			// Same response whether the email exists or not.
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return s.issueToken(user)
}

// VerifyAccessToken validates a bearer token and returns the user it names.
// Used by the authentication middleware.
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid token").Wrap(err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	return user, claims, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenService.TokenDuration()),
	}, nil
}
