// Package auth implements the session gate: account sign-up, sign-in,
// sign-out and per-request identification. It only runs against the remote
// deployment; in demo mode the transport layer pins the fixed identity and
// this service is never constructed.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leaflink/leaflink-backend/internal/auth"
	"github.com/leaflink/leaflink-backend/internal/config"
	"github.com/leaflink/leaflink-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the auth service.
type userRepo interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// sessionRepo defines the session repository interface needed by the auth service.
type sessionRepo interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error)
	Revoke(ctx context.Context, tokenHash string, at time.Time) error
}

// tokenManager defines the token management interface needed by the auth service.
type tokenManager interface {
	Generate(email string) (string, error)
	Validate(token string) (string, error)
	TTL() time.Duration
}

// Service implements the session gate operations.
type Service struct {
	log      *slog.Logger
	users    userRepo
	sessions sessionRepo
	tokens   tokenManager
	cfg      config.AuthConfig
	now      func() time.Time
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	sessions sessionRepo,
	tokens tokenManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		cfg:      cfg,
		now:      time.Now,
	}
}

// issueSession generates an access token and records its hash server-side so
// sign-out can revoke it before the token itself expires.
func (s *Service) issueSession(ctx context.Context, user domain.User) (*Result, error) {
	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	_, err = s.sessions.Create(ctx, domain.Session{
		UserID:    user.ID,
		TokenHash: auth.HashToken(token),
		ExpiresAt: s.now().Add(s.tokens.TTL()),
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &Result{
		AccessToken: token,
		Email:       user.Email,
	}, nil
}
