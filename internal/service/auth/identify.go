package auth

import (
	"context"
	"errors"

	"github.com/leaflink/leaflink-backend/internal/auth"
	"github.com/leaflink/leaflink-backend/internal/domain"
)

// Identify resolves an access token to the account email it was issued for.
// Both checks must pass: the token signature and expiry, and the server-side
// session record being active (not revoked, not expired). Any failure is
// ErrUnauthorized.
func (s *Service) Identify(ctx context.Context, rawToken string) (string, error) {
	email, err := s.tokens.Validate(rawToken)
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	session, err := s.sessions.GetByTokenHash(ctx, auth.HashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}

	if !session.Active(s.now()) {
		return "", domain.ErrUnauthorized
	}

	return email, nil
}
