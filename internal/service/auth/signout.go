package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/leaflink/leaflink-backend/internal/auth"
	"github.com/leaflink/leaflink-backend/internal/domain"
)

// SignOut revokes the session behind an access token. The token keeps its
// signature validity until expiry, but Identify rejects it once the session
// record is revoked. Signing out an unknown token is ErrUnauthorized.
func (s *Service) SignOut(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return domain.ErrUnauthorized
	}

	err := s.sessions.Revoke(ctx, auth.HashToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("auth.SignOut revoke session: %w", err)
	}

	s.log.InfoContext(ctx, "user signed out")

	return nil
}
