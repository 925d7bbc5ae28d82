package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// SignIn authenticates an account with email + password and opens a session.
// Returns ErrUnauthorized if the email is unknown or the password is wrong;
// the two cases are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, input CredentialsInput) (*Result, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.SignIn get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.SignIn issue session: %w", err)
	}

	s.log.InfoContext(ctx, "user signed in",
		slog.String("user_id", user.ID.String()))

	return result, nil
}
