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

// SignUp creates an account and opens a session for it.
// Returns ErrAlreadyExists if the email is taken.
func (s *Service) SignUp(ctx context.Context, input CredentialsInput) (*Result, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth.SignUp hash password: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("account for %s: %w", input.Email, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.SignUp create user: %w", err)
	}

	result, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.SignUp issue session: %w", err)
	}

	s.log.InfoContext(ctx, "account created",
		slog.String("user_id", user.ID.String()))

	return result, nil
}
