package auth

import (
	"net/mail"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// CredentialsInput holds the email and password for sign-up and sign-in.
type CredentialsInput struct {
	Email    string
	Password string
}

// Validate validates the credentials input.
func (i CredentialsInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) < 6 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 6 characters"})
	} else if len(i.Password) > 72 {
		// bcrypt truncates beyond 72 bytes
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
