package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the remote-backend deployment. The email doubles as
// the garden partition key, matching what the store layer filters by.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is a server-side record of an issued access token. Sign-out revokes
// it, which invalidates the token before its JWT expiry.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
