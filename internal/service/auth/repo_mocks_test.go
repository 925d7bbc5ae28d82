package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// userRepoMock implements userRepo backed by an in-memory map keyed by email.
type userRepoMock struct {
	CreateFunc     func(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (domain.User, error)

	users map[string]domain.User
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{users: make(map[string]domain.User)}
}

func (m *userRepoMock) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	if _, ok := m.users[user.Email]; ok {
		return domain.User{}, domain.ErrAlreadyExists
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	m.users[user.Email] = user
	return user, nil
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	user, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}

// sessionRepoMock implements sessionRepo backed by an in-memory map keyed by
// token hash.
type sessionRepoMock struct {
	CreateFunc func(ctx context.Context, session domain.Session) (domain.Session, error)

	sessions map[string]domain.Session
}

func newSessionRepoMock() *sessionRepoMock {
	return &sessionRepoMock{sessions: make(map[string]domain.Session)}
}

func (m *sessionRepoMock) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	session.ID = uuid.New()
	session.CreatedAt = time.Now().UTC()
	m.sessions[session.TokenHash] = session
	return session, nil
}

func (m *sessionRepoMock) GetByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	session, ok := m.sessions[tokenHash]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return session, nil
}

func (m *sessionRepoMock) Revoke(ctx context.Context, tokenHash string, at time.Time) error {
	session, ok := m.sessions[tokenHash]
	if !ok {
		return domain.ErrNotFound
	}
	if session.RevokedAt == nil {
		session.RevokedAt = &at
		m.sessions[tokenHash] = session
	}
	return nil
}
