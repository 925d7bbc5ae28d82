package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// SessionStore provides server-side session persistence backed by PostgreSQL.
// Only token hashes are stored; the raw token never touches the database.
type SessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates a new session store.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{pool: pool}
}

type sessionRow struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func (r sessionRow) toDomain() domain.Session {
	return domain.Session{
		ID:        r.ID,
		UserID:    r.UserID,
		TokenHash: r.TokenHash,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
		RevokedAt: r.RevokedAt,
	}
}

// Create inserts a new session.
func (s *SessionStore) Create(ctx context.Context, sess domain.Session) (domain.Session, error) {
	if sess.ID == uuid.Nil {
		sess.ID = uuid.New()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	query, args, err := sb.
		Insert("sessions").
		Columns("id", "user_id", "token_hash", "created_at", "expires_at", "revoked_at").
		Values(sess.ID, sess.UserID, sess.TokenHash, sess.CreatedAt, sess.ExpiresAt.UTC(), sess.RevokedAt).
		ToSql()
	if err != nil {
		return domain.Session{}, fmt.Errorf("build insert query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return domain.Session{}, mapError(err, "session", sess.ID)
	}

	return sess, nil
}

// GetByTokenHash returns the session for a token hash, or domain.ErrNotFound.
func (s *SessionStore) GetByTokenHash(ctx context.Context, tokenHash string) (domain.Session, error) {
	query, args, err := sb.
		Select("id", "user_id", "token_hash", "created_at", "expires_at", "revoked_at").
		From("sessions").
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return domain.Session{}, fmt.Errorf("build select query: %w", err)
	}

	var row sessionRow
	if err := pgxscan.Get(ctx, s.pool, &row, query, args...); err != nil {
		return domain.Session{}, mapError(err, "session", "by-token")
	}

	return row.toDomain(), nil
}

// Revoke marks a session revoked. Revoking an already revoked session is a
// no-op; an unknown token hash is domain.ErrNotFound.
func (s *SessionStore) Revoke(ctx context.Context, tokenHash string, at time.Time) error {
	query, args, err := sb.
		Update("sessions").
		Set("revoked_at", at.UTC()).
		Where(sq.Eq{"token_hash": tokenHash}).
		Where("revoked_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke query: %w", err)
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "session", "by-token")
	}
	if ct.RowsAffected() == 0 {
		return s.revokeMissing(ctx, tokenHash)
	}

	return nil
}

// revokeMissing distinguishes "already revoked" (fine) from "never existed".
func (s *SessionStore) revokeMissing(ctx context.Context, tokenHash string) error {
	query, args, err := sb.
		Select("count(*)").
		From("sessions").
		Where(sq.Eq{"token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := pgxscan.Get(ctx, s.pool, &n, query, args...); err != nil {
		return mapError(err, "session", "by-token")
	}
	if n == 0 {
		return fmt.Errorf("session by-token: %w", domain.ErrNotFound)
	}

	return nil
}
