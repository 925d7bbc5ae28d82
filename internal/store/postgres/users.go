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

// UserStore provides account persistence backed by PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new user store.
func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// Create inserts a new account. A duplicate email maps to
// domain.ErrAlreadyExists via the unique constraint.
func (s *UserStore) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	query, args, err := sb.
		Insert("users").
		Columns("id", "email", "password_hash", "created_at").
		Values(u.ID, u.Email, u.PasswordHash, u.CreatedAt).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build insert query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return domain.User{}, mapError(err, "user", u.Email)
	}

	return u, nil
}

// GetByEmail returns the account for an email, or domain.ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query, args, err := sb.
		Select("id", "email", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build select query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, s.pool, &row, query, args...); err != nil {
		return domain.User{}, mapError(err, "user", email)
	}

	return row.toDomain(), nil
}
