package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

var sb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PlantStore provides plant persistence backed by PostgreSQL.
//
// List deliberately fails open: a backend error is logged and an empty garden
// is returned, so a flaky connection degrades the read path instead of
// breaking it. Writes keep their errors.
type PlantStore struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPlantStore creates a new plant store.
func NewPlantStore(pool *pgxpool.Pool, log *slog.Logger) *PlantStore {
	return &PlantStore{
		pool: pool,
		log:  log.With("store", "postgres"),
	}
}

// plantRow is the stored shape of a plant; scany maps columns by db tag.
type plantRow struct {
	ID                 uuid.UUID `db:"id"`
	OwnerID            string    `db:"owner_id"`
	Name               string    `db:"name"`
	Species            string    `db:"species"`
	WaterFrequencyDays int       `db:"water_frequency_days"`
	LastWateredDate    time.Time `db:"last_watered_date"`
	ImageURL           *string   `db:"image_url"`
	LightNeeds         *string   `db:"light_needs"`
	Notes              *string   `db:"notes"`
	CreatedAt          time.Time `db:"created_at"`
}

var plantColumns = []string{
	"id", "owner_id", "name", "species", "water_frequency_days",
	"last_watered_date", "image_url", "light_needs", "notes", "created_at",
}

func (r plantRow) toDomain() domain.Plant {
	return domain.Plant{
		ID:                 r.ID,
		OwnerID:            r.OwnerID,
		Name:               r.Name,
		Species:            r.Species,
		WaterFrequencyDays: r.WaterFrequencyDays,
		LastWateredDate:    r.LastWateredDate,
		ImageURL:           r.ImageURL,
		LightNeeds:         r.LightNeeds,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
	}
}

// List returns the owner's plants, newest first. On a backend error it logs
// and returns an empty slice.
func (s *PlantStore) List(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	query, args, err := sb.
		Select(plantColumns...).
		From("plants").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []plantRow
	if err := pgxscan.Select(ctx, s.pool, &rows, query, args...); err != nil {
		s.log.Error("list plants failed, returning empty garden",
			"owner_id", ownerID, "error", err)
		return []domain.Plant{}, nil
	}

	plants := make([]domain.Plant, 0, len(rows))
	for _, r := range rows {
		plants = append(plants, r.toDomain())
	}

	return plants, nil
}

// Create inserts a new plant, assigning the id and creation time when unset,
// and returns the stored record.
func (s *PlantStore) Create(ctx context.Context, p domain.Plant) (domain.Plant, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	query, args, err := sb.
		Insert("plants").
		Columns(plantColumns...).
		Values(
			p.ID, p.OwnerID, p.Name, p.Species, p.WaterFrequencyDays,
			p.LastWateredDate.UTC(), p.ImageURL, p.LightNeeds, p.Notes, p.CreatedAt,
		).
		ToSql()
	if err != nil {
		return domain.Plant{}, fmt.Errorf("build insert query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return domain.Plant{}, mapError(err, "plant", p.ID)
	}

	return p, nil
}

// Update replaces the full record keyed by id. Returns domain.ErrNotFound for
// an unknown id.
func (s *PlantStore) Update(ctx context.Context, p domain.Plant) error {
	query, args, err := sb.
		Update("plants").
		Set("name", p.Name).
		Set("species", p.Species).
		Set("water_frequency_days", p.WaterFrequencyDays).
		Set("last_watered_date", p.LastWateredDate.UTC()).
		Set("image_url", p.ImageURL).
		Set("light_needs", p.LightNeeds).
		Set("notes", p.Notes).
		Where(sq.Eq{"id": p.ID, "owner_id": p.OwnerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "plant", p.ID)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("plant %s: %w", p.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a plant by id. Deleting an absent id is not an error.
func (s *PlantStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := sb.
		Delete("plants").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapError(err, "plant", id)
	}

	return nil
}

// ListOwners returns the distinct owner identities that currently have at
// least one plant. The reminder worker uses it to fan out per-owner digests.
func (s *PlantStore) ListOwners(ctx context.Context) ([]string, error) {
	query, args, err := sb.
		Select("DISTINCT owner_id").
		From("plants").
		OrderBy("owner_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build owners query: %w", err)
	}

	var owners []string
	if err := pgxscan.Select(ctx, s.pool, &owners, query, args...); err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}

	return owners, nil
}
