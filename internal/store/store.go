// Package store defines the persistence contract the garden runs on. Two
// interchangeable backends implement it: a remote PostgreSQL store and a
// local device-resident store. Which one a process uses is decided once at
// startup from configuration and never re-evaluated.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// Mode names the backend a process was started with.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// PlantStore is the dual-backend persistence contract.
//
// List returns the owner's plants ordered by creation time descending. The
// remote backend fails open: on a backend error it logs and returns an empty
// slice rather than an error, so a broken connection degrades to an empty
// garden instead of a hard failure.
//
// Create assigns the id and creation time and returns the stored record.
// Update is a full-record replace keyed by id and returns domain.ErrNotFound
// for an unknown id. Delete removes by id and is idempotent: deleting an
// absent id is not an error.
type PlantStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Plant, error)
	Create(ctx context.Context, p domain.Plant) (domain.Plant, error)
	Update(ctx context.Context, p domain.Plant) error
	Delete(ctx context.Context, id uuid.UUID) error
}
