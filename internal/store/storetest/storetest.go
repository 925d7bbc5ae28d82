// Package storetest holds the behavioral suite every plant store backend must
// pass. Running the same suite against the PostgreSQL and the local store is
// what keeps the two backends observably interchangeable.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/internal/store"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.PlantStore

func strptr(s string) *string { return &s }

// SamplePlant returns a minimal valid plant for tests.
func SamplePlant(owner, species string) domain.Plant {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Plant{
		OwnerID:            owner,
		Species:            species,
		WaterFrequencyDays: 7,
		LastWateredDate:    now,
	}
}

// Run executes the full contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAssignsIdentity", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, SamplePlant("alice@example.com", "Ficus lyrata"))
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.ID)
		require.False(t, created.CreatedAt.IsZero())
	})

	t.Run("ListOrdersNewestFirst", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		base := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)
		for i, species := range []string{"Monstera", "Pothos", "Calathea"} {
			p := SamplePlant("alice@example.com", species)
			p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			_, err := s.Create(ctx, p)
			require.NoError(t, err)
		}

		plants, err := s.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, plants, 3)
		require.Equal(t, "Calathea", plants[0].Species)
		require.Equal(t, "Pothos", plants[1].Species)
		require.Equal(t, "Monstera", plants[2].Species)
	})

	t.Run("ListPartitionsByOwner", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Create(ctx, SamplePlant("alice@example.com", "Monstera"))
		require.NoError(t, err)
		_, err = s.Create(ctx, SamplePlant(domain.DemoOwnerID, "Cactus"))
		require.NoError(t, err)

		alice, err := s.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, alice, 1)
		require.Equal(t, "Monstera", alice[0].Species)

		demo, err := s.List(ctx, domain.DemoOwnerID)
		require.NoError(t, err)
		require.Len(t, demo, 1)
		require.Equal(t, "Cactus", demo[0].Species)

		nobody, err := s.List(ctx, "nobody@example.com")
		require.NoError(t, err)
		require.Empty(t, nobody)
	})

	t.Run("UpdateReplacesRecord", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, SamplePlant("alice@example.com", "Monstera"))
		require.NoError(t, err)

		created.Name = "Monty"
		created.Notes = strptr("repotted in spring")
		created.LastWateredDate = created.LastWateredDate.Add(48 * time.Hour)
		require.NoError(t, s.Update(ctx, created))

		plants, err := s.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, plants, 1)
		require.Equal(t, "Monty", plants[0].Name)
		require.NotNil(t, plants[0].Notes)
		require.Equal(t, "repotted in spring", *plants[0].Notes)
		require.True(t, plants[0].LastWateredDate.Equal(created.LastWateredDate))
	})

	t.Run("UpdateUnknownIDIsNotFound", func(t *testing.T) {
		s := newStore(t)

		p := SamplePlant("alice@example.com", "Monstera")
		p.ID = uuid.New()
		err := s.Update(context.Background(), p)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteRemovesAndIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, SamplePlant("alice@example.com", "Monstera"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, created.ID))
		require.NoError(t, s.Delete(ctx, created.ID))

		plants, err := s.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Empty(t, plants)
	})

	t.Run("OptionalFieldsRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		p := SamplePlant("alice@example.com", "Ficus lyrata")
		p.Name = "Figgy"
		p.ImageURL = strptr("https://img.example.com/figgy.jpg")
		p.LightNeeds = strptr("bright indirect")
		p.Notes = strptr("drama queen")

		created, err := s.Create(ctx, p)
		require.NoError(t, err)

		plants, err := s.List(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Len(t, plants, 1)

		got := plants[0]
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, "Figgy", got.Name)
		require.Equal(t, "Ficus lyrata", got.Species)
		require.NotNil(t, got.ImageURL)
		require.Equal(t, *p.ImageURL, *got.ImageURL)
		require.NotNil(t, got.LightNeeds)
		require.Equal(t, *p.LightNeeds, *got.LightNeeds)
		require.NotNil(t, got.Notes)
		require.Equal(t, *p.Notes, *got.Notes)
	})
}
