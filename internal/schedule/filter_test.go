package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// mixedGarden builds plants alternating between overdue, due-today, and
// upcoming relative to now.
func mixedGarden(now time.Time, n int) []domain.Plant {
	plants := make([]domain.Plant, 0, n)
	for i := 0; i < n; i++ {
		daysAgo := i % 10 // freq 7: 0..6 upcoming, 7 due today, 8..9 overdue
		plants = append(plants, domain.Plant{
			ID:                 uuid.New(),
			OwnerID:            "alice@example.com",
			Species:            "Pothos",
			WaterFrequencyDays: 7,
			LastWateredDate:    now.AddDate(0, 0, -daysAgo),
		})
	}
	return plants
}

func TestFilter_AllPreservesOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	plants := mixedGarden(now, 12)

	got := Filter(plants, FilterAll, now)
	if len(got) != len(plants) {
		t.Fatalf("len = %d, want %d", len(got), len(plants))
	}
	for i := range plants {
		if got[i].ID != plants[i].ID {
			t.Fatalf("order changed at index %d", i)
		}
	}
}

func TestFilter_ThirstyHealthyPartition(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	plants := mixedGarden(now, 20)

	thirsty := Filter(plants, FilterThirsty, now)
	healthy := Filter(plants, FilterHealthy, now)

	if len(thirsty)+len(healthy) != len(plants) {
		t.Fatalf("partition sizes %d+%d != %d", len(thirsty), len(healthy), len(plants))
	}

	seen := make(map[uuid.UUID]int)
	for _, p := range thirsty {
		seen[p.ID]++
		if !IsThirsty(p, now) {
			t.Errorf("plant %s in thirsty filter but not thirsty", p.ID)
		}
	}
	for _, p := range healthy {
		seen[p.ID]++
		if !IsHealthy(p, now) {
			t.Errorf("plant %s in healthy filter but not healthy", p.ID)
		}
	}
	for _, p := range plants {
		if seen[p.ID] != 1 {
			t.Errorf("plant %s appears %d times across the partition, want 1", p.ID, seen[p.ID])
		}
	}
}

func TestStats_MatchesFilter(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	plants := mixedGarden(now, 17)

	stats := Stats(plants, now)
	if stats.Total != len(plants) {
		t.Errorf("total = %d, want %d", stats.Total, len(plants))
	}
	if want := len(Filter(plants, FilterThirsty, now)); stats.Thirsty != want {
		t.Errorf("thirsty = %d, want %d", stats.Thirsty, want)
	}
}

func TestStats_Empty(t *testing.T) {
	t.Parallel()

	stats := Stats(nil, time.Now())
	if stats.Total != 0 || stats.Thirsty != 0 {
		t.Errorf("stats of empty garden = %+v, want zeros", stats)
	}
}

func TestParseFilterMode(t *testing.T) {
	t.Parallel()

	cases := map[string]FilterMode{
		"all":     FilterAll,
		"thirsty": FilterThirsty,
		"healthy": FilterHealthy,
		"":        FilterAll,
		"bogus":   FilterAll,
	}
	for in, want := range cases {
		if got := ParseFilterMode(in); got != want {
			t.Errorf("ParseFilterMode(%q) = %v, want %v", in, got, want)
		}
	}
}
