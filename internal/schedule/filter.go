package schedule

import (
	"time"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// FilterMode selects which slice of the garden a view shows.
type FilterMode string

const (
	FilterAll     FilterMode = "all"
	FilterThirsty FilterMode = "thirsty"
	FilterHealthy FilterMode = "healthy"
)

// ParseFilterMode maps a query-string value to a FilterMode,
// defaulting to FilterAll for empty or unknown input.
func ParseFilterMode(s string) FilterMode {
	switch FilterMode(s) {
	case FilterThirsty:
		return FilterThirsty
	case FilterHealthy:
		return FilterHealthy
	default:
		return FilterAll
	}
}

// Filter returns the plants matching mode at now, preserving input order.
// FilterThirsty and FilterHealthy partition the input: every plant lands in
// exactly one of the two.
func Filter(plants []domain.Plant, mode FilterMode, now time.Time) []domain.Plant {
	if mode == FilterAll {
		out := make([]domain.Plant, len(plants))
		copy(out, plants)
		return out
	}

	out := make([]domain.Plant, 0, len(plants))
	for _, p := range plants {
		thirsty := IsThirsty(p, now)
		if (mode == FilterThirsty && thirsty) || (mode == FilterHealthy && !thirsty) {
			out = append(out, p)
		}
	}
	return out
}

// GardenStats summarizes a garden at one instant.
type GardenStats struct {
	Total   int
	Thirsty int
}

// Stats counts the garden and its thirsty plants at now.
func Stats(plants []domain.Plant, now time.Time) GardenStats {
	s := GardenStats{Total: len(plants)}
	for _, p := range plants {
		if IsThirsty(p, now) {
			s.Thirsty++
		}
	}
	return s
}
