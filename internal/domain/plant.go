package domain

import (
	"time"

	"github.com/google/uuid"
)

// DemoOwnerID is the sentinel owner identity used when no authentication
// backend is configured. Every plant created in local mode belongs to it.
const DemoOwnerID = "demo-user"

// Plant is the sole persistent entity: one houseplant in an owner's garden.
//
// OwnerID partitions the store by the authenticated user's email (or
// DemoOwnerID in local mode). LastWateredDate is set to the creation time on
// insert and advanced to "now" on every successful watering, so it is
// monotonically non-decreasing as long as the wall clock is.
type Plant struct {
	ID                 uuid.UUID
	OwnerID            string
	Name               string
	Species            string
	WaterFrequencyDays int
	LastWateredDate    time.Time
	ImageURL           *string
	LightNeeds         *string
	Notes              *string
	CreatedAt          time.Time
}

// DisplayName returns the nickname, falling back to the species when the
// owner never named the plant.
func (p *Plant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Species
}

// Validate checks the entity-level invariants that both store backends rely on.
func (p *Plant) Validate() error {
	var errs []FieldError

	if p.Species == "" {
		errs = append(errs, FieldError{Field: "species", Message: "required"})
	}
	if p.WaterFrequencyDays < 1 {
		errs = append(errs, FieldError{Field: "waterFrequencyDays", Message: "must be at least 1"})
	}
	if p.OwnerID == "" {
		errs = append(errs, FieldError{Field: "ownerId", Message: "required"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// CareSuggestion is advisory data returned by the external plant-care service.
// It pre-fills the add-plant form; the service being unreachable is never an
// error for the caller.
type CareSuggestion struct {
	WateringFrequencyDays int
	LightNeeds            string
	CareTip               string
	ScientificName        *string
}
