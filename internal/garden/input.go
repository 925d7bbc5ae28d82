package garden

import (
	"strings"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// AddPlantInput carries the caller-supplied fields for a new plant. Identity
// and timestamps are assigned by the controller, never by the caller.
type AddPlantInput struct {
	Name               string
	Species            string
	WaterFrequencyDays int
	ImageURL           *string
	LightNeeds         *string
	Notes              *string
}

// Validate checks the input and returns a domain.ValidationError listing
// every bad field.
func (in *AddPlantInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Species) == "" {
		errs = append(errs, domain.FieldError{Field: "species", Message: "required"})
	}
	if in.WaterFrequencyDays < 1 {
		errs = append(errs, domain.FieldError{Field: "waterFrequencyDays", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
