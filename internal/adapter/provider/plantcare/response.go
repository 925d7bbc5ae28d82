package plantcare

import "github.com/leaflink/leaflink-backend/internal/domain"

// apiSuggestion mirrors the plant-care API response shape.
type apiSuggestion struct {
	WateringFrequencyDays int    `json:"wateringFrequencyDays"`
	LightNeeds            string `json:"lightNeeds"`
	CareTip               string `json:"careTip"`
	ScientificName        string `json:"scientificName"`
}

func (a apiSuggestion) toDomain() *domain.CareSuggestion {
	s := &domain.CareSuggestion{
		WateringFrequencyDays: a.WateringFrequencyDays,
		LightNeeds:            a.LightNeeds,
		CareTip:               a.CareTip,
	}
	if a.ScientificName != "" {
		name := a.ScientificName
		s.ScientificName = &name
	}
	return s
}
