package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// adviceProvider defines the minimal interface needed by AdviceHandler.
type adviceProvider interface {
	GetCareSuggestion(ctx context.Context, species string) (*domain.CareSuggestion, error)
}

// AdviceHandler serves the advisory care-suggestion endpoint. The feature is
// strictly best-effort: any provider failure degrades to an empty suggestion
// with 204, never an error the client has to handle.
type AdviceHandler struct {
	provider adviceProvider
	log      *slog.Logger
}

// NewAdviceHandler creates an AdviceHandler. provider may be nil when the
// advisory service is not configured.
func NewAdviceHandler(provider adviceProvider, logger *slog.Logger) *AdviceHandler {
	return &AdviceHandler{provider: provider, log: logger.With("handler", "advice")}
}

type suggestionResponse struct {
	WateringFrequencyDays int     `json:"wateringFrequencyDays"`
	LightNeeds            string  `json:"lightNeeds"`
	CareTip               string  `json:"careTip"`
	ScientificName        *string `json:"scientificName,omitempty"`
}

// Get handles GET /api/care-advice?species=...
func (h *AdviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	species := r.URL.Query().Get("species")
	if species == "" {
		writeError(w, http.StatusBadRequest, "species query parameter is required")
		return
	}

	if h.provider == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	suggestion, err := h.provider.GetCareSuggestion(r.Context(), species)
	if err != nil {
		h.log.WarnContext(r.Context(), "care suggestion lookup failed",
			slog.String("species", species), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if suggestion == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, suggestionResponse{
		WateringFrequencyDays: suggestion.WateringFrequencyDays,
		LightNeeds:            suggestion.LightNeeds,
		CareTip:               suggestion.CareTip,
		ScientificName:        suggestion.ScientificName,
	})
}
