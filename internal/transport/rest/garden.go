package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/internal/garden"
	"github.com/leaflink/leaflink-backend/internal/schedule"
	"github.com/leaflink/leaflink-backend/internal/store"
	"github.com/leaflink/leaflink-backend/pkg/ctxutil"
)

// GardenHandler serves the plant CRUD endpoints. Every request runs against
// the garden controller of the identity in the request context.
type GardenHandler struct {
	gardens *garden.Manager
	mode    store.Mode
	log     *slog.Logger
	now     func() time.Time
}

// NewGardenHandler creates a GardenHandler. mode is echoed in the garden view
// so clients can show the demo-mode banner when running on the local store.
func NewGardenHandler(gardens *garden.Manager, mode store.Mode, logger *slog.Logger) *GardenHandler {
	return &GardenHandler{
		gardens: gardens,
		mode:    mode,
		log:     logger.With("handler", "garden"),
		now:     time.Now,
	}
}

type plantResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name,omitempty"`
	Species            string    `json:"species"`
	WaterFrequencyDays int       `json:"waterFrequencyDays"`
	LastWateredDate    time.Time `json:"lastWateredDate"`
	ImageURL           *string   `json:"imageUrl,omitempty"`
	LightNeeds         *string   `json:"lightNeeds,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	DueDate            time.Time `json:"dueDate"`
	DaysUntil          int       `json:"daysUntil"`
	State              string    `json:"state"`
}

type statsResponse struct {
	Total   int `json:"total"`
	Thirsty int `json:"thirsty"`
}

type notificationResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type gardenResponse struct {
	Plants       []plantResponse       `json:"plants"`
	Stats        statsResponse         `json:"stats"`
	StorageMode  string                `json:"storageMode"`
	Notification *notificationResponse `json:"notification,omitempty"`
}

type addPlantRequest struct {
	Name               string  `json:"name"`
	Species            string  `json:"species"`
	WaterFrequencyDays int     `json:"waterFrequencyDays"`
	ImageURL           *string `json:"imageUrl"`
	LightNeeds         *string `json:"lightNeeds"`
	Notes              *string `json:"notes"`
}

func (h *GardenHandler) controller(r *http.Request) *garden.Controller {
	identity, _ := ctxutil.IdentityFromCtx(r.Context())
	return h.gardens.Controller(r.Context(), identity)
}

// List handles GET /api/plants. The optional filter query parameter accepts
// all, thirsty or healthy; anything else falls back to all.
func (h *GardenHandler) List(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	now := h.now()

	plants := ctrl.Plants()
	mode := schedule.ParseFilterMode(r.URL.Query().Get("filter"))
	filtered := schedule.Filter(plants, mode, now)
	stats := schedule.Stats(plants, now)

	resp := gardenResponse{
		Plants:      make([]plantResponse, 0, len(filtered)),
		Stats:       statsResponse{Total: stats.Total, Thirsty: stats.Thirsty},
		StorageMode: string(h.mode),
	}
	for _, p := range filtered {
		resp.Plants = append(resp.Plants, toPlantResponse(p, now))
	}
	if n := ctrl.Notifications().Current(); n != nil {
		resp.Notification = &notificationResponse{Message: n.Message, Kind: string(n.Kind)}
	}

	writeJSON(w, http.StatusOK, resp)
}

// Add handles POST /api/plants.
func (h *GardenHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addPlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.controller(r).Add(r.Context(), garden.AddPlantInput{
		Name:               req.Name,
		Species:            req.Species,
		WaterFrequencyDays: req.WaterFrequencyDays,
		ImageURL:           req.ImageURL,
		LightNeeds:         req.LightNeeds,
		Notes:              req.Notes,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPlantResponse(created, h.now()))
}

// Water handles POST /api/plants/{id}/water.
func (h *GardenHandler) Water(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plant id")
		return
	}

	updated, err := h.controller(r).Water(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toPlantResponse(updated, h.now()))
}

// Delete handles DELETE /api/plants/{id}. The caller must send confirm=true:
// the store is never touched until the deletion is explicitly affirmed.
func (h *GardenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plant id")
		return
	}

	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "deletion requires confirm=true")
		return
	}

	if err := h.controller(r).Remove(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DismissNotification handles DELETE /api/notifications.
func (h *GardenHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.controller(r).Notifications().Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

func toPlantResponse(p domain.Plant, now time.Time) plantResponse {
	ev := schedule.Evaluate(p, now)
	return plantResponse{
		ID:                 p.ID.String(),
		Name:               p.Name,
		Species:            p.Species,
		WaterFrequencyDays: p.WaterFrequencyDays,
		LastWateredDate:    p.LastWateredDate,
		ImageURL:           p.ImageURL,
		LightNeeds:         p.LightNeeds,
		Notes:              p.Notes,
		CreatedAt:          p.CreatedAt,
		DueDate:            ev.DueDate,
		DaysUntil:          ev.DaysUntil,
		State:              ev.State.String(),
	}
}
