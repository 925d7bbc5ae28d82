// Package garden implements the per-owner garden controller: it loads the
// owner's plants into memory, orchestrates add, water and delete against the
// plant store, applies the optimistic-update protocol for watering, and owns
// the single-slot notification banner.
//
// The in-memory collection is the source of truth for what the owner
// currently sees; the store is the durable source of truth. The controller's
// job is to never let the two disagree in a way the owner can observe: a
// rejected mutation is either reverted or was never applied.
package garden

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/internal/store"
)

// PlantAddedNotifier sends a best-effort "plant added" email. Implementations
// must never fail the caller; delivery problems are logged and swallowed.
type PlantAddedNotifier interface {
	NotifyPlantAdded(ctx context.Context, plant domain.Plant, recipient string)
}

// Controller manages one owner's garden.
type Controller struct {
	ownerID  string
	store    store.PlantStore
	notifs   *Notifications
	notifier PlantAddedNotifier
	log      *slog.Logger
	now      func() time.Time

	loadOnce sync.Once

	mu     sync.Mutex
	plants []domain.Plant
	// inflight parks the pre-mutation snapshot of every plant with a
	// persist in progress; its presence doubles as the concurrency guard.
	inflight map[uuid.UUID]domain.Plant
}

// NewController creates a controller for one owner. notifier may be nil when
// no outbound email is configured. Call Load before serving reads.
func NewController(ownerID string, st store.PlantStore, notifs *Notifications, notifier PlantAddedNotifier, log *slog.Logger) *Controller {
	return &Controller{
		ownerID:  ownerID,
		store:    st,
		notifs:   notifs,
		notifier: notifier,
		log:      log.With("service", "garden", "owner_id", ownerID),
		now:      time.Now,
		inflight: make(map[uuid.UUID]domain.Plant),
	}
}

// Load populates the in-memory collection from the store. A load failure is
// swallowed: the owner sees an empty garden rather than an error page, and
// the failure is logged.
func (c *Controller) Load(ctx context.Context) {
	plants, err := c.store.List(ctx, c.ownerID)
	if err != nil {
		c.log.Error("load garden failed, starting empty", "error", err)
		plants = []domain.Plant{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.plants = plants
}

// ensureLoaded loads at most once for controllers handed out by the manager.
func (c *Controller) ensureLoaded(ctx context.Context) {
	c.loadOnce.Do(func() { c.Load(ctx) })
}

// Plants returns a snapshot copy of the collection in display order.
func (c *Controller) Plants() []domain.Plant {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Plant, len(c.plants))
	copy(out, c.plants)
	return out
}

// Notifications exposes the controller's banner slot.
func (c *Controller) Notifications() *Notifications {
	return c.notifs
}

// Add creates a plant. Add is not optimistic: the record joins the in-memory
// collection only after the store confirms it, prepended so the newest plant
// shows first. On success a best-effort email goes out to real accounts.
func (c *Controller) Add(ctx context.Context, in AddPlantInput) (domain.Plant, error) {
	if err := in.Validate(); err != nil {
		return domain.Plant{}, err
	}

	now := c.now()
	draft := domain.Plant{
		OwnerID:            c.ownerID,
		Name:               in.Name,
		Species:            in.Species,
		WaterFrequencyDays: in.WaterFrequencyDays,
		LastWateredDate:    now,
		ImageURL:           in.ImageURL,
		LightNeeds:         in.LightNeeds,
		Notes:              in.Notes,
	}

	created, err := c.store.Create(ctx, draft)
	if err != nil {
		c.notifs.Publish(NotificationError, fmt.Sprintf("Could not add %s: %v", draft.DisplayName(), err))
		return domain.Plant{}, fmt.Errorf("add plant: %w", err)
	}

	c.mu.Lock()
	c.plants = append([]domain.Plant{created}, c.plants...)
	c.mu.Unlock()

	c.notifs.Publish(NotificationSuccess, fmt.Sprintf("%s added to your garden", created.DisplayName()))

	if c.notifier != nil && c.ownerID != domain.DemoOwnerID {
		go c.notifier.NotifyPlantAdded(context.WithoutCancel(ctx), created, c.ownerID)
	}

	return created, nil
}

// Water marks a plant watered using the optimistic three-phase protocol:
// snapshot the record, set lastWateredDate to now in memory, then persist.
// A store failure restores the snapshot exactly and publishes one error
// banner; success publishes nothing, the advanced timestamp is the only
// visible outcome. A second Water on the same plant while one is persisting
// returns domain.ErrMutationInFlight.
func (c *Controller) Water(ctx context.Context, id uuid.UUID) (domain.Plant, error) {
	now := c.now()

	var updated domain.Plant
	applied := false
	err := optimistic(ctx,
		func() (func(), error) {
			var err error
			updated, err = c.applyWater(id, now)
			if err != nil {
				return nil, err
			}
			applied = true
			return func() { c.revertWater(id) }, nil
		},
		func(ctx context.Context) error {
			return c.store.Update(ctx, updated)
		},
	)
	if err != nil {
		// Apply-phase rejections (unknown plant, mutation already in
		// flight) never reached the store and get no banner. Any persist
		// failure does, including the plant vanishing remotely.
		if !applied {
			return domain.Plant{}, err
		}
		c.notifs.Publish(NotificationError, fmt.Sprintf("Could not water %s: %v", updated.DisplayName(), err))
		return domain.Plant{}, fmt.Errorf("water plant: %w", err)
	}

	c.finishWater(id)
	return updated, nil
}

// applyWater is the snapshot and tentative-apply phase, under lock. The
// snapshot is parked in the in-flight map until the mutation settles one way
// or the other.
func (c *Controller) applyWater(id uuid.UUID, now time.Time) (domain.Plant, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.plants {
		if c.plants[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Plant{}, fmt.Errorf("plant %s: %w", id, domain.ErrNotFound)
	}
	if _, busy := c.inflight[id]; busy {
		return domain.Plant{}, fmt.Errorf("plant %s: %w", id, domain.ErrMutationInFlight)
	}

	c.inflight[id] = c.plants[idx]
	c.plants[idx].LastWateredDate = now

	return c.plants[idx], nil
}

// revertWater restores the parked snapshot bit-for-bit.
func (c *Controller) revertWater(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, ok := c.inflight[id]
	if !ok {
		return
	}
	delete(c.inflight, id)
	for i := range c.plants {
		if c.plants[i].ID == id {
			c.plants[i] = snapshot
			return
		}
	}
}

func (c *Controller) finishWater(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
}

// Remove deletes a plant. The transport layer is responsible for collecting
// the owner's confirmation; the controller assumes the call is confirmed.
// Delete is confirm-then-mutate: the store goes first, and the record leaves
// the in-memory collection only after the store accepted the delete, so a
// rejected delete never hides a plant that still exists durably.
func (c *Controller) Remove(ctx context.Context, id uuid.UUID) error {
	c.mu.Lock()
	var target *domain.Plant
	for i := range c.plants {
		if c.plants[i].ID == id {
			target = &c.plants[i]
			break
		}
	}
	if target == nil {
		c.mu.Unlock()
		return fmt.Errorf("plant %s: %w", id, domain.ErrNotFound)
	}
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		return fmt.Errorf("plant %s: %w", id, domain.ErrMutationInFlight)
	}
	name := target.DisplayName()
	// Park the record so no other mutation can start on this id while the
	// delete is round-tripping.
	c.inflight[id] = *target
	c.mu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		c.mu.Lock()
		delete(c.inflight, id)
		c.mu.Unlock()
		c.notifs.Publish(NotificationError, fmt.Sprintf("Could not remove %s: %v", name, err))
		return fmt.Errorf("remove plant: %w", err)
	}

	c.mu.Lock()
	delete(c.inflight, id)
	kept := c.plants[:0]
	for _, p := range c.plants {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.plants = kept
	c.mu.Unlock()

	c.notifs.Publish(NotificationSuccess, fmt.Sprintf("%s removed from your garden", name))
	return nil
}
