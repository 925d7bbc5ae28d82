package garden

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leaflink/leaflink-backend/internal/store"
)

// Manager hands out one garden controller per owner identity, creating and
// loading it on first use. Controllers live for the process lifetime; the
// store behind them is fixed at startup.
type Manager struct {
	store           store.PlantStore
	notifier        PlantAddedNotifier
	notificationTTL time.Duration
	log             *slog.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager creates a manager. notifier may be nil.
func NewManager(st store.PlantStore, notifier PlantAddedNotifier, notificationTTL time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		store:           st,
		notifier:        notifier,
		notificationTTL: notificationTTL,
		log:             log,
		controllers:     make(map[string]*Controller),
	}
}

// Controller returns the owner's controller, creating and loading it on
// first access.
func (m *Manager) Controller(ctx context.Context, ownerID string) *Controller {
	m.mu.Lock()
	c, ok := m.controllers[ownerID]
	if !ok {
		c = NewController(ownerID, m.store, NewNotifications(m.notificationTTL), m.notifier, m.log)
		m.controllers[ownerID] = c
	}
	m.mu.Unlock()

	c.ensureLoaded(ctx)

	return c
}
