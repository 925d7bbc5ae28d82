// Package reminder runs the watering-reminder worker: it periodically walks
// every owner's garden, evaluates watering status, and emails a digest of the
// plants that need water. Remote deployments only; a demo garden has nobody
// to email.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/internal/schedule"
	"github.com/leaflink/leaflink-backend/internal/store"
)

// ownerLister extends the plant store with owner enumeration. Only the
// PostgreSQL store implements it.
type ownerLister interface {
	store.PlantStore
	ListOwners(ctx context.Context) ([]string, error)
}

// digestSender sends one owner's watering digest.
type digestSender interface {
	SendWateringDigest(ctx context.Context, recipient string, thirsty []schedule.EvaluatedPlant) error
}

// Poller runs an infinite recheck loop.
type Poller struct {
	plants        ownerLister
	sender        digestSender
	recheckPeriod time.Duration
	log           *slog.Logger
	now           func() time.Time
}

// New creates a poller.
func New(plants ownerLister, sender digestSender, recheckPeriod time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		plants:        plants,
		sender:        sender,
		recheckPeriod: recheckPeriod,
		log:           logger.With("service", "reminder"),
		now:           time.Now,
	}
}

// Run blocks until ctx is cancelled, performing one pass immediately and then
// one per recheck period. A failed pass is logged, never fatal.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.recheckPeriod)
	defer ticker.Stop()

	// Poll once right away, the ticker doesn't fire until the tick period
	// has elapsed.
	if err := p.pollOwners(ctx); err != nil {
		p.log.ErrorContext(ctx, "reminder pass failed", slog.Any("err", err))
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := p.pollOwners(ctx); err != nil {
			p.log.ErrorContext(ctx, "reminder pass failed", slog.Any("err", err))
		}
	}
}

func (p *Poller) pollOwners(ctx context.Context) error {
	p.log.InfoContext(ctx, "starting reminder pass")
	defer p.log.InfoContext(ctx, "finished reminder pass")

	owners, err := p.plants.ListOwners(ctx)
	if err != nil {
		return fmt.Errorf("list owners: %w", err)
	}

	for _, owner := range owners {
		if owner == domain.DemoOwnerID {
			continue
		}
		if err := p.processOwner(ctx, owner); err != nil {
			return fmt.Errorf("while processing owner %s: %w", owner, err)
		}
	}

	return nil
}

func (p *Poller) processOwner(ctx context.Context, owner string) error {
	plants, err := p.plants.List(ctx, owner)
	if err != nil {
		return fmt.Errorf("list plants: %w", err)
	}

	now := p.now()
	var thirsty []schedule.EvaluatedPlant
	for _, plant := range plants {
		ev := schedule.Evaluate(plant, now)
		if ev.State == schedule.Overdue || ev.State == schedule.DueToday {
			thirsty = append(thirsty, schedule.EvaluatedPlant{Plant: plant, Evaluation: ev})
		}
	}

	if len(thirsty) == 0 {
		return nil
	}

	p.log.InfoContext(ctx, "sending watering digest",
		slog.String("owner", owner), slog.Int("thirsty", len(thirsty)))

	if err := p.sender.SendWateringDigest(ctx, owner, thirsty); err != nil {
		// A delivery failure for one owner must not starve the rest.
		p.log.ErrorContext(ctx, "digest delivery failed",
			slog.String("owner", owner), slog.Any("err", err))
	}

	return nil
}
