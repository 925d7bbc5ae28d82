package reminder

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/internal/schedule"
)

type plantSourceMock struct {
	owners map[string][]domain.Plant
	err    error
}

func (m *plantSourceMock) ListOwners(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	owners := make([]string, 0, len(m.owners))
	for o := range m.owners {
		owners = append(owners, o)
	}
	return owners, nil
}

func (m *plantSourceMock) List(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	return m.owners[ownerID], nil
}

func (m *plantSourceMock) Create(ctx context.Context, p domain.Plant) (domain.Plant, error) {
	return p, nil
}

func (m *plantSourceMock) Update(ctx context.Context, p domain.Plant) error { return nil }

func (m *plantSourceMock) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type senderMock struct {
	digests map[string][]schedule.EvaluatedPlant
	err     error
}

func (m *senderMock) SendWateringDigest(ctx context.Context, recipient string, thirsty []schedule.EvaluatedPlant) error {
	if m.digests == nil {
		m.digests = make(map[string][]schedule.EvaluatedPlant)
	}
	m.digests[recipient] = thirsty
	return m.err
}

func plantWateredDaysAgo(days int, freq int) domain.Plant {
	return domain.Plant{
		ID:                 uuid.New(),
		Species:            "Monstera",
		WaterFrequencyDays: freq,
		LastWateredDate:    time.Now().AddDate(0, 0, -days),
	}
}

func newTestPoller(src *plantSourceMock, snd *senderMock) *Poller {
	return New(src, snd, time.Hour, slog.New(slog.DiscardHandler))
}

func TestPoller_DigestsOnlyThirstyPlants(t *testing.T) {
	src := &plantSourceMock{owners: map[string][]domain.Plant{
		"alice@example.com": {
			plantWateredDaysAgo(10, 7), // overdue
			plantWateredDaysAgo(7, 7),  // due today
			plantWateredDaysAgo(1, 7),  // healthy
		},
	}}
	snd := &senderMock{}

	if err := newTestPoller(src, snd).pollOwners(context.Background()); err != nil {
		t.Fatalf("pollOwners: %v", err)
	}

	digest := snd.digests["alice@example.com"]
	if len(digest) != 2 {
		t.Fatalf("expected 2 thirsty plants in digest, got %d", len(digest))
	}
}

func TestPoller_SkipsOwnersWithNothingDue(t *testing.T) {
	src := &plantSourceMock{owners: map[string][]domain.Plant{
		"alice@example.com": {plantWateredDaysAgo(1, 7)},
	}}
	snd := &senderMock{}

	if err := newTestPoller(src, snd).pollOwners(context.Background()); err != nil {
		t.Fatalf("pollOwners: %v", err)
	}
	if len(snd.digests) != 0 {
		t.Fatalf("expected no digests, got %d", len(snd.digests))
	}
}

func TestPoller_SkipsDemoOwner(t *testing.T) {
	src := &plantSourceMock{owners: map[string][]domain.Plant{
		domain.DemoOwnerID: {plantWateredDaysAgo(30, 7)},
	}}
	snd := &senderMock{}

	if err := newTestPoller(src, snd).pollOwners(context.Background()); err != nil {
		t.Fatalf("pollOwners: %v", err)
	}
	if len(snd.digests) != 0 {
		t.Fatal("demo garden must never be emailed")
	}
}

func TestPoller_DeliveryFailureDoesNotAbortPass(t *testing.T) {
	src := &plantSourceMock{owners: map[string][]domain.Plant{
		"alice@example.com": {plantWateredDaysAgo(10, 7)},
	}}
	snd := &senderMock{err: errors.New("smtp down")}

	if err := newTestPoller(src, snd).pollOwners(context.Background()); err != nil {
		t.Fatalf("delivery failure must not fail the pass: %v", err)
	}
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	src := &plantSourceMock{owners: map[string][]domain.Plant{}}
	snd := &senderMock{}
	p := New(src, snd, 10*time.Millisecond, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
