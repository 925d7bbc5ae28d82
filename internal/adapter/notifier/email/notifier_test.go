package email

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/config"
	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/internal/schedule"
)

func TestNotifier_SimulationMode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	n := NewNotifier(config.EmailConfig{FromAddress: "no-reply@leaflink.app", FromName: "LeafLink"}, logger)

	plant := domain.Plant{
		ID:                 uuid.New(),
		OwnerID:            "alice@example.com",
		Name:               "Figgy",
		Species:            "Fiddle Leaf Fig",
		WaterFrequencyDays: 7,
		LastWateredDate:    time.Now(),
	}

	// Must never fail or panic without an API key.
	n.NotifyPlantAdded(context.Background(), plant, "alice@example.com")

	if !bytes.Contains(buf.Bytes(), []byte("simulated email")) {
		t.Errorf("expected simulated send to be logged, got: %s", buf.String())
	}
}

func TestNotifier_WateringDigest(t *testing.T) {
	n := NewNotifier(config.EmailConfig{FromAddress: "no-reply@leaflink.app"}, slog.New(slog.DiscardHandler))
	ctx := context.Background()

	// Nothing thirsty, nothing sent.
	if err := n.SendWateringDigest(ctx, "alice@example.com", nil); err != nil {
		t.Fatalf("empty digest: %v", err)
	}

	thirsty := []schedule.EvaluatedPlant{
		{
			Plant:      domain.Plant{Species: "Calathea", Name: "Cala"},
			Evaluation: schedule.Evaluation{State: schedule.Overdue, DaysUntil: -2},
		},
		{
			Plant:      domain.Plant{Species: "Pothos"},
			Evaluation: schedule.Evaluation{State: schedule.DueToday, DaysUntil: 0},
		},
	}
	if err := n.SendWateringDigest(ctx, "alice@example.com", thirsty); err != nil {
		t.Fatalf("digest in simulation mode: %v", err)
	}
}
