// Package email sends outbound mail through SendGrid. Without an API key the
// notifier runs in simulation mode: every send is logged instead of
// delivered, which keeps local and test environments free of real traffic.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/leaflink/leaflink-backend/internal/config"
	"github.com/leaflink/leaflink-backend/internal/domain"
	"github.com/leaflink/leaflink-backend/internal/schedule"
)

// Notifier sends plant-related email, best-effort.
type Notifier struct {
	client   *sendgrid.Client
	from     *mail.Email
	simulate bool
	log      *slog.Logger
}

// NewNotifier creates a notifier from config. An empty SendGrid API key
// selects simulation mode.
func NewNotifier(cfg config.EmailConfig, logger *slog.Logger) *Notifier {
	n := &Notifier{
		from:     mail.NewEmail(cfg.FromName, cfg.FromAddress),
		simulate: cfg.SendGridAPIKey == "",
		log:      logger.With("adapter", "email"),
	}
	if !n.simulate {
		n.client = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	return n
}

// NotifyPlantAdded tells the owner their plant was registered. Never fails
// the caller; delivery problems are logged and swallowed.
func (n *Notifier) NotifyPlantAdded(ctx context.Context, plant domain.Plant, recipient string) {
	subject := fmt.Sprintf("%s joined your garden", plant.DisplayName())
	body := fmt.Sprintf(
		"You added %s (%s) to your LeafLink garden.\nWatering interval: every %d days.\n",
		plant.DisplayName(), plant.Species, plant.WaterFrequencyDays)

	if err := n.send(ctx, recipient, subject, body); err != nil {
		n.log.ErrorContext(ctx, "plant-added email failed",
			slog.String("recipient", recipient), slog.String("error", err.Error()))
	}
}

// SendWateringDigest emails the owner a list of plants that currently need
// water. Called by the reminder worker.
func (n *Notifier) SendWateringDigest(ctx context.Context, recipient string, thirsty []schedule.EvaluatedPlant) error {
	if len(thirsty) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d plant(s) need water", len(thirsty))

	var b strings.Builder
	b.WriteString("These plants are due for watering:\n\n")
	for _, ep := range thirsty {
		switch ep.Evaluation.State {
		case schedule.Overdue:
			fmt.Fprintf(&b, "- %s: overdue by %d day(s)\n", ep.Plant.DisplayName(), -ep.Evaluation.DaysUntil)
		default:
			fmt.Fprintf(&b, "- %s: due today\n", ep.Plant.DisplayName())
		}
	}

	return n.send(ctx, recipient, subject, b.String())
}

func (n *Notifier) send(ctx context.Context, recipient, subject, body string) error {
	if n.simulate {
		n.log.InfoContext(ctx, "simulated email",
			slog.String("recipient", recipient),
			slog.String("subject", subject))
		return nil
	}

	msg := mail.NewSingleEmail(n.from, subject, mail.NewEmail("", recipient), body, "")

	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	n.log.DebugContext(ctx, "email sent",
		slog.String("recipient", recipient),
		slog.Int("status", resp.StatusCode))

	return nil
}
