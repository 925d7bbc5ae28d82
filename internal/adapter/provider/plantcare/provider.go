// Package plantcare fetches advisory care data for a species from the
// external plant-care API. The provider is best-effort by contract: callers
// treat any failure as "no suggestion available".
package plantcare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/leaflink/leaflink-backend/internal/config"
	"github.com/leaflink/leaflink-backend/internal/domain"
)

// Provider fetches care suggestions over HTTP.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from config. An empty BaseURL is allowed;
// the caller is expected not to construct a provider in that case.
func NewProvider(cfg config.AdviceConfig, logger *slog.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "plantcare"),
	}
}

// GetCareSuggestion fetches advisory data for a species.
// Returns nil, nil if the API has no data for it (HTTP 404).
func (p *Provider) GetCareSuggestion(ctx context.Context, species string) (*domain.CareSuggestion, error) {
	reqURL := p.baseURL + "/v1/care?species=" + url.QueryEscape(species)

	p.log.DebugContext(ctx, "plantcare request", slog.String("species", species))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("plantcare: create request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.doWithRetry(ctx, req, species)
	if err != nil {
		p.log.ErrorContext(ctx, "plantcare request failed",
			slog.String("species", species), slog.String("error", err.Error()))
		return nil, fmt.Errorf("plantcare: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("plantcare: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("plantcare: read body: %w", err)
	}

	var apiResp apiSuggestion
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("plantcare: decode json: %w", err)
	}

	result := apiResp.toDomain()

	p.log.DebugContext(ctx, "plantcare response",
		slog.String("species", species),
		slog.Int("watering_frequency_days", result.WateringFrequencyDays),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, species string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "plantcare retry",
		slog.String("species", species), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return p.httpClient.Do(req)
}
