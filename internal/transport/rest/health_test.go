package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leaflink/leaflink-backend/internal/store"
)

type pingerMock struct {
	err error
}

func (p *pingerMock) Ping(ctx context.Context) error { return p.err }

func TestHealthHandler_Live(t *testing.T) {
	h := NewHealthHandler(&pingerMock{}, store.ModeRemote, "test")

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHealthHandler_Ready_DBDown(t *testing.T) {
	h := NewHealthHandler(&pingerMock{err: errors.New("down")}, store.ModeRemote, "test")

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHealthHandler_Ready_LocalModeHasNoPinger(t *testing.T) {
	h := NewHealthHandler(nil, store.ModeLocal, "test")

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Store != "local" {
		t.Errorf("store = %q, want local", resp.Store)
	}
}

func TestHealthHandler_Health_Components(t *testing.T) {
	h := NewHealthHandler(&pingerMock{}, store.ModeRemote, "1.2.3")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version != "1.2.3" {
		t.Errorf("version = %q", resp.Version)
	}
	if resp.Components["database"].Status != "ok" {
		t.Errorf("database component = %+v", resp.Components["database"])
	}
}
