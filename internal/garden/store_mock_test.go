package garden

import (
	"context"

	"github.com/google/uuid"

	"github.com/leaflink/leaflink-backend/internal/domain"
)

// plantStoreMock implements store.PlantStore with overridable behavior.
type plantStoreMock struct {
	ListFunc   func(ctx context.Context, ownerID string) ([]domain.Plant, error)
	CreateFunc func(ctx context.Context, p domain.Plant) (domain.Plant, error)
	UpdateFunc func(ctx context.Context, p domain.Plant) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

func (m *plantStoreMock) List(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	m.ListCalls++
	if m.ListFunc == nil {
		return []domain.Plant{}, nil
	}
	return m.ListFunc(ctx, ownerID)
}

func (m *plantStoreMock) Create(ctx context.Context, p domain.Plant) (domain.Plant, error) {
	m.CreateCalls++
	if m.CreateFunc == nil {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		return p, nil
	}
	return m.CreateFunc(ctx, p)
}

func (m *plantStoreMock) Update(ctx context.Context, p domain.Plant) error {
	m.UpdateCalls++
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(ctx, p)
}

func (m *plantStoreMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.DeleteCalls++
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}
