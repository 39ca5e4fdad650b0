package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/sapphire-cosmetics/storefront/bus"
	"github.com/sapphire-cosmetics/storefront/models"
)

// --- Mocks for Dependencies ---

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Login(ctx context.Context, role, email, password string) (string, models.Principal, error) {
	args := m.Called(ctx, role, email, password)
	return args.String(0), args.Get(1).(models.Principal), args.Error(2)
}

func (m *MockAuthenticator) Register(ctx context.Context, role, name, email, password string) error {
	args := m.Called(ctx, role, name, email, password)
	return args.Error(0)
}

type MockOrderPlacer struct{ mock.Mock }

func (m *MockOrderPlacer) PlaceOrder(ctx context.Context, order models.OrderRequest) (models.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(models.Order), args.Error(1)
}

// recordingSignaler collects published cart events.
type recordingSignaler struct {
	mu     sync.Mutex
	events []bus.CartEvent
}

func (r *recordingSignaler) PublishCartUpdated(event bus.CartEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingSignaler) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.events))
	for _, e := range r.events {
		actions = append(actions, e.Action)
	}
	return actions
}
