package mocks

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	sharedEvents "github.com/insightflow/tasks-service/shared/events"
	sharedBus "github.com/insightflow/tasks-service/shared/platform/bus"
)

// MockPublisher simula un publisher con expectativas de testify.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// RecordingPublisher guarda los eventos publicados.
type RecordingPublisher struct {
	mu        sync.Mutex
	Published []sharedEvents.IntegrationEvent
}

func (p *RecordingPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ie, ok := event.(sharedEvents.IntegrationEvent); ok {
		p.Published = append(p.Published, ie)
	}
	return nil
}

// Types devuelve los tipos de evento en orden de publicación.
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.Published))
	for _, e := range p.Published {
		types = append(types, e.Type)
	}
	return types
}

// Verificación estática
var (
	_ sharedBus.EventPublisher = (*MockPublisher)(nil)
	_ sharedBus.EventPublisher = (*RecordingPublisher)(nil)
)
