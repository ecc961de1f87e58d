package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	sharedBus "github.com/insightflow/tasks-service/shared/platform/bus"
)

var ErrBusClosed = errors.New("event bus closed")

// InMemoryEventBus implementa un bus de eventos para UN solo topic.
type InMemoryEventBus struct {
	subscribers []chan interface{}
	mu          sync.RWMutex
	closed      bool
	topic       string // Identificador del topic que maneja este bus
}

// Verifica en tiempo de compilación que cumple la interfaz
var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus crea un bus de eventos para un topic específico.
func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan interface{}, 0),
		topic:       topic,
	}
}

// Topic devuelve el topic que maneja el bus.
func (b *InMemoryEventBus) Topic() string {
	return b.topic
}

// Publish envía el evento serializado a todos los suscriptores.
// Si el buffer de un suscriptor está lleno, el evento se descarta para él.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}
	for _, subChan := range b.subscribers {
		select {
		case subChan <- payloadBytes:
		default:
		}
	}
	return nil
}

// Subscribe suscribe un nuevo oyente a este bus.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan interface{}, bufferSize)
	if b.closed {
		close(subChan)
		return subChan
	}
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}

// Close cierra los canales de los suscriptores. Es idempotente.
func (b *InMemoryEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, subChan := range b.subscribers {
		close(subChan)
	}
	b.subscribers = nil
}
