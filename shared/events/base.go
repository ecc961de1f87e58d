package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey permite a Kafka agrupar los eventos de una misma tarea.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

type EventMetadata struct {
	Type  reflect.Type
	Topic string
}

// NewIntegrationEvent serializa el payload y construye el sobre del evento.
func NewIntegrationEvent(eventType, key string, payload interface{}) (IntegrationEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{
		Type:      eventType,
		Key:       key,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}, nil
}
