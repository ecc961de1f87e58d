// en internal/task/infra/inbound/events/task_consumer.go
package events

import (
	"context"
	"encoding/json"
	"reflect"

	"go.uber.org/zap"

	"github.com/insightflow/tasks-service/pkg/metrics"
	sharedEvents "github.com/insightflow/tasks-service/shared/events"
)

// TaskConsumer procesa los eventos de ciclo de vida de las tareas: los
// decodifica según el registro, los cuenta y deja traza en el log.
type TaskConsumer struct {
	registry map[string]sharedEvents.EventMetadata
	log      *zap.Logger
}

// NewTaskConsumer es el constructor.
func NewTaskConsumer(registry map[string]sharedEvents.EventMetadata, logger *zap.Logger) *TaskConsumer {
	return &TaskConsumer{
		registry: registry,
		log:      logger,
	}
}

// HandleMessage es el punto de entrada para un nuevo mensaje/evento.
// Devuelve sin error ante mensajes malformados: no hay reintentos.
func (c *TaskConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for task", zap.String("key", key), zap.Error(err))
		return
	}

	metadata, ok := c.registry[base.Type]
	if !ok {
		c.log.Warn("Unknown task event type", zap.String("type", base.Type), zap.String("key", key))
		return
	}

	// Creamos una nueva instancia del tipo registrado (ej: &domain.Task{})
	data := reflect.New(metadata.Type).Interface()
	if err := json.Unmarshal(base.Data, data); err != nil {
		c.log.Warn("Failed to unmarshal task event data", zap.String("type", base.Type), zap.Error(err))
		return
	}

	metrics.TaskEvents.WithLabelValues(base.Type).Inc()
	c.log.Info("Task event consumed",
		zap.String("type", base.Type),
		zap.String("task_id", base.Key),
		zap.String("topic", metadata.Topic),
		zap.Time("timestamp", base.Timestamp),
	)
}

// BackgroundConsumerChan inicia una goroutine para consumir eventos de un canal.
// Termina al cancelar el contexto o al cerrarse el canal.
func BackgroundConsumerChan(ctx context.Context, ch <-chan interface{}, consumer *TaskConsumer) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				consumer.log.Info("TaskConsumer stopped")
				return
			case msg, ok := <-ch:
				if !ok {
					consumer.log.Info("TaskConsumer channel closed")
					return
				}
				// La 'key' no es relevante en el bus en memoria, pasamos una vacía.
				if payload, ok := msg.([]byte); ok {
					consumer.HandleMessage(ctx, "", payload)
				}
			}
		}
	}()
}
