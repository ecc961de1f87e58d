package events

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler procesa un mensaje ya leído del broker.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// MessageReader es la parte de *kafka.Reader que usa el consumidor.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ConsumerAdapter lee los eventos de tareas del topic y confirma el offset
// solo después de entregarlos al handler.
type ConsumerAdapter struct {
	reader     MessageReader
	topic      string
	handler    MessageHandler
	log        *zap.Logger
	errBackoff time.Duration
}

func NewConsumerAdapter(reader MessageReader, topic string, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:     reader,
		topic:      topic,
		handler:    handler,
		log:        log,
		errBackoff: time.Second,
	}
}

// Start lanza el bucle de consumo. El canal devuelto se cierra cuando el
// bucle termina (contexto cancelado o reader cerrado).
func (c *ConsumerAdapter) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	c.log.Info("Starting Kafka consumer", zap.String("topic", c.topic))

	go func() {
		defer close(done)
		for c.consumeOne(ctx) {
		}
		c.log.Info("Kafka consumer stopped", zap.String("topic", c.topic))
	}()
	return done
}

// consumeOne procesa un mensaje. Devuelve false cuando el bucle debe parar.
func (c *ConsumerAdapter) consumeOne(ctx context.Context) bool {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, io.EOF) {
			return false
		}
		c.log.Error("Error reading Kafka message", zap.String("topic", c.topic), zap.Error(err))
		select {
		case <-time.After(c.errBackoff):
			return true
		case <-ctx.Done():
			return false
		}
	}

	c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)

	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return false
		}
		c.log.Warn("Failed to commit Kafka offset",
			zap.String("topic", c.topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
	}
	return true
}

// Verificación estática
var _ MessageReader = (*kafka.Reader)(nil)
