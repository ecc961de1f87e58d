package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedEvents "github.com/insightflow/tasks-service/shared/events"
)

func TestInMemoryEventBus_PublishReachesSubscribers(t *testing.T) {
	// Arrange
	bus := NewInMemoryEventBus("task")
	chA := bus.Subscribe(1)
	chB := bus.Subscribe(1)
	evt, err := sharedEvents.NewIntegrationEvent("task.created", "k", map[string]string{"id": "1"})
	require.NoError(t, err)

	// Act
	require.NoError(t, bus.Publish(context.Background(), evt))

	// Assert
	for _, ch := range []<-chan interface{}{chA, chB} {
		select {
		case msg := <-ch:
			var got sharedEvents.IntegrationEvent
			require.NoError(t, json.Unmarshal(msg.([]byte), &got))
			assert.Equal(t, "task.created", got.Type)
			assert.Equal(t, "k", got.Key)
		case <-time.After(time.Second):
			t.Fatal("el suscriptor no recibió el evento")
		}
	}
}

func TestInMemoryEventBus_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	bus := NewInMemoryEventBus("task")
	ch := bus.Subscribe(1)

	assert.NoError(t, bus.Publish(context.Background(), "uno"))
	assert.NoError(t, bus.Publish(context.Background(), "dos"))

	assert.Len(t, ch, 1)
}

func TestInMemoryEventBus_Close(t *testing.T) {
	bus := NewInMemoryEventBus("task")
	ch := bus.Subscribe(1)

	bus.Close()
	bus.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.ErrorIs(t, bus.Publish(context.Background(), "x"), ErrBusClosed)
}

// mockWriter simula el *kafka.Writer.
type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func TestKafkaPublisher_RetriesAndUsesPartitionKey(t *testing.T) {
	// Arrange
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && string(msgs[0].Key) == "task-1"
	})).Return(nil).Once()

	publisher := NewKafkaPublisher(writer, zap.NewNop())
	publisher.delay = time.Millisecond
	evt := sharedEvents.IntegrationEvent{Type: "task.updated", Key: "task-1"}

	// Act
	err := publisher.Publish(context.Background(), evt)

	// Assert
	assert.NoError(t, err)
	writer.AssertNumberOfCalls(t, "WriteMessages", 2)
}

func TestKafkaPublisher_GivesUpAfterAttempts(t *testing.T) {
	writer := new(mockWriter)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	publisher := NewKafkaPublisher(writer, zap.NewNop())
	publisher.delay = time.Millisecond

	err := publisher.Publish(context.Background(), sharedEvents.IntegrationEvent{Type: "task.deleted"})

	assert.EqualError(t, err, "broker down")
	writer.AssertNumberOfCalls(t, "WriteMessages", 3)
}
