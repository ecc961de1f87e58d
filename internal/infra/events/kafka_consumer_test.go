package events

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fetchResult struct {
	msg kafka.Message
	err error
}

// fakeReader entrega lo que llegue por el canal; al cerrarse se comporta como un reader cerrado.
type fakeReader struct {
	results   chan fetchResult
	commitErr error

	mu        sync.Mutex
	committed []int64
}

func newFakeReader() *fakeReader {
	return &fakeReader{results: make(chan fetchResult, 10)}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case res, ok := <-r.results:
		if !ok {
			return kafka.Message{}, io.EOF
		}
		return res.msg, res.err
	}
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return r.commitErr
}

func (r *fakeReader) Committed() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

type recordingHandler struct {
	mu   sync.Mutex
	keys []string
}

func (h *recordingHandler) HandleMessage(ctx context.Context, key string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys = append(h.keys, key+"="+string(payload))
}

func (h *recordingHandler) Keys() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.keys...)
}

func TestConsumerAdapter_HandlesThenCommits(t *testing.T) {
	// Arrange
	reader := newFakeReader()
	handler := &recordingHandler{}
	adapter := NewConsumerAdapter(reader, "task", handler, zap.NewNop())

	reader.results <- fetchResult{msg: kafka.Message{Key: []byte("a"), Value: []byte("1"), Offset: 7}}
	reader.results <- fetchResult{msg: kafka.Message{Key: []byte("b"), Value: []byte("2"), Offset: 8}}
	close(reader.results)

	// Act
	done := adapter.Start(context.Background())

	// Assert
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop after the reader was closed")
	}
	assert.Equal(t, []string{"a=1", "b=2"}, handler.Keys())
	assert.Equal(t, []int64{7, 8}, reader.Committed())
}

func TestConsumerAdapter_ReadErrorDoesNotStopLoop(t *testing.T) {
	reader := newFakeReader()
	handler := &recordingHandler{}
	adapter := NewConsumerAdapter(reader, "task", handler, zap.NewNop())
	adapter.errBackoff = time.Millisecond

	reader.results <- fetchResult{err: errors.New("broker unavailable")}
	reader.results <- fetchResult{msg: kafka.Message{Key: []byte("k"), Value: []byte("v"), Offset: 1}}
	close(reader.results)

	<-adapter.Start(context.Background())

	assert.Equal(t, []string{"k=v"}, handler.Keys())
	assert.Equal(t, []int64{1}, reader.Committed())
}

func TestConsumerAdapter_CommitFailureKeepsConsuming(t *testing.T) {
	reader := newFakeReader()
	reader.commitErr = errors.New("rebalance in progress")
	handler := &recordingHandler{}
	adapter := NewConsumerAdapter(reader, "task", handler, zap.NewNop())

	reader.results <- fetchResult{msg: kafka.Message{Key: []byte("x"), Value: []byte("1"), Offset: 3}}
	reader.results <- fetchResult{msg: kafka.Message{Key: []byte("y"), Value: []byte("2"), Offset: 4}}
	close(reader.results)

	<-adapter.Start(context.Background())

	assert.Equal(t, []string{"x=1", "y=2"}, handler.Keys())
}

func TestConsumerAdapter_StopsOnContextCancel(t *testing.T) {
	reader := newFakeReader()
	adapter := NewConsumerAdapter(reader, "task", &recordingHandler{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := adapter.Start(ctx)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "consumer did not stop after cancel")
	}
}
