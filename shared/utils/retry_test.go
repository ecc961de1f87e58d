package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_StopsOnSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("fallo temporal")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_NoWaitAfterLastFailure(t *testing.T) {
	// Arrange
	boom := errors.New("boom")
	calls := 0
	start := time.Now()

	// Act
	err := Retry(context.Background(), 1, time.Second, func() error {
		calls++
		return boom
	})

	// Assert
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRetry_ReturnsLastErrorAfterAllAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, 10*time.Millisecond, func() error {
		calls++
		return errors.New("intento fallido")
	})

	assert.EqualError(t, err, "intento fallido")
	assert.Equal(t, 3, calls)
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Retry(context.Background(), 0, time.Millisecond, func() error {
		calls++
		return errors.New("x")
	})

	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Retry(ctx, 5, time.Second, func() error {
		calls++
		cancel()
		return errors.New("x")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
