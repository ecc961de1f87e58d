package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
)

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	// Arrange
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()
	task := &taskDomain.Task{
		ID:         uuid.New(),
		DocumentID: uuid.New(),
		Title:      "Tarea en caché",
		Status:     taskDomain.TaskPending,
		Lifecycle:  taskDomain.LifecycleActive,
	}
	key := taskDomain.TaskCacheKeyByID(task.ID)

	// Act
	require.NoError(t, c.Set(ctx, key, task, 0))
	var got taskDomain.Task
	hit, err := c.Get(ctx, key, &got)

	// Assert
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "Tarea en caché", got.Title)
	assert.True(t, got.IsActive(), "el ciclo de vida debe sobrevivir a la serialización")

	require.NoError(t, c.Delete(ctx, key))
	hit, err = c.Get(ctx, key, &got)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_ExpiredIsMiss(t *testing.T) {
	// Arrange
	c := NewInMemoryCache(time.Nanosecond, time.Hour)
	defer c.Stop()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", "v", 0))
	time.Sleep(time.Millisecond)

	// Act
	var got string
	hit, err := c.Get(ctx, "k", &got)

	// Assert
	assert.NoError(t, err)
	assert.False(t, hit)
}
