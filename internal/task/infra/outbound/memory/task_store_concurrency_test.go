package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
)

// Pensado para correr con -race: lecturas y escrituras simultáneas sobre el mismo store.
func TestTaskStore_ConcurrentAccess(t *testing.T) {
	// Arrange
	store := NewTaskStore()
	ctx := context.Background()
	doc := uuid.New()

	seeded := make([]uuid.UUID, 20)
	for i := range seeded {
		task, err := store.Create(ctx, newInput(doc, "semilla"))
		require.NoError(t, err)
		seeded[i] = task.ID
	}

	// Act
	var wg sync.WaitGroup
	const workers = 8
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i, id := range seeded {
				switch (w + i) % 5 {
				case 0:
					_, err := store.Create(ctx, newInput(doc, "nueva"))
					assert.NoError(t, err)
				case 1:
					title := "editada"
					_, _ = store.Update(ctx, id, taskDomain.TaskPatch{Title: &title})
				case 2:
					_, _ = store.UpdateStatus(ctx, id, taskDomain.TaskInProgress)
				case 3:
					if task, err := store.GetByID(ctx, id); err == nil {
						assert.True(t, task.IsActive())
					}
				case 4:
					list, err := store.ListByDocument(ctx, doc)
					assert.NoError(t, err)
					for _, task := range list {
						assert.True(t, task.IsActive())
					}
				}
			}
		}(w)
	}

	// Los borrados compiten con todo lo anterior.
	for _, id := range seeded[:10] {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			assert.NoError(t, store.SoftDelete(ctx, id))
		}(id)
	}
	wg.Wait()

	// Assert
	for _, id := range seeded[:10] {
		_, err := store.GetByID(ctx, id)
		assert.ErrorIs(t, err, taskDomain.ErrTaskNotFound)
	}
	for _, id := range seeded[10:] {
		_, err := store.GetByID(ctx, id)
		assert.NoError(t, err)
	}

	created := 0
	for w := 0; w < workers; w++ {
		for i := range seeded {
			if (w+i)%5 == 0 {
				created++
			}
		}
	}
	snapshot := store.Snapshot()
	assert.Len(t, snapshot, len(seeded)+created)

	active, err := store.ListByDocument(ctx, doc)
	require.NoError(t, err)
	assert.Len(t, active, len(snapshot)-10)
}
