package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	sharedDomain "github.com/insightflow/tasks-service/shared/domain"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTask       = errors.New("invalid task")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidDocumentID = errors.New("invalid document id")
)

// --- Repositorio de Tasks ---
// Las lecturas y escrituras solo ven tareas activas; ErrTaskNotFound cubre
// tanto los ids inexistentes como las tareas borradas.
type TaskRepository interface {
	Create(ctx context.Context, in NewTaskInput) (*Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	ListByCriteria(ctx context.Context, criteria sharedDomain.Criteria) ([]*Task, error)
	Update(ctx context.Context, id uuid.UUID, patch TaskPatch) (*Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status TaskStatus) (*Task, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	DocumentExists(ctx context.Context, documentID string) bool
}

// ---------- Helpers comunes (cache keys, etc.) ----------

func TaskCacheKeyByID(id uuid.UUID) string {
	return fmt.Sprintf("task:id:%s", id.String())
}
