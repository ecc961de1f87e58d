package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
	sharedDomain "github.com/insightflow/tasks-service/shared/domain"
	sharedUtils "github.com/insightflow/tasks-service/shared/utils"
)

// TaskStore es el adaptador outbound en memoria. Mantiene el orden de inserción
// y resuelve todas las búsquedas con un recorrido lineal.
type TaskStore struct {
	mu    sync.RWMutex // protege cada secuencia lectura-modificación-escritura
	tasks []*taskDomain.Task
	now   func() time.Time
}

// Verificación estática
var _ taskDomain.TaskRepository = (*TaskStore)(nil)

// NewTaskStore crea el store con las tareas iniciales (puede ir vacío).
func NewTaskStore(seed ...*taskDomain.Task) *TaskStore {
	s := &TaskStore{
		tasks: make([]*taskDomain.Task, 0, len(seed)),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, t := range seed {
		s.tasks = append(s.tasks, t.Clone())
	}
	return s
}

// ListAll devuelve todas las tareas activas.
func (s *TaskStore) ListAll(ctx context.Context) ([]*taskDomain.Task, error) {
	return s.ListByCriteria(ctx, nil)
}

// ListByDocument devuelve las tareas activas de un documento en orden de inserción.
func (s *TaskStore) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*taskDomain.Task, error) {
	return s.ListByCriteria(ctx, taskDomain.DocumentIDCriteria{ID: documentID})
}

func (s *TaskStore) ListByCriteria(ctx context.Context, criteria sharedDomain.Criteria) ([]*taskDomain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var conds []sharedDomain.Criterion
	if criteria != nil {
		conds = criteria.ToConditions()
	}

	list := make([]*taskDomain.Task, 0)
	for _, t := range s.tasks {
		if t.IsActive() && taskDomain.Matches(t, conds) {
			list = append(list, t.Clone())
		}
	}
	return list, nil
}

func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.findActive(id)
	if t == nil {
		return nil, taskDomain.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (s *TaskStore) Create(ctx context.Context, in taskDomain.NewTaskInput) (*taskDomain.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", taskDomain.ErrInvalidTask)
	}
	status := in.Status
	if status == "" {
		status = taskDomain.TaskPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", taskDomain.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	t := &taskDomain.Task{
		ID:          uuid.New(),
		DocumentID:  in.DocumentID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Lifecycle:   taskDomain.LifecycleActive,
	}
	s.tasks = append(s.tasks, t)
	return t.Clone(), nil
}

func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, patch taskDomain.TaskPatch) (*taskDomain.Task, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", taskDomain.ErrInvalidTask)
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", taskDomain.ErrInvalidStatus, *patch.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findActive(id)
	if t == nil {
		return nil, taskDomain.ErrTaskNotFound
	}
	t.Apply(patch, s.now())
	return t.Clone(), nil
}

// UpdateStatus es un Update restringido al campo status.
func (s *TaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status taskDomain.TaskStatus) (*taskDomain.Task, error) {
	return s.Update(ctx, id, taskDomain.TaskPatch{Status: &status})
}

func (s *TaskStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.findActive(id)
	if t == nil {
		return taskDomain.ErrTaskNotFound
	}
	t.Delete(s.now())
	return nil
}

// DocumentExists solo valida la forma del id: no hay registro de documentos contra el que cruzar.
func (s *TaskStore) DocumentExists(ctx context.Context, documentID string) bool {
	return sharedUtils.IsValidUUIDv4(documentID)
}

// Snapshot devuelve todos los registros, incluidos los borrados.
func (s *TaskStore) Snapshot() []*taskDomain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*taskDomain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// findActive es un helper interno no concurrente: el llamador tiene el lock.
func (s *TaskStore) findActive(id uuid.UUID) *taskDomain.Task {
	for _, t := range s.tasks {
		if t.ID == id && t.IsActive() {
			return t
		}
	}
	return nil
}
