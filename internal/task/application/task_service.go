package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
	sharedDomain "github.com/insightflow/tasks-service/shared/domain"
	sharedEvents "github.com/insightflow/tasks-service/shared/events"
	sharedBus "github.com/insightflow/tasks-service/shared/platform/bus"
	sharedCache "github.com/insightflow/tasks-service/shared/platform/cache"
)

// TaskService define los casos de uso relacionados con Task.
// Incorpora repositorio, caché, publicador de eventos y logger.
// cache y publisher son opcionales (nil).
type TaskService struct {
	repo      taskDomain.TaskRepository
	cache     sharedCache.Cache
	publisher sharedBus.EventPublisher
	log       *zap.Logger
	cacheTTL  int
	locks     *idLocks
}

// NewTaskService es el constructor para el servicio de tareas.
func NewTaskService(repo taskDomain.TaskRepository, cache sharedCache.Cache, publisher sharedBus.EventPublisher, log *zap.Logger) *TaskService {
	return &TaskService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
		cacheTTL:  60,
		locks:     newIDLocks(),
	}
}

// WithCacheTTL cambia el TTL (en segundos) de las entradas de caché.
func (s *TaskService) WithCacheTTL(secs int) *TaskService {
	s.cacheTTL = secs
	return s
}

// DocumentExists delega en el repositorio; hoy solo comprueba la forma del id.
func (s *TaskService) DocumentExists(ctx context.Context, documentID string) bool {
	return s.repo.DocumentExists(ctx, documentID)
}

// CreateTask crea una nueva tarea y publica task.created.
func (s *TaskService) CreateTask(ctx context.Context, in taskDomain.NewTaskInput) (*taskDomain.Task, error) {
	if in.Status != "" && !in.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", taskDomain.ErrInvalidStatus, in.Status)
	}

	task, err := s.repo.Create(ctx, in)
	if err != nil {
		s.log.Error("Failed to create task", zap.Error(err))
		return nil, err
	}

	s.log.Info("Task created",
		zap.String("task_id", task.ID.String()),
		zap.String("document_id", task.DocumentID.String()),
	)
	s.publish(ctx, taskDomain.TaskCreated, task.ID, task)
	return task, nil
}

// ListTasks devuelve las tareas activas que cumplen el criterio (nil = todas).
func (s *TaskService) ListTasks(ctx context.Context, criteria sharedDomain.Criteria) ([]*taskDomain.Task, error) {
	return s.repo.ListByCriteria(ctx, criteria)
}

// ListTasksByDocument devuelve las tareas activas de un documento. Un documento
// sin tareas devuelve una lista vacía, no un error.
func (s *TaskService) ListTasksByDocument(ctx context.Context, documentID uuid.UUID, filters ...sharedDomain.Criteria) ([]*taskDomain.Task, error) {
	criterias := append([]sharedDomain.Criteria{taskDomain.DocumentIDCriteria{ID: documentID}}, filters...)
	return s.repo.ListByCriteria(ctx, sharedDomain.And(criterias...))
}

// GetTaskByID obtiene una tarea usando el patrón cache-aside.
func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	key := taskDomain.TaskCacheKeyByID(id)

	// 1. Intentar obtener de la caché
	if s.cache != nil {
		var t taskDomain.Task
		hit, err := s.cache.Get(ctx, key, &t)
		if err != nil {
			s.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit && t.IsActive() {
			return &t, nil
		}
	}

	// 2. Si es 'miss', ir al repositorio. El lock impide que una mutación
	// invalide entre la lectura y el relleno de la caché.
	unlock := s.locks.lock(id)
	defer unlock()

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, taskDomain.ErrTaskNotFound) {
			s.log.Debug("Task not found", zap.String("task_id", id.String()))
		} else {
			s.log.Error("Failed to fetch task", zap.String("task_id", id.String()), zap.Error(err))
		}
		return nil, err
	}

	// 3. Poblar la caché para la próxima vez
	sharedCache.Put(ctx, s.cache, key, task, s.cacheTTL, s.log)

	return task, nil
}

// UpdateTaskStatus cambia solo el estado. Un estado fuera del enum se rechaza
// antes de llegar al repositorio.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status taskDomain.TaskStatus) (*taskDomain.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", taskDomain.ErrInvalidStatus, status)
	}

	unlock := s.locks.lock(id)
	task, err := s.repo.UpdateStatus(ctx, id, status)
	if err == nil {
		sharedCache.Invalidate(ctx, s.cache, taskDomain.TaskCacheKeyByID(id), s.log)
	}
	unlock()
	if err != nil {
		return nil, err
	}

	s.publish(ctx, taskDomain.TaskStatusChanged, task.ID, task)
	return task, nil
}

// UpdateTask aplica una actualización parcial.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, patch taskDomain.TaskPatch) (*taskDomain.Task, error) {
	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", taskDomain.ErrInvalidStatus, *patch.Status)
	}

	unlock := s.locks.lock(id)
	task, err := s.repo.Update(ctx, id, patch)
	if err == nil {
		sharedCache.Invalidate(ctx, s.cache, taskDomain.TaskCacheKeyByID(id), s.log)
	}
	unlock()
	if err != nil {
		return nil, err
	}

	s.publish(ctx, taskDomain.TaskUpdated, task.ID, task)
	return task, nil
}

// DeleteTask hace el borrado lógico y limpia la caché.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	unlock := s.locks.lock(id)
	// Se lee antes para poder informar el documento en el evento.
	task, err := s.repo.GetByID(ctx, id)
	if err == nil {
		err = s.repo.SoftDelete(ctx, id)
	}
	if err == nil {
		sharedCache.Invalidate(ctx, s.cache, taskDomain.TaskCacheKeyByID(id), s.log)
	}
	unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, taskDomain.TaskDeleted, id, sharedEvents.TaskDeleted{ID: id, DocumentID: task.DocumentID})
	return nil
}

// publish notifica el cambio. Un fallo del bus nunca invalida la operación ya hecha.
func (s *TaskService) publish(ctx context.Context, eventType string, id uuid.UUID, payload interface{}) {
	if s.publisher == nil {
		return
	}

	evt, err := sharedEvents.NewIntegrationEvent(eventType, id.String(), payload)
	if err != nil {
		s.log.Warn("Failed to encode task event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.log.Warn("Failed to publish task event",
			zap.String("type", eventType),
			zap.String("task_id", id.String()),
			zap.Error(err),
		)
	}
}
