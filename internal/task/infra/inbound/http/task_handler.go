package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightflow/tasks-service/internal/task/application"
	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
	"github.com/insightflow/tasks-service/pkg/utils"
	sharedDomain "github.com/insightflow/tasks-service/shared/domain"
	sharedUtils "github.com/insightflow/tasks-service/shared/utils"
	"github.com/insightflow/tasks-service/shared/validation"
)

// TaskHandler encapsula los endpoints HTTP relacionados con Task.
type TaskHandler struct {
	service *application.TaskService
	log     *zap.Logger
}

// NewTaskHandler crea un nuevo TaskHandler.
func NewTaskHandler(service *application.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, log: log}
}

func statusMessage() string {
	names := make([]string, len(taskDomain.ValidStatuses))
	for i, s := range taskDomain.ValidStatuses {
		names[i] = string(s)
	}
	return "status must be one of: " + strings.Join(names, ", ")
}

// --- Handlers CRUD ---

// CreateTask endpoint POST /tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	in, err := newTaskInput(payload(c))
	if err != nil {
		h.fail(c, err, "Error creating task")
		return
	}

	if !h.service.DocumentExists(c.Request.Context(), in.DocumentID.String()) {
		utils.SendBadRequest(c, "document_id is not a valid UUID v4")
		return
	}

	task, err := h.service.CreateTask(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "Error creating task")
		return
	}

	utils.SendSuccess(c, http.StatusCreated, task, "Task created successfully")
}

// ListTasks endpoint GET /tasks con filtros opcionales por status y assigned_to
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filters, err := queryFilters(c)
	if err != nil {
		h.fail(c, err, "Error listing tasks")
		return
	}

	tasks, err := h.service.ListTasks(c.Request.Context(), sharedDomain.And(filters...))
	if err != nil {
		h.fail(c, err, "Error listing tasks")
		return
	}

	utils.SendSuccess(c, http.StatusOK, tasks, "Tasks retrieved successfully")
}

// ListTasksByDocument endpoint GET /documents/:documentId/tasks
func (h *TaskHandler) ListTasksByDocument(c *gin.Context) {
	raw := c.Param("documentId")
	if !h.service.DocumentExists(c.Request.Context(), raw) {
		utils.SendBadRequest(c, "documentId is not a valid UUID v4")
		return
	}

	filters, err := queryFilters(c)
	if err != nil {
		h.fail(c, err, "Error listing tasks")
		return
	}

	tasks, err := h.service.ListTasksByDocument(c.Request.Context(), uuid.MustParse(raw), filters...)
	if err != nil {
		h.fail(c, err, "Error listing tasks")
		return
	}

	utils.SendSuccess(c, http.StatusOK, tasks, "Tasks retrieved successfully")
}

// GetTask endpoint GET /tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.service.GetTaskByID(c.Request.Context(), taskID(c))
	if err != nil {
		h.fail(c, err, "Error fetching task")
		return
	}

	utils.SendSuccess(c, http.StatusOK, task, "Task retrieved successfully")
}

// UpdateTaskStatus endpoint PUT /tasks/:id/status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	v := payload(c)["status"]
	if validation.IsFalsy(v) {
		utils.SendBadRequest(c, "The status field is required")
		return
	}
	status, ok := v.(string)
	if !ok {
		utils.SendBadRequest(c, statusMessage())
		return
	}

	task, err := h.service.UpdateTaskStatus(c.Request.Context(), taskID(c), taskDomain.TaskStatus(status))
	if err != nil {
		h.fail(c, err, "Error updating task status")
		return
	}

	utils.SendSuccess(c, http.StatusOK, task, "Task status updated successfully")
}

// UpdateTask endpoint PATCH /tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	patch, err := taskPatch(payload(c))
	if err != nil {
		h.fail(c, err, "Error updating task")
		return
	}

	task, err := h.service.UpdateTask(c.Request.Context(), taskID(c), patch)
	if err != nil {
		h.fail(c, err, "Error updating task")
		return
	}

	utils.SendSuccess(c, http.StatusOK, task, "Task updated successfully")
}

// DeleteTask endpoint DELETE /tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := taskID(c)
	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Error deleting task")
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"id": id}, "Task deleted successfully")
}

// --- Helpers ---

// taskID lee :id. La ruta ya pasó por validation.UUIDParam("id").
func taskID(c *gin.Context) uuid.UUID {
	return uuid.MustParse(c.Param("id"))
}

func queryFilters(c *gin.Context) ([]sharedDomain.Criteria, error) {
	var filters []sharedDomain.Criteria

	if status := c.Query("status"); status != "" {
		s := taskDomain.TaskStatus(status)
		if !s.IsValid() {
			return nil, badRequest(statusMessage())
		}
		filters = append(filters, taskDomain.StatusCriteria{Status: s})
	}
	if assignee := c.Query("assigned_to"); assignee != "" {
		id, ok := sharedUtils.ParseUUIDv4(assignee)
		if !ok {
			return nil, badRequest("assigned_to must be a valid UUID v4")
		}
		filters = append(filters, taskDomain.AssigneeIDCriteria{ID: id})
	}
	return filters, nil
}

// fail traduce un error del dominio al sobre de respuesta.
// Solo los errores no reconocidos llegan al log; su detalle no sale en la respuesta.
func (h *TaskHandler) fail(c *gin.Context, err error, internalMsg string) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		utils.SendBadRequest(c, vErr.Message)
	case errors.Is(err, taskDomain.ErrTaskNotFound):
		utils.SendNotFound(c, "Task not found")
	case errors.Is(err, taskDomain.ErrInvalidStatus):
		utils.SendBadRequest(c, statusMessage())
	case errors.Is(err, taskDomain.ErrInvalidDocumentID):
		utils.SendBadRequest(c, "document_id is not a valid UUID v4")
	case errors.Is(err, taskDomain.ErrInvalidTask):
		utils.SendBadRequest(c, err.Error())
	default:
		h.log.Error(internalMsg,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.SendInternalServerError(c, internalMsg)
	}
}
