package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insightflow/tasks-service/shared/validation"
)

// route asocia método y ruta con su cadena de validación y su handler.
type route struct {
	method  string
	path    string
	name    string
	rules   []validation.Rule
	handler func(*TaskHandler) gin.HandlerFunc
}

var taskRoutes = []route{
	{
		method:  http.MethodPost,
		path:    "/tasks",
		name:    "createTask",
		rules:   []validation.Rule{validation.RequiredFields("document_id", "title"), validation.DueDate()},
		handler: func(h *TaskHandler) gin.HandlerFunc { return h.CreateTask },
	},
	{
		method:  http.MethodGet,
		path:    "/tasks",
		name:    "listTasks",
		handler: func(h *TaskHandler) gin.HandlerFunc { return h.ListTasks },
	},
	{
		method:  http.MethodGet,
		path:    "/documents/:documentId/tasks",
		name:    "getTasksByDocument",
		rules:   []validation.Rule{validation.UUIDParam("documentId")},
		handler: func(h *TaskHandler) gin.HandlerFunc { return h.ListTasksByDocument },
	},
	{
		method:  http.MethodGet,
		path:    "/tasks/:id",
		name:    "getTaskById",
		rules:   []validation.Rule{validation.UUIDParam("id")},
		handler: func(h *TaskHandler) gin.HandlerFunc { return h.GetTask },
	},
	{
		method:  http.MethodPut,
		path:    "/tasks/:id/status",
		name:    "updateTaskStatus",
		rules:   []validation.Rule{validation.UUIDParam("id"), validation.BodyNotEmpty()},
		handler: func(h *TaskHandler) gin.HandlerFunc { return h.UpdateTaskStatus },
	},
	{
		method:  http.MethodPatch,
		path:    "/tasks/:id",
		name:    "updateTask",
		rules:   []validation.Rule{validation.UUIDParam("id"), validation.BodyNotEmpty(), validation.DueDate()},
		handler: func(h *TaskHandler) gin.HandlerFunc { return h.UpdateTask },
	},
	{
		method:  http.MethodDelete,
		path:    "/tasks/:id",
		name:    "deleteTask",
		rules:   []validation.Rule{validation.UUIDParam("id")},
		handler: func(h *TaskHandler) gin.HandlerFunc { return h.DeleteTask },
	},
}

// RegisterTaskRoutes registra las rutas HTTP para el dominio de Tareas.
func RegisterTaskRoutes(r gin.IRoutes, handler *TaskHandler) {
	for _, rt := range taskRoutes {
		r.Handle(rt.method, rt.path, BindPayload(), Validate(rt.rules...), rt.handler(handler))
	}
}

// Endpoints devuelve el mapa nombre -> "MÉTODO ruta" que se muestra en el banner.
func Endpoints() map[string]string {
	out := make(map[string]string, len(taskRoutes))
	for _, rt := range taskRoutes {
		out[rt.name] = rt.method + " " + rt.path
	}
	return out
}
