package memory

import (
	"time"

	"github.com/google/uuid"

	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
)

// Usuarios y documentos de ejemplo: simulan los servicios de Users y Documents,
// que este servicio nunca consulta.
type SampleUser struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Username string
}

type SampleDocument struct {
	ID          uuid.UUID
	Title       string
	WorkspaceID uuid.UUID
}

// Fixtures agrupa los datos con los que arranca el store.
type Fixtures struct {
	Users     []SampleUser
	Documents []SampleDocument
	Tasks     []*taskDomain.Task
}

// NewFixtures genera ids nuevos en cada arranque, como un seeder.
func NewFixtures(now time.Time) Fixtures {
	users := []SampleUser{
		{ID: uuid.New(), Name: "Juan Pérez", Email: "juan.perez@example.com", Username: "juanp"},
		{ID: uuid.New(), Name: "María González", Email: "maria.gonzalez@example.com", Username: "mariag"},
		{ID: uuid.New(), Name: "Carlos Rodríguez", Email: "carlos.rodriguez@example.com", Username: "carlosr"},
	}
	docs := []SampleDocument{
		{ID: uuid.New(), Title: "Proyecto Q4 2024", WorkspaceID: uuid.New()},
		{ID: uuid.New(), Title: "Desarrollo Frontend", WorkspaceID: uuid.New()},
		{ID: uuid.New(), Title: "Planificación Sprint", WorkspaceID: uuid.New()},
	}

	task := func(doc SampleDocument, user SampleUser, title, desc string, status taskDomain.TaskStatus, due string) *taskDomain.Task {
		assignee := user.ID
		return &taskDomain.Task{
			ID:          uuid.New(),
			DocumentID:  doc.ID,
			Title:       title,
			Description: desc,
			Status:      status,
			AssignedTo:  &assignee,
			DueDate:     &due,
			CreatedAt:   now,
			UpdatedAt:   now,
			Lifecycle:   taskDomain.LifecycleActive,
		}
	}

	return Fixtures{
		Users:     users,
		Documents: docs,
		Tasks: []*taskDomain.Task{
			task(docs[0], users[0], "Diseñar arquitectura de microservicios",
				"Crear diagrama de la arquitectura completa del sistema", taskDomain.TaskInProgress, "2024-12-15"),
			task(docs[0], users[1], "Implementar CI/CD con GitHub Actions",
				"Configurar pipeline de integración y despliegue continuo", taskDomain.TaskPending, "2024-12-20"),
			task(docs[1], users[2], "Crear componentes React",
				"Desarrollar componentes reutilizables para el frontend", taskDomain.TaskCompleted, "2024-12-10"),
			task(docs[1], users[0], "Integrar APIs de backend",
				"Conectar frontend con los microservicios", taskDomain.TaskInProgress, "2024-12-18"),
		},
	}
}
