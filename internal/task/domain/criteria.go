package domain

import (
	"github.com/google/uuid"
	// Importamos el "sistema" de Criterios genérico y le damos un alias
	shared "github.com/insightflow/tasks-service/shared/domain"
)

// --- Criterios Específicos para el Dominio Task ---

// DocumentIDCriteria busca las tareas de un documento.
type DocumentIDCriteria struct {
	ID uuid.UUID
}

// ToConditions implementa la interfaz shared.Criteria.
func (c DocumentIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{
		{Field: "document_id", Op: shared.OpEq, Value: c.ID},
	}
}

// -----------------------------------------------------------

// StatusCriteria busca tareas por su estado.
type StatusCriteria struct {
	Status TaskStatus
}

// ToConditions implementa la interfaz shared.Criteria.
func (c StatusCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{
		{Field: "status", Op: shared.OpEq, Value: c.Status},
	}
}

// -----------------------------------------------------------

// AssigneeIDCriteria busca tareas asignadas a un usuario específico.
type AssigneeIDCriteria struct {
	ID uuid.UUID
}

// ToConditions implementa la interfaz shared.Criteria.
func (c AssigneeIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{
		{Field: "assigned_to", Op: shared.OpEq, Value: c.ID},
	}
}

// Matches evalúa las condiciones contra una tarea en memoria.
// Todas las condiciones se combinan con AND; un campo desconocido no coincide.
func Matches(t *Task, conds []shared.Criterion) bool {
	for _, cond := range conds {
		if cond.Op != shared.OpEq {
			return false
		}
		var match bool
		switch cond.Field {
		case "document_id":
			id, ok := cond.Value.(uuid.UUID)
			match = ok && t.DocumentID == id
		case "status":
			status, ok := cond.Value.(TaskStatus)
			match = ok && t.Status == status
		case "assigned_to":
			id, ok := cond.Value.(uuid.UUID)
			match = ok && t.AssignedTo != nil && *t.AssignedTo == id
		}
		if !match {
			return false
		}
	}
	return true
}
