package domain

import "github.com/google/uuid"

// Nullable distingue "campo ausente" (Set=false) de "campo a null" (Set=true, Value=nil).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NewTaskInput son los datos de creación; los opcionales vacíos toman su valor por defecto.
type NewTaskInput struct {
	DocumentID  uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	AssignedTo  *uuid.UUID
	DueDate     *string
}

// TaskPatch representa una actualización parcial. Los campos nil no se modifican.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	AssignedTo  Nullable[uuid.UUID]
	DueDate     Nullable[string]
}

// IsEmpty indica si el patch no cambia ningún campo.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && !p.AssignedTo.Set && !p.DueDate.Set
}
