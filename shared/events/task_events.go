package events

import (
	"github.com/google/uuid"
)

// TaskDeleted es el payload del borrado lógico; el resto de eventos llevan la tarea completa.
type TaskDeleted struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
}
