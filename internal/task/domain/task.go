package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	sharedBus "github.com/insightflow/tasks-service/shared/platform/bus"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pendiente"
	TaskInProgress TaskStatus = "En Progreso"
	TaskCompleted  TaskStatus = "Completado"
)

// ValidStatuses conserva el orden en que se muestran en los mensajes de error.
var ValidStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted}

// IsValid indica si el estado pertenece al enum.
func (s TaskStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lifecycle modela el borrado lógico: active -> deleted, sin vuelta atrás.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleDeleted Lifecycle = "deleted"
)

type Task struct {
	ID          uuid.UUID  `json:"id"`
	DocumentID  uuid.UUID  `json:"document_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	DueDate     *string    `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Lifecycle   Lifecycle  `json:"-"`
}

func (t *Task) PartitionKey() string {
	return t.ID.String()
}

// IsActive es la única consulta del estado de ciclo de vida que usan los listados.
func (t *Task) IsActive() bool {
	return t.Lifecycle == LifecycleActive
}

// --- Métodos de dominio ---

// Touch avanza UpdatedAt; si el reloj no avanzó, se suma un nanosegundo.
func (t *Task) Touch(now time.Time) {
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
}

func (t *Task) ChangeStatus(status TaskStatus, now time.Time) {
	t.Status = status
	t.Touch(now)
}

// Delete pasa la tarea a deleted. Devuelve false si ya lo estaba.
func (t *Task) Delete(now time.Time) bool {
	if !t.IsActive() {
		return false
	}
	t.Lifecycle = LifecycleDeleted
	t.Touch(now)
	return true
}

// Apply mezcla los campos presentes del patch. ID, DocumentID y CreatedAt no se tocan.
func (t *Task) Apply(p TaskPatch, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.AssignedTo.Set {
		t.AssignedTo = p.AssignedTo.Value
	}
	if p.DueDate.Set {
		t.DueDate = p.DueDate.Value
	}
	t.Touch(now)
}

// Clone devuelve una copia profunda para que el store nunca exponga sus punteros.
func (t *Task) Clone() *Task {
	c := *t
	if t.AssignedTo != nil {
		id := *t.AssignedTo
		c.AssignedTo = &id
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// taskJSON expone el ciclo de vida como is_active en el formato de la API.
type taskJSON struct {
	taskAlias
	IsActive bool `json:"is_active"`
}

type taskAlias Task

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{taskAlias: taskAlias(t), IsActive: t.Lifecycle == LifecycleActive})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var aux taskJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Task(aux.taskAlias)
	if aux.IsActive {
		t.Lifecycle = LifecycleActive
	} else {
		t.Lifecycle = LifecycleDeleted
	}
	return nil
}

// Verificación estática para asegurar que Task implementa la interfaz
var _ sharedBus.Keyer = (*Task)(nil)
