package http

import (
	"github.com/google/uuid"

	taskDomain "github.com/insightflow/tasks-service/internal/task/domain"
	sharedUtils "github.com/insightflow/tasks-service/shared/utils"
	"github.com/insightflow/tasks-service/shared/validation"
)

// Campos que un PATCH nunca puede modificar.
var immutableFields = []string{"id", "document_id", "created_at", "updated_at", "is_active"}

func badRequest(msg string) error {
	return &validation.Error{Message: msg}
}

// newTaskInput traduce el cuerpo de POST /tasks. Los opcionales falsy toman su valor por defecto.
func newTaskInput(body map[string]interface{}) (taskDomain.NewTaskInput, error) {
	var in taskDomain.NewTaskInput

	if validation.IsFalsy(body["document_id"]) || validation.IsFalsy(body["title"]) {
		return in, badRequest("document_id and title are required")
	}

	docID, _ := body["document_id"].(string)
	id, ok := sharedUtils.ParseUUIDv4(docID)
	if !ok {
		return in, badRequest("document_id is not a valid UUID v4")
	}
	in.DocumentID = id

	title, ok := body["title"].(string)
	if !ok {
		return in, badRequest("title must be a string")
	}
	in.Title = title

	if v := body["description"]; !validation.IsFalsy(v) {
		s, ok := v.(string)
		if !ok {
			return in, badRequest("description must be a string")
		}
		in.Description = s
	}

	if v := body["status"]; !validation.IsFalsy(v) {
		s, ok := v.(string)
		if !ok {
			return in, badRequest(statusMessage())
		}
		in.Status = taskDomain.TaskStatus(s)
	}

	if v := body["assigned_to"]; !validation.IsFalsy(v) {
		assignee, err := assigneeFrom(v)
		if err != nil {
			return in, err
		}
		in.AssignedTo = assignee
	}

	if v := body["due_date"]; !validation.IsFalsy(v) {
		s, ok := v.(string)
		if !ok {
			return in, badRequest("due_date must use the YYYY-MM-DD format")
		}
		in.DueDate = &s
	}

	return in, nil
}

// taskPatch traduce el cuerpo de PATCH /tasks/:id. Las claves desconocidas se ignoran.
func taskPatch(body map[string]interface{}) (taskDomain.TaskPatch, error) {
	var p taskDomain.TaskPatch

	fields := make(map[string]interface{}, len(body))
	for k, v := range body {
		fields[k] = v
	}
	for _, k := range immutableFields {
		delete(fields, k)
	}

	if v, ok := fields["title"]; ok {
		s, isStr := v.(string)
		if !isStr || s == "" {
			return p, badRequest("title must be a non-empty string")
		}
		p.Title = &s
	}

	if v, ok := fields["description"]; ok {
		var s string
		if v != nil {
			str, isStr := v.(string)
			if !isStr {
				return p, badRequest("description must be a string")
			}
			s = str
		}
		p.Description = &s
	}

	if v, ok := fields["status"]; ok {
		s, isStr := v.(string)
		if !isStr {
			return p, badRequest(statusMessage())
		}
		status := taskDomain.TaskStatus(s)
		p.Status = &status
	}

	if v, ok := fields["assigned_to"]; ok {
		p.AssignedTo.Set = true
		if !validation.IsFalsy(v) {
			assignee, err := assigneeFrom(v)
			if err != nil {
				return p, err
			}
			p.AssignedTo.Value = assignee
		}
	}

	if v, ok := fields["due_date"]; ok {
		p.DueDate.Set = true
		if !validation.IsFalsy(v) {
			s, isStr := v.(string)
			if !isStr {
				return p, badRequest("due_date must use the YYYY-MM-DD format")
			}
			p.DueDate.Value = &s
		}
	}

	return p, nil
}

func assigneeFrom(v interface{}) (*uuid.UUID, error) {
	s, _ := v.(string)
	id, ok := sharedUtils.ParseUUIDv4(s)
	if !ok {
		return nil, badRequest("assigned_to must be a valid UUID v4")
	}
	return &id, nil
}
