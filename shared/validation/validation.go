// Package validation implementa la cadena de validación previa a los handlers:
// reglas ordenadas que se detienen en el primer fallo. No depende del framework
// HTTP; el adaptador de gin vive en la capa inbound.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	sharedUtils "github.com/insightflow/tasks-service/shared/utils"
)

// Input es la vista de la petición que ven las reglas.
type Input struct {
	Params map[string]string
	Body   map[string]interface{}
}

// Error es un fallo de validación (400).
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Rule devuelve nil si la petición puede continuar.
type Rule func(in Input) error

// Chain compone reglas en orden; la primera que falla corta la cadena.
func Chain(rules ...Rule) Rule {
	return func(in Input) error {
		for _, rule := range rules {
			if err := rule(in); err != nil {
				return err
			}
		}
		return nil
	}
}

// UUIDParam exige que el parámetro de ruta tenga forma de UUID v4.
func UUIDParam(name string) Rule {
	return func(in Input) error {
		if !sharedUtils.IsValidUUIDv4(in.Params[name]) {
			return errorf("Parameter %s must be a valid UUID v4", name)
		}
		return nil
	}
}

// RequiredFields falla si algún campo falta o es falsy, listando todos los que faltan.
func RequiredFields(fields ...string) Rule {
	return func(in Input) error {
		var missing []string
		for _, f := range fields {
			if IsFalsy(in.Body[f]) {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return errorf("Missing required fields: %s", strings.Join(missing, ", "))
		}
		return nil
	}
}

// BodyNotEmpty falla si el cuerpo no tiene ninguna clave.
func BodyNotEmpty() Rule {
	return func(in Input) error {
		if len(in.Body) == 0 {
			return errorf("Request body cannot be empty")
		}
		return nil
	}
}

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DateLayout es el formato de due_date.
const DateLayout = "2006-01-02"

// DueDate valida due_date solo si viene con un valor no vacío.
func DueDate() Rule {
	return func(in Input) error {
		v := in.Body["due_date"]
		if IsFalsy(v) {
			return nil
		}
		s, ok := v.(string)
		if !ok || !dateShape.MatchString(s) {
			return errorf("due_date must use the YYYY-MM-DD format")
		}
		if _, err := time.Parse(DateLayout, s); err != nil {
			return errorf("due_date is not a valid date")
		}
		return nil
	}
}

// IsFalsy trata como ausentes null, "", false y 0, igual que los clientes JSON del servicio.
func IsFalsy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	default:
		return false
	}
}
