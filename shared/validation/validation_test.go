package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(kv ...interface{}) map[string]interface{} {
	m := make(map[string]interface{})
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}

func TestUUIDParam(t *testing.T) {
	rule := UUIDParam("id")

	assert.NoError(t, rule(Input{Params: map[string]string{"id": uuid.NewString()}}))

	err := rule(Input{Params: map[string]string{"id": "123"}})
	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Parameter id must be a valid UUID v4", vErr.Message)

	assert.Error(t, rule(Input{}), "un parámetro ausente también falla")
}

func TestRequiredFields_ReportsAllMissing(t *testing.T) {
	rule := RequiredFields("document_id", "title")

	err := rule(Input{Body: body("title", "")})

	require.Error(t, err)
	assert.Equal(t, "Missing required fields: document_id, title", err.Error())
	assert.NoError(t, rule(Input{Body: body("document_id", "x", "title", "y")}))
}

func TestBodyNotEmpty(t *testing.T) {
	assert.Error(t, BodyNotEmpty()(Input{Body: body()}))
	assert.Error(t, BodyNotEmpty()(Input{}))
	assert.NoError(t, BodyNotEmpty()(Input{Body: body("status", nil)}))
}

func TestDueDate(t *testing.T) {
	rule := DueDate()

	assert.NoError(t, rule(Input{Body: body()}), "ausente")
	assert.NoError(t, rule(Input{Body: body("due_date", nil)}), "null")
	assert.NoError(t, rule(Input{Body: body("due_date", "")}), "vacío")
	assert.NoError(t, rule(Input{Body: body("due_date", "2024-02-29")}))

	assert.EqualError(t, rule(Input{Body: body("due_date", "15/12/2024")}), "due_date must use the YYYY-MM-DD format")
	assert.EqualError(t, rule(Input{Body: body("due_date", float64(20241215))}), "due_date must use the YYYY-MM-DD format")
	assert.EqualError(t, rule(Input{Body: body("due_date", "2023-02-29")}), "due_date is not a valid date")
	assert.EqualError(t, rule(Input{Body: body("due_date", "2024-13-01")}), "due_date is not a valid date")
}

func TestChain_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	step := func(name string, fail bool) Rule {
		return func(Input) error {
			calls = append(calls, name)
			if fail {
				return &Error{Message: name}
			}
			return nil
		}
	}

	err := Chain(step("a", false), step("b", true), step("c", false))(Input{})

	assert.EqualError(t, err, "b")
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestIsFalsy(t *testing.T) {
	assert.True(t, IsFalsy(nil))
	assert.True(t, IsFalsy(""))
	assert.True(t, IsFalsy(false))
	assert.True(t, IsFalsy(float64(0)))
	assert.False(t, IsFalsy("x"))
	assert.False(t, IsFalsy(true))
	assert.False(t, IsFalsy(map[string]interface{}{}))
}
