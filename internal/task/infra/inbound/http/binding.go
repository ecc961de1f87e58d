package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/insightflow/tasks-service/pkg/utils"
	"github.com/insightflow/tasks-service/shared/validation"
)

const payloadKey = "payload"

var errPayloadNotObject = errors.New("request body must be a JSON object")

// BindPayload decodifica el cuerpo como objeto JSON y lo deja en el contexto.
// Un cuerpo vacío equivale a {}.
func BindPayload() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := decodeObject(c.Request.Body)
		if err != nil {
			utils.AbortWithError(c, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		c.Set(payloadKey, body)
		c.Next()
	}
}

func decodeObject(r io.Reader) (map[string]interface{}, error) {
	if r == nil {
		return map[string]interface{}{}, nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}, nil
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	// "null" decodifica sin error a un mapa nil.
	if body == nil {
		return nil, errPayloadNotObject
	}
	return body, nil
}

// payload devuelve el cuerpo ya decodificado por BindPayload.
func payload(c *gin.Context) map[string]interface{} {
	if v, ok := c.Get(payloadKey); ok {
		if body, ok := v.(map[string]interface{}); ok {
			return body
		}
	}
	return map[string]interface{}{}
}

// Validate ejecuta la cadena de reglas; el handler no corre si alguna falla.
func Validate(rules ...validation.Rule) gin.HandlerFunc {
	chain := validation.Chain(rules...)
	return func(c *gin.Context) {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}

		if err := chain(validation.Input{Params: params, Body: payload(c)}); err != nil {
			utils.AbortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.Next()
	}
}
