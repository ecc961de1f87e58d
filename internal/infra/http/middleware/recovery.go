package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery convierte cualquier panic en un 500 con el formato de la API.
// El detalle del fallo solo se incluye si exposeDetail es true (fuera de producción).
func Recovery(log *zap.Logger, exposeDetail bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered interface{}) {
		log.Error("Unhandled panic",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)

		body := gin.H{
			"success": false,
			"message": "Internal server error",
			"data":    nil,
		}
		if exposeDetail {
			body["error"] = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
