package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler sirve las rutas que no pertenecen a ningún dominio.
type SystemHandler struct {
	name      string
	version   string
	endpoints map[string]string
}

func NewSystemHandler(name, version string, endpoints map[string]string) *SystemHandler {
	return &SystemHandler{name: name, version: version, endpoints: endpoints}
}

// Banner endpoint GET /
func (h *SystemHandler) Banner(c *gin.Context) {
	endpoints := map[string]string{"health": "GET /health"}
	for k, v := range h.endpoints {
		endpoints[k] = v
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   h.name + " - API running",
		"version":   h.version,
		"endpoints": endpoints,
	})
}

// Health endpoint GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Service is healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// NotFound responde a cualquier ruta no registrada.
func (h *SystemHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": "Route not found",
		"path":    c.Request.URL.Path,
	})
}
