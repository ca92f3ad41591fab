package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/churn-insight/api-server/internal/database"
)

// HealthHandler answers liveness and health probes
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler; db may be nil
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root returns the API liveness banner
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Churn Insight API Running",
	})
}

// Health reports service and store health
func (h *HealthHandler) Health(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
	}

	if h.db == nil {
		response["database"] = "disabled"
		c.JSON(http.StatusOK, response)
		return
	}

	if err := h.db.HealthCheck(); err != nil {
		response["status"] = "degraded"
		response["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response["database"] = "ok"
	c.JSON(http.StatusOK, response)
}
