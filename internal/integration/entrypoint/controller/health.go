package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
	backend         string
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Backend   string `json:"backend"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool, backend string) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		backend:         backend,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	status := http.StatusServiceUnavailable
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
		status = http.StatusOK
	}

	c.JSON(status, HealthResponse{
		Status:    http.StatusText(status),
		Database:  dbStatus,
		Backend:   h.backend,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
