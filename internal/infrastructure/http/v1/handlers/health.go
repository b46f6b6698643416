package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tillbook/internal/infrastructure/storage/sqlite"
)

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	db *sqlite.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sqlite.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /health/ready, pinging the store.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.db.SQL.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
