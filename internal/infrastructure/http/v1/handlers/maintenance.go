package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/infrastructure/storage/sqlite"
)

// MaintenanceHandler serves destructive store maintenance endpoints.
type MaintenanceHandler struct {
	*BaseHandler
	maintenance *sqlite.Maintenance
	activity    *activity.Service
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(base *BaseHandler, m *sqlite.Maintenance, act *activity.Service) *MaintenanceHandler {
	return &MaintenanceHandler{BaseHandler: base, maintenance: m, activity: act}
}

// Cleanup handles POST /maintenance/cleanup.
func (h *MaintenanceHandler) Cleanup(c *gin.Context) {
	var scope sqlite.CleanupScope
	if !h.BindJSON(c, &scope) {
		return
	}

	if err := h.maintenance.Cleanup(c.Request.Context(), scope); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionDelete, "database", 0, "cleanup")
	h.NoContent(c)
}
