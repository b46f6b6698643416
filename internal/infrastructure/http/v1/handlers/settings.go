package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/settings"
)

// SettingsHandler serves the application settings endpoints.
type SettingsHandler struct {
	*BaseHandler
	service  *settings.Service
	activity *activity.Service
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(base *BaseHandler, service *settings.Service, act *activity.Service) *SettingsHandler {
	return &SettingsHandler{BaseHandler: base, service: service, activity: act}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cfg)
}

// Update handles PUT /settings with the full typed struct.
func (h *SettingsHandler) Update(c *gin.Context) {
	var cfg settings.Settings
	if !h.BindJSON(c, &cfg) {
		return
	}

	if err := h.service.Update(c.Request.Context(), cfg); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionUpdate, "settings", 0, "")
	h.NoContent(c)
}
