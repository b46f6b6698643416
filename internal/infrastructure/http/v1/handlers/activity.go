package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
)

// ActivityHandler serves the audit trail endpoint.
type ActivityHandler struct {
	*BaseHandler
	service *activity.Service
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(base *BaseHandler, service *activity.Service) *ActivityHandler {
	return &ActivityHandler{BaseHandler: base, service: service}
}

// List handles GET /activity?limit=&offset=.
func (h *ActivityHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	page, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, page)
}
