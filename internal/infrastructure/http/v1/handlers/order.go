package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/documents/order"
	"tillbook/internal/infrastructure/http/v1/dto"
)

// OrderHandler serves the outbound ledger endpoints.
type OrderHandler struct {
	*BaseHandler
	service  *order.Service
	activity *activity.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *order.Service, act *activity.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, service: service, activity: act}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionCreate, "order", id, "")
	h.Created(c, id)
}

// Update handles PUT /orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.OrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionUpdate, "order", id, "")
	h.NoContent(c)
}

// Delete handles DELETE /orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionDelete, "order", id, "")
	h.NoContent(c)
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	doc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, doc)
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, docs)
}

// GetLines handles GET /orders/:id/lines.
func (h *OrderHandler) GetLines(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	details, err := h.service.GetLineDetails(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, details)
}
