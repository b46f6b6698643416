package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/documents/purchase"
	"tillbook/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves the inbound ledger endpoints.
type PurchaseHandler struct {
	*BaseHandler
	service  *purchase.Service
	activity *activity.Service
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service, act *activity.Service) *PurchaseHandler {
	return &PurchaseHandler{BaseHandler: base, service: service, activity: act}
}

// Create handles POST /purchases.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.PurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionCreate, "purchase", id, "")
	h.Created(c, id)
}

// Update handles PUT /purchases/:id.
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.PurchaseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionUpdate, "purchase", id, "")
	h.NoContent(c)
}

// Delete handles DELETE /purchases/:id.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionDelete, "purchase", id, "")
	h.NoContent(c)
}

// Get handles GET /purchases/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
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

// List handles GET /purchases.
func (h *PurchaseHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, docs)
}

// GetLines handles GET /purchases/:id/lines, returning lines with product
// names for detail views.
func (h *PurchaseHandler) GetLines(c *gin.Context) {
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
