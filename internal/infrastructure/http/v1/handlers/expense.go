package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/expense"
	"tillbook/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves the operating expense endpoints.
type ExpenseHandler struct {
	*BaseHandler
	service  *expense.Service
	activity *activity.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service, act *activity.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, service: service, activity: act}
}

// Create handles POST /expenses.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	id, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionCreate, "expense", id, "")
	h.Created(c, id)
}

// Update handles PUT /expenses/:id.
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionUpdate, "expense", id, "")
	h.NoContent(c)
}

// Delete handles DELETE /expenses/:id.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionDelete, "expense", id, "")
	h.NoContent(c)
}

// Get handles GET /expenses/:id.
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// List handles GET /expenses?startDate=&endDate=.
func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.service.List(c.Request.Context(),
		c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, expenses)
}
