// Package handlers implements the v1 API endpoints.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tillbook/internal/core/apperror"
	"tillbook/internal/domain/activity"
	"tillbook/internal/infrastructure/http/v1/dto"
	"tillbook/internal/infrastructure/http/v1/middleware"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates the JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers the error on the Gin context and aborts the request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseID parses the :id path parameter.
func (h *BaseHandler) ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, apperror.NewValidation("invalid id").WithDetail("id", c.Param("id")))
		return 0, false
	}
	return id, true
}

// ParseIntQuery parses an integer query parameter with a default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int64) int64 {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// UserID returns the authenticated user id, zero when unauthenticated.
func (h *BaseHandler) UserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.CtxUserID)
}

// Username returns the authenticated username.
func (h *BaseHandler) Username(c *gin.Context) string {
	return c.GetString(middleware.CtxUsername)
}

// Record appends an audit entry attributed to the authenticated user.
func (h *BaseHandler) Record(c *gin.Context, act *activity.Service, action, entityType string, id int64, description string) {
	userID := h.UserID(c)
	entry := activity.Entry{
		UserID:     &userID,
		Username:   h.Username(c),
		Action:     action,
		EntityType: entityType,
	}
	if id != 0 {
		entry.EntityID = &id
	}
	if description != "" {
		entry.Description = &description
	}
	act.Record(c.Request.Context(), entry)
}

// Created sends a 201 response with the new id.
func (h *BaseHandler) Created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, dto.IDResponse{ID: id})
}

// OK sends a 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// NoContent sends a 204 response.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
