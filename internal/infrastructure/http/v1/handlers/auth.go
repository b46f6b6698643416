package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/domain/auth"
	"tillbook/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves authentication and user management endpoints.
type AuthHandler struct {
	*BaseHandler
	service  *auth.Service
	activity *activity.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service, act *activity.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service, activity: act}
}

// SetupRequired handles GET /auth/setup. Public.
func (h *AuthHandler) SetupRequired(c *gin.Context) {
	required, err := h.service.SetupRequired(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"setupRequired": required})
}

// Setup handles POST /auth/setup, creating the first account. Public until
// a user exists.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req dto.SetupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.SetupAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, session)
}

// Login handles POST /auth/login. Public.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.activity.Record(c.Request.Context(), activity.Entry{
		UserID:     &session.User.ID,
		Username:   session.User.Username,
		Action:     activity.ActionLogin,
		EntityType: "user",
	})
	h.OK(c, session)
}

// ListUsers handles GET /users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, users)
}

// CreateUser handles POST /users.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionCreate, "user", user.ID, user.Username)
	h.Created(c, user.ID)
}

// DeleteUser handles DELETE /users/:id.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionDelete, "user", id, "")
	h.NoContent(c)
}

// ChangePassword handles POST /users/password for the authenticated user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), h.UserID(c),
		req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateRole handles PUT /users/:id/role.
func (h *AuthHandler) UpdateRole(c *gin.Context) {
	id, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateRole(c.Request.Context(), id, req.Role); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionUpdate, "user", id, "role "+req.Role)
	h.NoContent(c)
}
