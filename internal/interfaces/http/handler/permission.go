package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/finapp/backend/internal/application/identity"
)

// PermissionHandler manages role permission grants
type PermissionHandler struct {
	BaseHandler
	permissionService *identityapp.PermissionService
	perm              PermissionFunc
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(permissionService *identityapp.PermissionService, perm PermissionFunc) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService, perm: perm}
}

// RegisterRoutes registers permission management routes on an
// authenticated group
func (h *PermissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	permissions := rg.Group("/permissions", h.perm("permissions", "manage"))
	permissions.POST("", h.Grant)
	permissions.DELETE("", h.Revoke)
	permissions.GET("/roles/:id", h.ListByRole)
}

// Grant issues a permission to a role
func (h *PermissionHandler) Grant(c *gin.Context) {
	var req identityapp.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	permission, err := h.permissionService.Grant(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, permission)
}

// Revoke removes a permission grant from a role
func (h *PermissionHandler) Revoke(c *gin.Context) {
	var req identityapp.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.permissionService.Revoke(c.Request.Context(), req.RoleID, req.Resource, req.Action); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListByRole returns all grants held by a role
func (h *PermissionHandler) ListByRole(c *gin.Context) {
	roleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	permissions, err := h.permissionService.ListByRole(c.Request.Context(), roleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, permissions)
}
