package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/finapp/backend/internal/application/partner"
)

// ClientHandler handles client-related API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
	perm          PermissionFunc
}

// PermissionFunc builds the permission middleware for a route
type PermissionFunc func(resource, action string) gin.HandlerFunc

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService, perm PermissionFunc) *ClientHandler {
	return &ClientHandler{clientService: clientService, perm: perm}
}

// RegisterRoutes registers client routes on an authenticated group
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.POST("", h.perm("clients", "create"), h.Create)
	clients.GET("", h.perm("clients", "read"), h.List)
	clients.GET("/search", h.perm("clients", "read"), h.Search)
	clients.GET("/:id", h.perm("clients", "read"), h.Get)
	clients.PUT("/:id", h.perm("clients", "update"), h.Update)
	clients.DELETE("/:id", h.perm("clients", "delete"), h.Delete)
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// Get returns a client by ID
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// List returns clients, optionally filtered by industry
func (h *ClientHandler) List(c *gin.Context) {
	if industry := c.Query("industry"); industry != "" {
		clients, err := h.clientService.ListByIndustry(c.Request.Context(), industry)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, clients)
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}

// Search finds clients by name or industry fragment
func (h *ClientHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		h.BadRequest(c, "Query parameter q is required")
		return
	}

	clients, err := h.clientService.Search(c.Request.Context(), term)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}

// Update updates a client
func (h *ClientHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// Delete removes a client and its associated users
func (h *ClientHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
