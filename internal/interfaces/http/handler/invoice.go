package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/finapp/backend/internal/application/billing"
)

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
	perm           PermissionFunc
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService, perm PermissionFunc) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, perm: perm}
}

// RegisterRoutes registers invoice routes on an authenticated group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.POST("", h.perm("invoices", "create"), h.Create)
	invoices.GET("", h.perm("invoices", "read"), h.List)
	invoices.GET("/search", h.perm("invoices", "read"), h.Search)
	invoices.GET("/overdue", h.perm("invoices", "read"), h.Overdue)
	invoices.GET("/:id", h.perm("invoices", "read"), h.Get)
	invoices.PUT("/:id", h.perm("invoices", "update"), h.Update)
	invoices.POST("/:id/payments", h.perm("invoices", "update"), h.RecordPayment)
	invoices.DELETE("/:id", h.perm("invoices", "delete"), h.Delete)
}

// Create creates a new invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// Get returns an invoice by ID
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// List returns invoices, optionally scoped to a client
func (h *InvoiceHandler) List(c *gin.Context) {
	if clientParam := c.Query("client_id"); clientParam != "" {
		clientID, err := uuid.Parse(clientParam)
		if err != nil {
			h.BadRequest(c, "Invalid client ID")
			return
		}
		invoices, err := h.invoiceService.ListByClient(c.Request.Context(), clientID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, invoices)
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Search finds invoices by criteria
func (h *InvoiceHandler) Search(c *gin.Context) {
	var req billingapp.SearchInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, err := h.invoiceService.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Overdue returns unpaid invoices past their due date
func (h *InvoiceHandler) Overdue(c *gin.Context) {
	var clientID *uuid.UUID
	if clientParam := c.Query("client_id"); clientParam != "" {
		id, err := uuid.Parse(clientParam)
		if err != nil {
			h.BadRequest(c, "Invalid client ID")
			return
		}
		clientID = &id
	}

	invoices, err := h.invoiceService.Overdue(c.Request.Context(), clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// Update updates an invoice's dates or amounts
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// RecordPayment applies a payment to an invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Delete removes an unpaid invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
