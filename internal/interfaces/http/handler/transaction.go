package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/finapp/backend/internal/application/ledger"
)

// TransactionHandler handles transaction-related API endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *ledgerapp.TransactionService
	perm               PermissionFunc
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *ledgerapp.TransactionService, perm PermissionFunc) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, perm: perm}
}

// RegisterRoutes registers transaction routes on an authenticated group
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	transactions.POST("", h.perm("transactions", "create"), h.Create)
	transactions.GET("", h.perm("transactions", "read"), h.List)
	transactions.GET("/:id", h.perm("transactions", "read"), h.Get)
	transactions.PUT("/:id", h.perm("transactions", "update"), h.Update)
	transactions.DELETE("/:id", h.perm("transactions", "delete"), h.Delete)
}

// Create records a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ledgerapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.transactionService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Get returns a transaction by ID
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// List returns transactions. The query narrows by client, category or
// date range; the filters are mutually exclusive and checked in that
// order.
func (h *TransactionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if clientParam := c.Query("client_id"); clientParam != "" {
		clientID, err := uuid.Parse(clientParam)
		if err != nil {
			h.BadRequest(c, "Invalid client ID")
			return
		}
		txs, err := h.transactionService.ListByClient(ctx, clientID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, txs)
		return
	}

	if category := c.Query("category"); category != "" {
		txs, err := h.transactionService.ListByCategory(ctx, category)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, txs)
		return
	}

	if c.Query("start") != "" || c.Query("end") != "" {
		var req ledgerapp.DateRangeRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
		txs, err := h.transactionService.ListByDateRange(ctx, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, txs)
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	txs, err := h.transactionService.List(ctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, txs)
}

// Update updates a transaction
func (h *TransactionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req ledgerapp.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tx, err := h.transactionService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
