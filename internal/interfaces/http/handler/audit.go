package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/finapp/backend/internal/application/audit"
)

// AuditHandler exposes the read-only audit trail
type AuditHandler struct {
	BaseHandler
	recorder *auditapp.Recorder
	perm     PermissionFunc
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(recorder *auditapp.Recorder, perm PermissionFunc) *AuditHandler {
	return &AuditHandler{recorder: recorder, perm: perm}
}

// RegisterRoutes registers audit routes on an authenticated group
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit-logs", h.perm("audit_logs", "read"))
	audit.GET("", h.List)
	audit.GET("/records/:id", h.History)
}

// List returns audit log entries, newest first. The search term
// filters by table name.
func (h *AuditHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	logs, err := h.recorder.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

// History returns the change history of a single record
func (h *AuditHandler) History(c *gin.Context) {
	recordID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	logs, err := h.recorder.History(c.Request.Context(), recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}
