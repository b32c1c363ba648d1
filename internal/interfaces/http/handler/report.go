package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/finapp/backend/internal/application/report"
)

// ReportHandler handles report generation endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
	perm          PermissionFunc
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService, perm PermissionFunc) *ReportHandler {
	return &ReportHandler{reportService: reportService, perm: perm}
}

// RegisterRoutes registers report routes on an authenticated group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/clients/:id", h.perm("reports", "generate"), h.GenerateClientReport)
}

// GenerateClientReport renders a client's financial report as PDF.
// Generation is rate limited per user; a rejected request carries a
// Retry-After header.
func (h *ReportHandler) GenerateClientReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	generated, err := h.reportService.GenerateClientReport(c.Request.Context(), userID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+generated.Filename+`"`)
	c.Data(http.StatusOK, generated.ContentType, generated.Content)
}
