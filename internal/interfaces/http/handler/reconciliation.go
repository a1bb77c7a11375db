package handler

import (
	"context"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reconciliationapp "github.com/salesops/backend/internal/application/reconciliation"
	recon "github.com/salesops/backend/internal/domain/reconciliation"
	"github.com/salesops/backend/internal/interfaces/http/middleware"
)

// ReconciliationHandler handles statement reconciliation API endpoints
type ReconciliationHandler struct {
	BaseHandler
	service *reconciliationapp.Service
}

// NewReconciliationHandler creates a new ReconciliationHandler
func NewReconciliationHandler(service *reconciliationapp.Service) *ReconciliationHandler {
	return &ReconciliationHandler{
		service: service,
	}
}

// UploadStatementRequest represents the multipart form fields of a statement
// upload. The document itself travels in the "document" file part.
type UploadStatementRequest struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

// ListRunsRequest represents query parameters for the run listing
type ListRunsRequest struct {
	Type     string `form:"type" binding:"omitempty,oneof=SALES COMMISSION sales commission"`
	Month    int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year     int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ReconcileSales accepts a gross-sales statement upload and returns the
// persisted run. A prior run for the same period is replaced.
func (h *ReconciliationHandler) ReconcileSales(c *gin.Context) {
	h.reconcile(c, h.service.ReconcileSales)
}

// ReconcileCommissions accepts a commission-settlement statement upload and
// returns the persisted run.
func (h *ReconciliationHandler) ReconcileCommissions(c *gin.Context) {
	h.reconcile(c, h.service.ReconcileCommissions)
}

func (h *ReconciliationHandler) reconcile(
	c *gin.Context,
	run func(ctx context.Context, req reconciliationapp.UploadRequest) (*recon.ReconciliationRun, error),
) {
	var form UploadStatementRequest
	if err := c.ShouldBind(&form); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		h.BadRequest(c, "Statement document is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Statement document could not be read")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Statement document could not be read")
		return
	}

	result, err := run(c.Request.Context(), reconciliationapp.UploadRequest{
		Month:     form.Month,
		Year:      form.Year,
		FileName:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Content:   content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ToRunResponse(result))
}

// GetByID returns one run with its line items
func (h *ReconciliationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid run ID format")
		return
	}

	run, err := h.service.GetRun(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToRunResponse(run))
}

// GetForPeriod returns the run for a (type, month, year) key
func (h *ReconciliationHandler) GetForPeriod(c *gin.Context) {
	var query struct {
		Type  string `form:"type" binding:"required,oneof=SALES COMMISSION sales commission"`
		Month int    `form:"month" binding:"required,min=1,max=12"`
		Year  int    `form:"year" binding:"required,min=2000,max=2100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	run, err := h.service.GetRunForPeriod(c.Request.Context(),
		recon.StatementType(strings.ToUpper(query.Type)), query.Month, query.Year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToRunResponse(run))
}

// List returns run summaries matching the query filters
func (h *ReconciliationHandler) List(c *gin.Context) {
	var query ListRunsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	filter := recon.RunFilter{
		Type:   recon.StatementType(strings.ToUpper(query.Type)),
		Month:  query.Month,
		Year:   query.Year,
		Limit:  query.PageSize,
		Offset: (query.Page - 1) * query.PageSize,
	}

	runs, total, err := h.service.ListRuns(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]RunSummaryResponse, len(runs))
	for i := range runs {
		responses[i] = ToRunSummaryResponse(&runs[i])
	}

	h.SuccessWithMeta(c, responses, total, query.Page, query.PageSize)
}
