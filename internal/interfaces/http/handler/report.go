package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/schoolms/backend/internal/application/report"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/interfaces/http/dto"
	"github.com/schoolms/backend/internal/interfaces/http/middleware"
)

// ReportHandler handles report generation and retrieval endpoints.
//
// The generate endpoint accepts either an admin bearer token or the cron
// secret; the scheduler sweep accepts the cron secret only. Both routes must
// be excluded from the group-level JWT middleware so the injected auth
// middlewares decide access themselves.
type ReportHandler struct {
	BaseHandler
	reportService    *reportapp.ReportService
	schedulerService *reportapp.SchedulerService
	generateAuth     gin.HandlerFunc
	cronAuth         gin.HandlerFunc
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(
	reportService *reportapp.ReportService,
	schedulerService *reportapp.SchedulerService,
	generateAuth gin.HandlerFunc,
	cronAuth gin.HandlerFunc,
) *ReportHandler {
	return &ReportHandler{
		reportService:    reportService,
		schedulerService: schedulerService,
		generateAuth:     generateAuth,
		cronAuth:         cronAuth,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.POST("/generate", h.generateAuth, h.Generate)
		reports.POST("/scheduler/run", h.cronAuth, h.RunScheduler)
		reports.GET("", h.List)
		reports.GET("/:id", h.Get)
		reports.GET("/:id/download", h.Download)
		reports.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// SchedulerRunResponse summarizes a full scheduler sweep
type SchedulerRunResponse struct {
	Total   int                     `json:"total"`
	Failed  int                     `json:"failed"`
	Results []reportapp.ScopeResult `json:"results"`
}

// Generate produces a PDF report for one branch scope and period
func (h *ReportHandler) Generate(c *gin.Context) {
	var req reportapp.GenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	if middleware.IsCronTriggered(c) {
		req.IsAutomated = true
	}

	result, err := h.reportService.Generate(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RunScheduler generates reports for every branch scope in one sweep
func (h *ReportHandler) RunScheduler(c *gin.Context) {
	var req reportapp.SchedulerRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	results, err := h.schedulerService.RunAllScopes(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	failed := 0
	for _, r := range results {
		if !r.Success && !r.Skipped {
			failed++
		}
	}

	h.Success(c, SchedulerRunResponse{
		Total:   len(results),
		Failed:  failed,
		Results: results,
	})
}

// List returns generated reports, newest first
func (h *ReportHandler) List(c *gin.Context) {
	query := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.reportService.List(c.Request.Context(), shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Search:   query.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Get returns a single generated report entry
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.reportService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Download returns a time-limited download URL for a report artifact
func (h *ReportHandler) Download(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.reportService.DownloadURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a report entry and its stored artifact
func (h *ReportHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.reportService.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
