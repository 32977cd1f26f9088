package handler

import (
	"github.com/gin-gonic/gin"

	orgapp "github.com/schoolms/backend/internal/application/org"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/interfaces/http/dto"
	"github.com/schoolms/backend/internal/interfaces/http/middleware"
)

// BranchHandler handles branch endpoints
type BranchHandler struct {
	BaseHandler
	branchService *orgapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *orgapp.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// RegisterRoutes registers branch routes
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.GET("", h.List)
		branches.GET("/:id", h.Get)

		admin := branches.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// Create registers a new branch
func (h *BranchHandler) Create(c *gin.Context) {
	var req orgapp.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns branches ordered by name
func (h *BranchHandler) List(c *gin.Context) {
	query := dto.ListRequest{Page: 1, PageSize: 50, OrderBy: "name", OrderDir: "asc"}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.branchService.List(c.Request.Context(), shared.Filter{
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

	h.SuccessWithMeta(c, items, total, query.Page, query.PageSize)
}

// Get returns a single branch by ID
func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.branchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes a branch's details
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req orgapp.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.branchService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a branch
func (h *BranchHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.branchService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
