package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/schoolms/backend/internal/application/ledger"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/interfaces/http/dto"
	"github.com/schoolms/backend/internal/interfaces/http/middleware"
)

// BudgetHandler handles branch budget endpoints. Budget allocations are
// admin-managed; reads are open to any authenticated user.
type BudgetHandler struct {
	BaseHandler
	budgetService *ledgerapp.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *ledgerapp.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// RegisterRoutes registers budget routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.List)
		budgets.GET("/:id", h.Get)

		admin := budgets.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// Create allocates a budget for a branch and period
func (h *BudgetHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.budgetService.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns budgets
func (h *BudgetHandler) List(c *gin.Context) {
	query := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, err := h.budgetService.List(c.Request.Context(), shared.Filter{
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

// Get returns a single budget by ID
func (h *BudgetHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.budgetService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes a budget's allocation or notes
func (h *BudgetHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req ledgerapp.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.budgetService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a budget
func (h *BudgetHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.budgetService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
