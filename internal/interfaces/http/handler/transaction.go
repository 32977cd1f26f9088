package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/schoolms/backend/internal/application/ledger"
	"github.com/schoolms/backend/internal/interfaces/http/dto"
	"github.com/schoolms/backend/internal/interfaces/http/middleware"
)

// TransactionHandler handles money transfer transaction endpoints
type TransactionHandler struct {
	BaseHandler
	transactionService *ledgerapp.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *ledgerapp.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.Create)
		transactions.GET("", h.List)
		transactions.GET("/:id", h.Get)
		transactions.PUT("/:id/status", h.UpdateStatus)
		transactions.DELETE("/:id", middleware.RequireAdmin(), h.Delete)
	}
}

// listTransactionsQuery holds list filter query parameters
type listTransactionsQuery struct {
	dto.ListRequest
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	Currency string `form:"currency" binding:"omitempty,len=3"`
	FromDate string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// Create records a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.transactionService.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns transactions matching the filter, newest first
func (h *TransactionHandler) List(c *gin.Context) {
	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := ledgerapp.TransactionListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Search:   query.Search,
		Status:   query.Status,
		Currency: query.Currency,
	}
	if query.BranchID != "" {
		id, err := uuid.Parse(query.BranchID)
		if err != nil {
			h.BadRequest(c, "Invalid branch_id parameter")
			return
		}
		filter.BranchID = &id
	}
	if query.FromDate != "" {
		from, _ := time.Parse("2006-01-02", query.FromDate)
		filter.FromDate = &from
	}
	if query.ToDate != "" {
		to, _ := time.Parse("2006-01-02", query.ToDate)
		// Inclusive through the end of the day
		to = to.Add(24*time.Hour - time.Second)
		filter.ToDate = &to
	}

	items, total, err := h.transactionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// Get returns a single transaction by ID
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.transactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus toggles a transaction between pending and confirmed
func (h *TransactionHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req ledgerapp.UpdateTransactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.transactionService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
