package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orgapp "github.com/schoolms/backend/internal/application/org"
	"github.com/schoolms/backend/internal/interfaces/http/dto"
	"github.com/schoolms/backend/internal/interfaces/http/middleware"
)

// StaffHandler handles staff member endpoints
type StaffHandler struct {
	BaseHandler
	staffService *orgapp.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService *orgapp.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// RegisterRoutes registers staff routes
func (h *StaffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/staff")
	{
		staff.GET("", h.List)
		staff.GET("/:id", h.Get)

		admin := staff.Group("", middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// listStaffQuery holds staff list filter query parameters
type listStaffQuery struct {
	dto.ListRequest
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// Create registers a new staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req orgapp.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.staffService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns staff members matching the filter
func (h *StaffHandler) List(c *gin.Context) {
	var query listStaffQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := orgapp.StaffListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Search:   query.Search,
		Status:   query.Status,
	}
	if query.BranchID != "" {
		id, err := uuid.Parse(query.BranchID)
		if err != nil {
			h.BadRequest(c, "Invalid branch_id parameter")
			return
		}
		filter.BranchID = &id
	}

	items, total, err := h.staffService.List(c.Request.Context(), filter)
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

// Get returns a single staff member by ID
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.staffService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update changes a staff member's details
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req orgapp.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.staffService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a staff member
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.staffService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
