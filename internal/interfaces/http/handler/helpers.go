package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/schoolms/backend/internal/interfaces/http/dto"
	"github.com/schoolms/backend/internal/interfaces/http/middleware"
)

// parseID binds and parses the :id path parameter. On failure it writes a
// 400 response and returns false.
func (h *BaseHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid id parameter")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID returns the authenticated user's ID, or nil for requests
// authenticated without a user token (e.g. the cron secret).
func currentUserID(c *gin.Context) *uuid.UUID {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
