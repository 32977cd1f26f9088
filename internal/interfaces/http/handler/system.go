package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and system info endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	env     string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		env:     env,
		started: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Env    string `json:"env"`
	Uptime string `json:"uptime"`
	Time   string `json:"time"`
}

// Health returns service liveness information
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status: "ok",
		Name:   h.appName,
		Env:    h.env,
		Uptime: time.Since(h.started).Round(time.Second).String(),
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
