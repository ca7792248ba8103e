package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/pkg/auth"
	"github.com/tourvista/service-tours/pkg/middleware"
	"github.com/tourvista/service-tours/pkg/response"
)

// AgentHandler handles HTTP requests for the agent directory.
type AgentHandler struct {
	service *application.AgentService
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(service *application.AgentService) *AgentHandler {
	return &AgentHandler{service: service}
}

// RegisterRoutes registers agent routes. Reads are public, writes admin only.
func (h *AgentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	agents := r.Group("/api/v1/agents")
	{
		agents.GET("", h.ListAgents)
		agents.GET("/:id", h.GetAgent)
	}

	admin := agents.Group("")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.POST("", h.CreateAgent)
		admin.PUT("/:id", h.UpdateAgent)
		admin.DELETE("/:id", h.DeleteAgent)
	}
}

// ListAgents handles GET /api/v1/agents.
func (h *AgentHandler) ListAgents(c *gin.Context) {
	result, err := h.service.ListAgents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetAgent handles GET /api/v1/agents/:id.
func (h *AgentHandler) GetAgent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid agent ID")
		return
	}

	result, err := h.service.GetAgent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateAgent handles POST /api/v1/agents.
func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var req application.AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateAgent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateAgent handles PUT /api/v1/agents/:id.
func (h *AgentHandler) UpdateAgent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid agent ID")
		return
	}

	var req application.AgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateAgent(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteAgent handles DELETE /api/v1/agents/:id.
func (h *AgentHandler) DeleteAgent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid agent ID")
		return
	}

	if err := h.service.DeleteAgent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
