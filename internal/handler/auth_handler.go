package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/pkg/response"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	service *application.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers the public auth routes on the given router group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
