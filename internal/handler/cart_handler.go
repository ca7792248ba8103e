package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/pkg/auth"
	"github.com/tourvista/service-tours/pkg/middleware"
	"github.com/tourvista/service-tours/pkg/response"
)

// CartHandler handles HTTP requests for the session cart. The cart session
// is keyed by the authenticated user's id.
type CartHandler struct {
	service *application.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers all cart routes on the given router group.
func (h *CartHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	cart := r.Group("/api/v1/cart")
	cart.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleUser))
	{
		cart.GET("", h.GetCart)
		cart.POST("/items/:packageId", h.AddItem)
		cart.DELETE("/items/:packageId", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem handles POST /api/v1/cart/items/:packageId.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	packageID, err := uuid.Parse(c.Param("packageId"))
	if err != nil {
		response.BadRequest(c, "invalid tour package ID")
		return
	}

	result, err := h.service.AddItem(c.Request.Context(), userID, packageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveItem handles DELETE /api/v1/cart/items/:packageId.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	packageID, err := uuid.Parse(c.Param("packageId"))
	if err != nil {
		response.BadRequest(c, "invalid tour package ID")
		return
	}

	result, err := h.service.RemoveItem(c.Request.Context(), userID, packageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
