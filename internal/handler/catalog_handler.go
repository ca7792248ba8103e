package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/pkg/auth"
	"github.com/tourvista/service-tours/pkg/middleware"
	"github.com/tourvista/service-tours/pkg/response"
)

// CatalogHandler handles HTTP requests for the tour package catalog and its
// nested reviews.
type CatalogHandler struct {
	catalog *application.CatalogService
	reviews *application.ReviewService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *application.CatalogService, reviews *application.ReviewService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, reviews: reviews}
}

// RegisterRoutes registers catalog routes. Reads are public; writes require
// the agent or admin role, deletion admin only.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	packages := r.Group("/api/v1/tour-packages")
	{
		packages.GET("", h.ListPackages)
		packages.GET("/search", h.SearchPackages)
		packages.GET("/:id", h.GetPackage)
		packages.GET("/:id/reviews", h.ListReviews)

		packages.POST("", authMW, middleware.RequireRole(auth.RoleAgent, auth.RoleAdmin), h.CreatePackage)
		packages.PUT("/:id", authMW, middleware.RequireRole(auth.RoleAgent, auth.RoleAdmin), h.UpdatePackage)
		packages.DELETE("/:id", authMW, middleware.RequireRole(auth.RoleAdmin), h.DeletePackage)

		packages.POST("/:id/reviews", authMW, h.CreateReview)
	}
}

// ListPackages handles GET /api/v1/tour-packages. The available query flag
// narrows the list to packages open for booking.
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	var (
		result []application.TourPackageDTO
		err    error
	)
	if c.Query("available") == "true" {
		result, err = h.catalog.ListAvailablePackages(c.Request.Context())
	} else {
		result, err = h.catalog.ListPackages(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchPackages handles GET /api/v1/tour-packages/search.
func (h *CatalogHandler) SearchPackages(c *gin.Context) {
	name := c.Query("name")
	sortField := c.DefaultQuery("sort", "name")
	direction := c.DefaultQuery("direction", "asc")

	result, err := h.catalog.SearchPackages(c.Request.Context(), name, sortField, direction)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetPackage handles GET /api/v1/tour-packages/:id.
func (h *CatalogHandler) GetPackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tour package ID")
		return
	}

	result, err := h.catalog.GetPackage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreatePackage handles POST /api/v1/tour-packages.
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req application.TourPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.CreatePackage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdatePackage handles PUT /api/v1/tour-packages/:id.
func (h *CatalogHandler) UpdatePackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tour package ID")
		return
	}

	var req application.TourPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.UpdatePackage(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeletePackage handles DELETE /api/v1/tour-packages/:id.
func (h *CatalogHandler) DeletePackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tour package ID")
		return
	}

	if err := h.catalog.DeletePackage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListReviews handles GET /api/v1/tour-packages/:id/reviews.
func (h *CatalogHandler) ListReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tour package ID")
		return
	}

	result, err := h.reviews.ListByTourPackage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateReview handles POST /api/v1/tour-packages/:id/reviews.
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tour package ID")
		return
	}

	var req application.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.reviews.CreateReview(c.Request.Context(), userID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
