package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/pkg/auth"
	"github.com/tourvista/service-tours/pkg/middleware"
	"github.com/tourvista/service-tours/pkg/response"
)

// AdminHandler handles the admin dashboard surface: user management,
// booking overrides and statistics.
type AdminHandler struct {
	users    *application.UserService
	bookings *application.BookingService
	stats    *application.StatisticsService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	users *application.UserService,
	bookings *application.BookingService,
	stats *application.StatisticsService,
) *AdminHandler {
	return &AdminHandler{
		users:    users,
		bookings: bookings,
		stats:    stats,
	}
}

// RegisterRoutes registers all admin routes on the given router group. Every
// route requires the admin role.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/role", h.UpdateUserRole)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/bookings", h.ListBookings)
		admin.PATCH("/bookings/:id/status", h.OverrideBookingStatus)
		admin.DELETE("/bookings/:id", h.DeleteBooking)

		admin.GET("/stats/users", h.GetUserStats)
		admin.GET("/stats/bookings", h.GetBookingStats)
	}
}

// updateRoleRequest is the body for PUT /api/v1/admin/users/:id/role.
type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// overrideStatusRequest is the body for PATCH /api/v1/admin/bookings/:id/status.
type overrideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	result, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateUserRole handles PUT /api/v1/admin/users/:id/role. The new role
// replaces the old one.
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteUser handles DELETE /api/v1/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// OverrideBookingStatus handles PATCH /api/v1/admin/bookings/:id/status,
// forcing the booking into an arbitrary status.
func (h *AdminHandler) OverrideBookingStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var req overrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.bookings.OverrideStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetUserStats handles GET /api/v1/admin/stats/users.
func (h *AdminHandler) GetUserStats(c *gin.Context) {
	result, err := h.stats.GetUserStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBookingStats handles GET /api/v1/admin/stats/bookings.
func (h *AdminHandler) GetBookingStats(c *gin.Context) {
	result, err := h.stats.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
