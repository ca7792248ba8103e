package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tourvista/service-tours/internal/application"
	"github.com/tourvista/service-tours/pkg/auth"
	"github.com/tourvista/service-tours/pkg/domain"
	"github.com/tourvista/service-tours/pkg/middleware"
	"github.com/tourvista/service-tours/pkg/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.AuthMiddleware(jwtManager))
	{
		bookings.POST("", middleware.RequireRole(auth.RoleUser), h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/confirm", middleware.RequireRole(auth.RoleAgent, auth.RoleAdmin), h.ConfirmBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
	}
}

// CreateBooking handles POST /api/v1/bookings. The booking is built from
// the caller's cart.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	// The body is optional; an empty one books the cart at its running total.
	var req application.CreateBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	result, err := h.service.CreateFromCart(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListBookings handles GET /api/v1/bookings, returning the caller's own
// bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	result, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBooking handles GET /api/v1/bookings/:id. Customers can only read
// their own bookings; agents and admins can read any.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.authorizeAccess(c, result.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ConfirmBooking handles POST /api/v1/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel. Customers can
// cancel their own bookings; agents and admins can cancel any.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, errUnauthorized)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	bk, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.authorizeAccess(c, bk.UserID); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// authorizeAccess allows the booking's owner plus the agent and admin roles.
func (h *BookingHandler) authorizeAccess(c *gin.Context, ownerID uuid.UUID) error {
	role, _ := middleware.GetUserRole(c)
	if role == auth.RoleAgent || role == auth.RoleAdmin {
		return nil
	}

	userID, ok := middleware.GetUserID(c)
	if !ok || userID != ownerID {
		return domain.NewForbiddenError("booking does not belong to this user")
	}
	return nil
}
