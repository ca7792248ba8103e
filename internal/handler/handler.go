package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tourvista/service-tours/pkg/domain"
)

// errUnauthorized covers the case where a route runs without the auth
// middleware having populated the user identity.
var errUnauthorized = domain.NewUnauthorizedError("unauthorized")

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// parsePagination reads page and limit query parameters, clamping them to
// sane bounds.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit
}
