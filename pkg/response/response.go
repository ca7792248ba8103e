package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourvista/service-tours/pkg/domain"
)

// envelope is the uniform JSON body for successful responses.
type envelope struct {
	Data any `json:"data"`
}

// errorBody is the uniform JSON body for failed responses.
type errorBody struct {
	Error string `json:"error"`
}

// Success writes 200 with the given payload.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Data: data})
}

// Created writes 201 with the given payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{Data: data})
}

// NoContent writes 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes 400 with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorBody{Error: msg})
}

// Paginated writes 200 with a paginated payload.
func Paginated(c *gin.Context, items any, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Error maps a service-layer error to its HTTP status. Unrecognized errors
// become 500 without leaking internals.
func Error(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, errorBody{Error: err.Error()})
	case domain.KindValidation, domain.KindEmptyCart:
		c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	case domain.KindInvalidState, domain.KindConflict, domain.KindDuplicate, domain.KindHasReferences:
		c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
	case domain.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, errorBody{Error: err.Error()})
	case domain.KindForbidden:
		c.JSON(http.StatusForbidden, errorBody{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
