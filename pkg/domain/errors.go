package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so the HTTP layer can map it to a
// status code without inspecting message text.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindValidation     ErrorKind = "validation"
	KindInvalidState   ErrorKind = "invalid_state"
	KindConflict       ErrorKind = "conflict"
	KindDuplicate      ErrorKind = "duplicate"
	KindEmptyCart      ErrorKind = "empty_cart"
	KindHasReferences  ErrorKind = "has_active_references"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindForbidden      ErrorKind = "forbidden"
)

// Error is a typed domain error carried from the service layer up to the
// HTTP boundary.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewNotFoundError reports a missing entity by identifier.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewValidationError reports invalid caller input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewInvalidStateError reports an illegal status transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewConflictError reports a concurrent-modification or uniqueness conflict.
func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewDuplicateError reports an entity that already exists.
func NewDuplicateError(entity, key string) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf("%s already exists: %s", entity, key)}
}

// NewEmptyCartError reports a booking attempt with nothing selected.
func NewEmptyCartError() *Error {
	return &Error{Kind: KindEmptyCart, Message: "cart is empty, cannot create a booking"}
}

// NewHasReferencesError reports a delete blocked by referencing bookings.
func NewHasReferencesError(entity, id string) *Error {
	return &Error{Kind: KindHasReferences, Message: fmt.Sprintf("%s %s is referenced by existing bookings", entity, id)}
}

// NewUnauthorizedError reports missing or invalid credentials.
func NewUnauthorizedError(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// NewForbiddenError reports an authenticated caller lacking permission.
func NewForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf returns the error's kind, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
