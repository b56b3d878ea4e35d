package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an API error with a stable machine-readable code.
// All of these are client-input errors and terminal; nothing here is
// retried.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("API error %s: %s", e.Code, e.Message)
}

// NotFound reports a missing referenced entity
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: message}
}

// InvalidOperation reports an operation that is structurally valid but
// not allowed in the current state (self-follow, unfollow without follow)
func InvalidOperation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "invalid_operation", Message: message}
}

// AlreadyExists reports a duplicate follow or like
func AlreadyExists(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "already_exists", Message: message}
}

// BadRequest reports malformed input
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "bad_request", Message: message}
}

// Unauthorized reports a missing or invalid identity
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthorized", Message: message}
}

// Forbidden reports an authenticated caller acting on a resource they
// do not own
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Message: message}
}

// Internal reports an unexpected server-side failure
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "internal", Message: message}
}

// abort writes the error response and stops handler processing
func abort(c *gin.Context, err *Error) {
	c.AbortWithStatusJSON(err.Status, err)
}
