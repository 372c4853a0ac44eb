// Package response defines the wire format of the activities API and the
// mapping from business error codes to HTTP status codes.
package response

import (
	"net/http"
)

// Body is the standard response body. Successful operations carry a
// human-readable message; failures carry a detail string, matching the
// contract the front end consumes.
type Body struct {
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// --- Error Code Constants ---

const (
	// Client errors (4xx)
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"

	// Business logic errors
	ErrCodeAlreadySignedUp = "ALREADY_SIGNED_UP"
	ErrCodeNotSignedUp     = "NOT_SIGNED_UP"
	ErrCodeActivityFull    = "ACTIVITY_FULL"

	// Server errors (5xx)
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// ErrorCodeToHTTPStatus maps error codes to HTTP status codes. Business
// rule rejections map to 400 to stay within the contract the original
// clients expect.
var ErrorCodeToHTTPStatus = map[string]int{
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAlreadySignedUp: http.StatusBadRequest,
	ErrCodeNotSignedUp:     http.StatusBadRequest,
	ErrCodeActivityFull:    http.StatusBadRequest,
	ErrCodeInternalError:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeToHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// --- Response Builders ---

// Message creates a success body.
func Message(msg string) *Body {
	return &Body{Message: msg}
}

// Detail creates a failure body.
func Detail(detail string) *Body {
	return &Body{Detail: detail}
}

// NotFound creates a not found failure body.
func NotFound(detail string) *Body {
	if detail == "" {
		detail = "Resource not found"
	}
	return Detail(detail)
}

// BadRequest creates a bad request failure body.
func BadRequest(detail string) *Body {
	if detail == "" {
		detail = "Invalid request"
	}
	return Detail(detail)
}

// InternalError creates an internal server error failure body.
func InternalError(detail string) *Body {
	if detail == "" {
		detail = "An internal error occurred"
	}
	return Detail(detail)
}
