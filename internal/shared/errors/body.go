// Package errors renders error responses as {timestamp, message, status} bodies.
package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Body is the JSON payload sent for every non-validation failure.
type Body struct {
	// Timestamp is the RFC 3339 instant the response was produced.
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	// Status is the code followed by its upper snake-case reason, e.g. "404 NOT_FOUND".
	Status string `json:"status"`

	code int
}

// Error implements the error interface.
func (b Body) Error() string {
	if b.Message != "" {
		return fmt.Sprintf("%s: %s", b.Status, b.Message)
	}
	return b.Status
}

// Code returns the HTTP status code of the body.
func (b Body) Code() int {
	return b.code
}

// WithMessage returns a copy with the given message.
func (b Body) WithMessage(message string) Body {
	b.Message = message
	return b
}

// NewBody builds a body for code without a timestamp; the responder stamps it.
func NewBody(code int, message string) Body {
	return Body{Message: message, Status: StatusLabel(code), code: code}
}

// StatusLabel formats code as "<code> <REASON>".
func StatusLabel(code int) string {
	reason := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))
	if reason == "" {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code) + " " + reason
}

// Pre-defined bodies for common scenarios.
var (
	ErrNotFound   = NewBody(http.StatusNotFound, "")
	ErrBadRequest = NewBody(http.StatusBadRequest, "")
	ErrConflict   = NewBody(http.StatusConflict, "")
	ErrInternal   = NewBody(http.StatusInternalServerError, "")
)
