package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Responder sends error bodies.
type Responder struct {
	// Clock stamps each body; defaults to time.Now.
	Clock func() time.Time
}

// NewResponder creates a responder using clock, or time.Now when nil.
func NewResponder(clock func() time.Time) *Responder {
	if clock == nil {
		clock = time.Now
	}
	return &Responder{Clock: clock}
}

// DefaultResponder stamps bodies with the wall clock.
var DefaultResponder = NewResponder(nil)

// Respond stamps and sends body with its status code.
func (r *Responder) Respond(c *gin.Context, body Body) {
	if body.code == 0 {
		body = NewBody(http.StatusInternalServerError, body.Message)
	}
	if body.Timestamp == "" {
		body.Timestamp = r.now().Format(time.RFC3339)
	}
	c.JSON(body.code, body)
}

// RespondError sends err as-is when it is a Body, otherwise as a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var body Body
	if errors.As(err, &body) {
		r.Respond(c, body)
		return
	}
	r.Respond(c, ErrInternal.WithMessage(err.Error()))
}

// NotFound sends a 404 body.
func (r *Responder) NotFound(c *gin.Context, message string) {
	r.Respond(c, ErrNotFound.WithMessage(message))
}

// BadRequest sends a 400 body.
func (r *Responder) BadRequest(c *gin.Context, message string) {
	r.Respond(c, ErrBadRequest.WithMessage(message))
}

// ValidationFailed sends a 400 whose body is the flat field to message map.
func (r *Responder) ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusBadRequest, fieldErrors)
}

// InternalError sends a 500 body.
func (r *Responder) InternalError(c *gin.Context, message string) {
	r.Respond(c, ErrInternal.WithMessage(message))
}

func (r *Responder) now() time.Time {
	if r == nil || r.Clock == nil {
		return time.Now()
	}
	return r.Clock()
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, body Body) {
	DefaultResponder.Respond(c, body)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// ErrorMapper writes a response for the errors it recognises and reports whether it did.
type ErrorMapper func(c *gin.Context, r *Responder, err error) bool

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(clock func() time.Time, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(clock),
		mappers:   mappers,
	}
}

// AddMapper adds an error mapper to the chain.
func (r *ChainedResponder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if mapper(c, r.Responder, err) {
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var body Body
	if errors.As(err, &body) && body.code != 0 {
		return body.code
	}
	return http.StatusInternalServerError
}
