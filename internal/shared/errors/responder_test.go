package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.July, 1, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStatusLabel(t *testing.T) {
	tests := map[int]string{
		http.StatusNotFound:            "404 NOT_FOUND",
		http.StatusBadRequest:          "400 BAD_REQUEST",
		http.StatusConflict:            "409 CONFLICT",
		http.StatusInternalServerError: "500 INTERNAL_SERVER_ERROR",
		599:                            "599",
	}
	for code, want := range tests {
		assert.Equal(t, want, StatusLabel(code))
	}
}

func TestResponder_NotFound(t *testing.T) {
	c, w := newContext()

	NewResponder(fixedClock).NotFound(c, "User with ID 42 not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]string{
		"timestamp": "2024-07-01T12:30:00Z",
		"message":   "User with ID 42 not found",
		"status":    "404 NOT_FOUND",
	}, decode(t, w))
}

func TestResponder_ValidationFailedIsFlatMap(t *testing.T) {
	c, w := newContext()

	NewResponder(fixedClock).ValidationFailed(c, map[string]string{"email": "bad"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{"email": "bad"}, decode(t, w))
}

func TestResponder_RespondErrorUnwrapsBody(t *testing.T) {
	c, w := newContext()

	err := fmt.Errorf("wrapped: %w", ErrConflict.WithMessage("taken"))
	NewResponder(fixedClock).RespondError(c, err)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "409 CONFLICT", decode(t, w)["status"])
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(err))
}

func TestResponder_UnknownErrorIsInternal(t *testing.T) {
	c, w := newContext()

	NewResponder(fixedClock).RespondError(c, stderrors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "db down", decode(t, w)["message"])
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(stderrors.New("x")))
}

func TestChainedResponder_FirstMatchingMapperWins(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	calls := 0
	responder := NewChainedResponder(fixedClock,
		func(c *gin.Context, r *Responder, err error) bool {
			calls++
			return false
		},
		func(c *gin.Context, r *Responder, err error) bool {
			if !stderrors.Is(err, sentinel) {
				return false
			}
			r.NotFound(c, "mapped")
			return true
		},
	)

	c, w := newContext()
	responder.RespondError(c, sentinel)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, calls)

	c, w = newContext()
	responder.RespondError(c, stderrors.New("other"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
