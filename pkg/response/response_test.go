package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-social/pkg/apperror"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")
	return c, w
}

func TestFromError_Kinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperror.Field("content", "is required"), http.StatusBadRequest},
		{apperror.NotFound("post"), http.StatusNotFound},
		{apperror.Permission("not the author"), http.StatusForbidden},
		{apperror.Conflict("already friends", nil), http.StatusConflict},
		{apperror.RateLimited("too many requests"), http.StatusTooManyRequests},
		{fmt.Errorf("wrap: %w", apperror.Unauthorized("bad token")), http.StatusUnauthorized},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, w := newContext()
		FromError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestFromError_ValidationDetails(t *testing.T) {
	c, w := newContext()
	FromError(c, apperror.Field("url", "must be a valid URL"))

	var body APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Equal(t, map[string]any{"url": "must be a valid URL"}, body.Error)
}

func TestFromError_HidesInternalMessage(t *testing.T) {
	c, w := newContext()
	FromError(c, errors.New("pq: connection refused"))
	assert.NotContains(t, w.Body.String(), "connection refused")
}
