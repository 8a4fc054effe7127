package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNotFound(t *testing.T) {
	c, w := newErrorTestContext()

	NotFound(c, "valuation not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, ErrNotFound, resp.Error.Code)
	assert.Equal(t, "valuation not found", resp.Error.Message)
}

func TestBadRequest_WithDetails(t *testing.T) {
	c, w := newErrorTestContext()

	BadRequest(c, "invalid request", map[string]interface{}{"field": "oops"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, ErrBadRequest, resp.Error.Code)
	assert.Equal(t, "oops", resp.Error.Details["field"])
}

func TestPreconditionFailed(t *testing.T) {
	c, w := newErrorTestContext()

	PreconditionFailed(c, "asking price is required for valuation")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, ErrPrecondition, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "asking price")
}

func TestInternalServerError_HidesDetails(t *testing.T) {
	c, w := newErrorTestContext()

	InternalServerError(c, "something went wrong", assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, ErrInternalServer, resp.Error.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
