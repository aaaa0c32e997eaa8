package httputil_test

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

	apperrors "github.com/allisson/hname/internal/errors"
	"github.com/allisson/hname/internal/httputil"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "registry entry not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
			expectedMsg:    "registry entry not found: not found",
		},
		{
			name:           "conflict",
			err:            fmt.Errorf("register: %w", apperrors.ErrConflict),
			expectedStatus: http.StatusConflict,
			expectedCode:   "conflict",
			expectedMsg:    "register: conflict",
		},
		{
			name:           "invalid input",
			err:            apperrors.ErrInvalidInput,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "invalid_input",
			expectedMsg:    apperrors.ErrInvalidInput.Error(),
		},
		{
			name:           "unavailable hides details",
			err:            apperrors.Wrap(apperrors.ErrUnavailable, "dial tcp 10.0.0.1:5432"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "unavailable",
			expectedMsg:    "The service is temporarily unavailable",
		},
		{
			name:           "unknown hides details",
			err:            errors.New("pq: connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "internal_error",
			expectedMsg:    "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()

			httputil.HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newContext()
		httputil.HandleErrorGin(c, nil, nil)
		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newContext()

	httputil.HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httputil.ErrorResponse{Error: "bad_request", Message: "unexpected EOF"}, decode(t, w))
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newContext()

	httputil.HandleValidationErrorGin(c, errors.New("names: cannot be blank."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decode(t, w).Error)
}
