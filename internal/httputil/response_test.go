package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/vending/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "coded not found",
			err:            apperrors.Coded(apperrors.ErrNotFound, "product/not-found", "product not found"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
			expectedCode:   "product/not-found",
			expectedMsg:    "product not found",
		},
		{
			name:           "plain conflict",
			err:            apperrors.Wrap(apperrors.ErrConflict, "duplicate"),
			expectedStatus: http.StatusConflict,
			expectedError:  "conflict",
			expectedMsg:    "A conflict occurred with existing data",
		},
		{
			name: "wrapped coded invalid input",
			err: apperrors.Wrap(
				apperrors.Coded(apperrors.ErrInvalidInput, "store/out-of-stock", "not enough products in stock"),
				"buy",
			),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
			expectedCode:   "store/out-of-stock",
			expectedMsg:    "not enough products in stock",
		},
		{
			name:           "unauthorized",
			err:            apperrors.Coded(apperrors.ErrUnauthorized, "auth/invalid-credentials", "invalid username or password"),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
			expectedCode:   "auth/invalid-credentials",
			expectedMsg:    "invalid username or password",
		},
		{
			name:           "forbidden",
			err:            apperrors.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedError:  "forbidden",
			expectedMsg:    "You don't have permission to access this resource",
		},
		{
			name:           "internal error hides details",
			err:            errors.New("pq: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
			expectedMsg:    "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedError, response.Error)
			assert.Equal(t, tt.expectedCode, response.Code)
			assert.Equal(t, tt.expectedMsg, response.Message)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("invalid character"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"invalid character"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("value: must be one of [5 10]."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"value: must be one of [5 10]."}`, w.Body.String())
}
