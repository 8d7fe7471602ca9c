package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", ErrInvalidIDNumber, http.StatusBadRequest, "ID number must be exactly 9 digits"},
		{"duplicate email", ErrEmailTaken, http.StatusConflict, "User already exists"},
		{"duplicate id number", fmt.Errorf("create user: %w", ErrIDNumberTaken), http.StatusConflict, "ID number already exists"},
		{"missing token", &AuthError{Reason: AuthMissing}, http.StatusUnauthorized, "No token provided"},
		{"malformed token", &AuthError{Reason: AuthMalformed}, http.StatusUnauthorized, "Invalid token format"},
		{"bad token", &AuthError{Reason: AuthInvalidOrExpired}, http.StatusUnauthorized, "Invalid or expired token"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"wrapped user not found", fmt.Errorf("me: %w", ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"wrapped credentials", fmt.Errorf("signin: %w", ErrInvalidCredentials), http.StatusUnauthorized, "Invalid credentials"},
		{"customer not found", fmt.Errorf("update: %w", ErrCustomerNotFound), http.StatusNotFound, "Customer not found"},
		{"storage", &StorageError{Op: "read", Document: "users.json", Err: os.ErrPermission}, http.StatusInternalServerError, "internal server error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.False(t, httpErr.ToErrorResponse().Success)
		})
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	err := &StorageError{Op: "write", Document: "customers.json", Err: os.ErrPermission}
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "customers.json")
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"domain error", ErrCustomerNotFound, http.StatusNotFound, "Customer not found"},
		{"echo string", echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), http.StatusBadRequest, "invalid request body"},
		{"echo envelope", echo.NewHTTPError(http.StatusConflict, ErrorResponse{Error: "dup", Code: "CONFLICT"}), http.StatusConflict, "dup"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"internal leak", errors.New("open /secret/path: permission denied"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zap.NewNop())(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}
