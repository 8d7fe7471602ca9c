package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is returned when input is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError is returned when a uniqueness invariant would be violated.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthReason tells why a bearer token was rejected.
type AuthReason string

const (
	AuthMissing          AuthReason = "missing"
	AuthMalformed        AuthReason = "malformed"
	AuthInvalidOrExpired AuthReason = "invalid_or_expired"
)

// AuthError is returned when a request cannot be authenticated.
type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	switch e.Reason {
	case AuthMissing:
		return "No token provided"
	case AuthMalformed:
		return "Invalid token format"
	default:
		return "Invalid or expired token"
	}
}

// StorageError is returned when a backing document cannot be read or written
// for any reason other than it not existing yet.
type StorageError struct {
	Op       string
	Document string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Document, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

var (
	// ErrInvalidIDNumber is returned when the national id is not exactly 9 digits.
	ErrInvalidIDNumber = &ValidationError{Message: "ID number must be exactly 9 digits"}
	// ErrEmailTaken is returned when a user with the same email already exists.
	ErrEmailTaken = &ConflictError{Message: "User already exists"}
	// ErrIDNumberTaken is returned when a user with the same national id already exists.
	ErrIDNumberTaken = &ConflictError{Message: "ID number already exists"}
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUserNotFound is returned when the authenticated user no longer exists.
	ErrUserNotFound = errors.New("User not found")
	// ErrCustomerNotFound is returned when a customer is absent for the acting owner.
	ErrCustomerNotFound = errors.New("Customer not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		authErr       *AuthError
	)
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_FAILED")
	case errors.As(err, &conflictErr):
		return NewHTTPError(http.StatusConflict, conflictErr.Message, "CONFLICT")
	case errors.As(err, &authErr):
		return NewHTTPError(http.StatusUnauthorized, authErr.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCustomerNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCustomerNotFound.Error(), "CUSTOMER_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
