package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"customerhub/internal/auth"
	"customerhub/internal/errors"
	"customerhub/internal/model"
	"customerhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	IDNumber string `json:"idNumber"`
}

// SigninRequest represents a user login request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupResponse is returned on successful registration.
type SignupResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    model.PublicUser `json:"user"`
}

// SigninResponse is returned on successful login.
type SigninResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token"`
	User    model.PublicUser `json:"user"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Success bool             `json:"success"`
	User    model.PublicUser `json:"user"`
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Users   []model.PublicUser `json:"users"`
}

// MessageResponse is a bare success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// bind decodes and validates a request body.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: validationMessage(err),
			Code:  "VALIDATION_FAILED",
		})
	}
	return nil
}

// validationMessage turns validator output into a client-facing message that
// names only the offending JSON fields.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// toHTTPError maps a domain error onto an echo error carrying the envelope.
func toHTTPError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		// keep the cause for the error handler's log line
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func identity(c echo.Context) (*auth.Identity, error) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		return nil, toHTTPError(&errors.AuthError{Reason: errors.AuthMissing})
	}
	return id, nil
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Signup(c.Request().Context(), req.Email, req.Password, req.Name, req.IDNumber)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    *user,
	})
}

// Signin godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Credentials"
// @Success 200 {object} SigninResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, SigninResponse{
		Success: true,
		Token:   token,
		User:    *user,
	})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), id.ID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, UserResponse{Success: true, User: *user})
}

// Signout godoc
// @Summary Sign out
// @Description Tokens are stateless; the presented token stays valid until it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	h.authService.Signout(c.Request().Context(), id)
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Signed out successfully"})
}

// ListUsers godoc
// @Summary List users
// @Tags auth
// @Produce json
// @Success 200 {object} UsersResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, UsersResponse{
		Success: true,
		Message: fmt.Sprintf("Found %d users", len(users)),
		Users:   users,
	})
}
