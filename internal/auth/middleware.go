package auth

import (
	"context"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"customerhub/internal/errors"
)

// IdentityContextKey is the echo.Context key the verified identity is stored under.
const IdentityContextKey = "identity"

// Identity is the caller derived from a verified token. The claims are trusted
// as-is; no user lookup happens at this point.
type Identity struct {
	ID    string
	Email string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored in ctx, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

// IdentityFrom returns the identity attached to the request by Middleware.
func IdentityFrom(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(IdentityContextKey).(*Identity)
	return id, ok && id != nil
}

// Middleware authenticates requests carrying "Authorization: Bearer <token>".
// Rejections are returned as *errors.AuthError and rendered as 401.
func Middleware(jwtService *JWTService, logger *zap.Logger) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:  IdentityContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			return &Identity{ID: claims.UserID, Email: claims.Email}, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			authErr := classify(c.Request().Header.Get(echo.HeaderAuthorization))
			logger.Warn("token verification failed",
				zap.String("reason", string(authErr.Reason)),
				zap.NamedError("cause", err),
				zap.String("ip", c.RealIP()),
				zap.String("path", c.Request().URL.Path),
			)
			return authErr
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			if id, ok := IdentityFrom(c); ok {
				c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), id)))
			}
			return next(c)
		})
	}
}

// classify tells apart an absent header, a header without a token segment and
// a token that failed verification.
func classify(header string) *errors.AuthError {
	if header == "" {
		return &errors.AuthError{Reason: errors.AuthMissing}
	}
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return &errors.AuthError{Reason: errors.AuthMalformed}
	}
	return &errors.AuthError{Reason: errors.AuthInvalidOrExpired}
}
