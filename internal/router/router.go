package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"customerhub/internal/auth"
	"customerhub/internal/config"
	"customerhub/internal/errors"
	"customerhub/internal/handler"
	"customerhub/internal/logger"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	customerHandler *handler.CustomerHandler,
	healthHandler *handler.HealthHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = errors.NewHTTPErrorHandler(log)
	e.Validator = NewCustomValidator()

	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		HSTSMaxAge:         15552000,
		ReferrerPolicy:     "no-referrer",
	}))
	e.Use(middleware.CORSWithConfig(corsConfig(cfg.CORSOrigin)))
	e.Use(middleware.BodyLimit("10M"))
	if cfg.RateLimitEnabled {
		e.Use(rateLimiter(cfg, log))
	}

	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	requireAuth := auth.Middleware(jwtService, log)

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/signin", authHandler.Signin)
	authGroup.GET("/users", authHandler.ListUsers)
	authGroup.GET("/me", authHandler.Me, requireAuth)
	authGroup.POST("/signout", authHandler.Signout, requireAuth)

	customers := api.Group("/customers", requireAuth)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.POST("", customerHandler.Create)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
}

func corsConfig(origin string) middleware.CORSConfig {
	origins := []string{"*"}
	if origin != "" && origin != "*" {
		origins = strings.Split(origin, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}
	return middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: origin != "" && origin != "*",
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}
}

// rateLimiter allows RateLimitMax requests per client IP per RateLimitWindow.
func rateLimiter(cfg *config.Config, log *zap.Logger) echo.MiddlewareFunc {
	perSecond := rate.Limit(float64(cfg.RateLimitMax) / cfg.RateLimitWindow.Seconds())
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      perSecond,
			Burst:     cfg.RateLimitMax,
			ExpiresIn: cfg.RateLimitWindow,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			log.Warn("rate limit exceeded",
				zap.String("ip", identifier),
				zap.String("user_agent", c.Request().UserAgent()),
				zap.String("path", c.Request().URL.Path),
			)
			return c.JSON(http.StatusTooManyRequests, errors.ErrorResponse{
				Error: "Too many requests from this IP, please try again later.",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator returns a validator that reports fields by their JSON name.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
