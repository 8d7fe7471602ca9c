package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	_ "customerhub/docs" // swagger docs

	"customerhub/internal/auth"
	"customerhub/internal/cache"
	"customerhub/internal/config"
	"customerhub/internal/handler"
	"customerhub/internal/logger"
	"customerhub/internal/repository"
	"customerhub/internal/router"
	"customerhub/internal/service"
	"customerhub/internal/store"
)

// @title Customer Hub API
// @version 1.0
// @description Multi-tenant customer management API with JWT authentication.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if cacheClient.Enabled() {
		defer func() { _ = cacheClient.Close() }()
	}

	userRepo := repository.NewUserRepository(fileStore, cfg.UsersFile)
	customerRepo := repository.NewCustomerRepository(fileStore, cfg.CustomersFile)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)

	authService := service.NewAuthService(userRepo, jwtService, cacheClient, log)
	customerService := service.NewCustomerService(customerRepo, log)

	e := echo.New()
	router.Register(
		e,
		cfg,
		log,
		jwtService,
		handler.NewAuthHandler(authService),
		handler.NewCustomerHandler(customerService),
		handler.NewHealthHandler(cfg.Env),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server listening",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.String("data_dir", fileStore.Dir()),
			zap.Bool("cache", cacheClient.Enabled()),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
