// Command migrate copies the users and customers documents into the database
// named by DB_DRIVER and DATABASE_DSN.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"customerhub/internal/config"
	"customerhub/internal/db"
	"customerhub/internal/importer"
	"customerhub/internal/logger"
	"customerhub/internal/store"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()

	if err != nil {
		log.Error("import failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open data dir: %w", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()
	log.Info("connected to database", zap.String("driver", cfg.DBDriver))

	target, err := importer.NewGormTarget(gormDB)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	report, err := importer.New(fileStore, cfg.UsersFile, cfg.CustomersFile, target, log).Run(ctx)
	if err != nil {
		return err
	}
	if report.UsersFailed > 0 || report.CustomersFailed > 0 {
		log.Warn("import completed with failures, review the log before deleting the JSON documents")
		return nil
	}
	log.Info("import completed, the JSON documents can be removed once the data is verified")
	return nil
}
