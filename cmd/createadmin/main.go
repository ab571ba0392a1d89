package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/observability"
	"github.com/spec-kit/shop-service/internal/persistence"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
)

// Seeds the first administrator account from ADMIN_NAME, ADMIN_EMAIL
// and ADMIN_PASS. Exits non-zero when an admin already exists.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	admin, err := service.BootstrapAdmin(ctx, userRepo, cfg.Auth, service.AdminSeed{
		Name:     os.Getenv("ADMIN_NAME"),
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASS"),
	})
	if err != nil {
		logger.Fatal("failed to create admin", zap.Error(err))
	}

	logger.Info("admin account created",
		zap.String("id", admin.ID),
		zap.String("email", admin.Email),
	)
}
