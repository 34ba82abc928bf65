// Command cleanup removes accounts that never completed email verification.
// It runs once and exits, so it can be scheduled by cron or a Kubernetes CronJob.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/campus-social/config"
	"github.com/oksasatya/campus-social/internal/application"
	pginfra "github.com/oksasatya/campus-social/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-social/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-cleanup", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfigFrom(cfg))
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	accounts := application.NewAccountService(
		pginfra.NewUserRepository(pool),
		nil, nil, nil,
		application.AccountPolicy{AllowedDomain: cfg.AllowedEmailDomain},
		logger,
	)
	n, err := accounts.PurgeUnverified(ctx, cfg.UnverifiedTTL)
	if err != nil {
		helpers.LogError(logger, "purge unverified users failed", err, nil)
		return
	}
	helpers.LogInfo(logger, "cleanup finished", map[string]any{"deleted": n, "older_than": cfg.UnverifiedTTL.String()})
}
