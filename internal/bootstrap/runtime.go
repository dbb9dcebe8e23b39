// Package bootstrap wires up the runtime dependencies shared by the server
// and the auxiliary commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"relay/internal/cache"
	"relay/internal/config"
	"relay/internal/database"
	"relay/internal/middleware"
	"relay/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// ResetStatuses forces every user back to OFFLINE on startup. Presence
	// is only meaningful while the server runs, so stale ONLINE/AWAY rows
	// left by a previous crash are cleared once here.
	ResetStatuses bool
}

// InitRuntime connects to the database and Redis and performs one-shot
// startup maintenance.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; callers fall back to
	// in-process stores.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.ResetStatuses {
		userRepo := repository.NewUserRepository(db)
		reset, err := userRepo.ResetAllStatuses(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to reset user statuses: %w", err)
		}
		if reset > 0 {
			middleware.Logger.InfoContext(ctx, "reset stale user statuses to OFFLINE",
				slog.Int64("count", reset))
		}
	}

	return db, r, nil
}
