// Package bootstrap wires the runtime dependencies shared by the commands.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/middleware"
	"microblog/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// InitRuntime connects to DB and Redis and, in development, ensures the demo user.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := EnsureDemoUser(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development demo user: %w", err)
	}

	return db, r, nil
}

// EnsureDemoUser creates the DEV_DEMO_API_KEY user in development, or renames
// it when it already exists. Other environments are left untouched.
func EnsureDemoUser(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	apiKey := strings.TrimSpace(cfg.DevDemoAPIKey)
	if !strings.EqualFold(cfg.Env, "development") || apiKey == "" {
		return nil
	}

	name := strings.TrimSpace(cfg.DevDemoUserName)
	if name == "" {
		name = "demo"
	}

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		findErr := tx.Where("api_key = ?", apiKey).First(&user).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			user = models.User{Name: name, APIKey: apiKey}
			return tx.Create(&user).Error
		case findErr != nil:
			return findErr
		case user.Name != name:
			return tx.Model(&user).Update("name", name).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	middleware.Logger.Info("development demo user ensured",
		slog.Uint64("user_id", uint64(user.ID)), slog.String("name", name))
	return nil
}
