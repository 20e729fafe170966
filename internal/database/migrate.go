package database

import (
	"fmt"
	"log/slog"

	"microblog/internal/middleware"

	"gorm.io/gorm"
)

// Migrate brings the schema up to date with PersistentModels.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	middleware.Logger.Info("Database migration completed",
		slog.Int("models", len(PersistentModels())),
		slog.String("dialect", db.Dialector.Name()),
	)
	return nil
}
