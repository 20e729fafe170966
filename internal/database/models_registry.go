package database

import "microblog/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tweet{},
		&models.Media{},
		&models.Like{},
		&models.Follow{},
	}
}
