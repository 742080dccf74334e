package database

import (
	"ripple/internal/models"

	"gorm.io/gorm"
)

// RegisteredModels lists every model that participates in schema migration,
// ordered so that referenced tables are created before their dependents.
func RegisteredModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Author{},
		&models.Book{},
	}
}

// Migrate runs AutoMigrate for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(RegisteredModels()...)
}
