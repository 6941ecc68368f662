package db

import (
	"fmt"

	"github.com/revisehub/revisehub/internal/models"
	"gorm.io/gorm"
)

// Migrate runs database migrations for all tracked tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAutoMigrate := conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Setting{},
		&models.Question{},
		&models.Review{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	return nil
}
