package database

import (
	"fmt"

	"github.com/Donkoyote123/werk-asset-management-system/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Asset{},
		&models.AssetAssignment{},
		&models.AssetCategory{},
		&models.AuditLog{},
		&models.Backup{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
