package database

import (
	"fmt"

	"github.com/Donkoyote123/werk-asset-management-system/internal/config"
	"github.com/Donkoyote123/werk-asset-management-system/internal/models"
	"github.com/Donkoyote123/werk-asset-management-system/internal/util"

	"gorm.io/gorm"
)

var defaultCategories = []models.AssetCategory{
	{Name: "Laptops", Description: "Desktop and laptop computers"},
	{Name: "Mobile Device", Description: "Smartphones and tablets"},
	{Name: "Monitor", Description: "Computer monitors and displays"},
	{Name: "Peripherals", Description: "Keyboards, mice, printers, etc."},
	{Name: "Network Equipment", Description: "Routers, switches, access points"},
	{Name: "Office Equipment", Description: "Printers, scanners, projectors"},
	{Name: "Furniture", Description: "Desks, chairs, cabinets"},
	{Name: "Software", Description: "Software licenses and applications"},
}

// Seed inserts the default categories and the bootstrap admin account if the
// database is empty. Running it twice is harmless.
func Seed(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.AssetCategory{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count == 0 {
		if err := db.Create(&defaultCategories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return fmt.Errorf("empty user table and no admin credentials configured")
	}
	hash, err := util.HashPassword(cfg.Admin.Password, cfg.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if cfg.Admin.Name == "" {
		cfg.Admin.Name = "System Administrator"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@" + cfg.App.UsernameOrg + ".com"
	}
	admin := models.User{
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		IDNumber:     "ADM001",
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
