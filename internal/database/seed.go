package database

import (
	"log/slog"

	"github.com/eylulkaya/lostfound/internal/config"
	"github.com/eylulkaya/lostfound/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultCategories = []string{
	"Electronics",
	"Clothing",
	"Documents & IDs",
	"Keys",
	"Bags & Wallets",
	"Books & Stationery",
	"Accessories",
	"Other",
}

// Seed inserts the default categories and, when configured, the main admin
// account. Idempotent: existing rows are left untouched.
func Seed(db *gorm.DB, cfg *config.Config) error {
	for _, name := range defaultCategories {
		var existing models.Category
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return err
		}
	}

	if cfg.MainAdminEmail == "" || cfg.MainAdminPassword == "" {
		return nil
	}

	var admin models.User
	if err := db.Where("email = ?", cfg.MainAdminEmail).First(&admin).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.MainAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin = models.User{
		Name:     "Administrator",
		Email:    cfg.MainAdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
		Verified: true,
	}
	if cfg.MainAdminID != "" {
		if id, err := uuid.Parse(cfg.MainAdminID); err == nil {
			admin.ID = id
		}
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("main admin account seeded", "email", cfg.MainAdminEmail)
	return nil
}
