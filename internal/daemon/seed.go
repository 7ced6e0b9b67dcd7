package daemon

import (
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

func seed(_ *config.Config, db *gorm.DB) {
	// Seed initial data if role table is empty

	var count int64
	db.Model(&models.Role{}).Count(&count)
	if count == 0 {
		// Create default admin role
		db.Create(
			&models.Role{
				Name:        "admin",
				Description: "Administrator role with full access",
			},
		)
	}
}
