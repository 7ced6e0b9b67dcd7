// Package permission provides CRUD operations for managing permissions.
package permission

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

var (
	// ErrPermissionNotFound is returned when a permission is not found.
	ErrPermissionNotFound = errors.New("permission not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// CreateInput holds the fields for creating a permission.
type CreateInput struct {
	Name        string
	Description string
}

// UpdateInput holds the partial fields for updating a permission.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
}

// Create creates a new permission in the database.
func Create(db *gorm.DB, in CreateInput) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	permission := &models.Permission{
		Name:        in.Name,
		Description: in.Description,
	}

	result := db.Create(permission)
	if result.Error != nil {
		return nil, result.Error
	}

	return permission, nil
}

// GetAll retrieves all permissions, optionally filtered by a case-insensitive
// substring match on the name.
func GetAll(db *gorm.DB, name string) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.Permission{})
	if name != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}

	var permissions []models.Permission
	result := tx.Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}

// Update applies the non-nil fields of in to an existing permission.
func Update(db *gorm.DB, id uint, in UpdateInput) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permission models.Permission
	result := db.First(&permission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, result.Error
	}

	if in.Name != nil {
		permission.Name = *in.Name
	}
	if in.Description != nil {
		permission.Description = *in.Description
	}

	result = db.Save(&permission)
	if result.Error != nil {
		return nil, result.Error
	}

	return &permission, nil
}

// Delete deletes a permission by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Permission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPermissionNotFound
	}

	return nil
}
