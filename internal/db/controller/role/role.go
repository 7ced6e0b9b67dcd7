// Package role provides CRUD operations for managing roles.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

const (
	idQueryPattern   = "id = ?"
	pairQueryPattern = "role_id = ? AND permission_id = ?"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrGrantAlreadyExists is returned when a permission is already granted to a role.
	ErrGrantAlreadyExists = errors.New("permission already granted to role")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// CreateInput holds the fields for creating a role.
type CreateInput struct {
	Name        string
	Description string
}

// UpdateInput holds the partial fields for updating a role.
// Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
}

// Create creates a new role in the database.
func Create(db *gorm.DB, in CreateInput) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	role := &models.Role{
		Name:        in.Name,
		Description: in.Description,
	}

	result := db.Create(role)
	if result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// GetAll retrieves all roles, optionally filtered by a case-insensitive
// substring match on the name.
func GetAll(db *gorm.DB, name string) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.Role{})
	if name != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%")
	}

	var roles []models.Role
	result := tx.Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Update applies the non-nil fields of in to an existing role.
func Update(db *gorm.DB, id uint, in UpdateInput) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	result := db.First(&role, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	if in.Name != nil {
		role.Name = *in.Name
	}
	if in.Description != nil {
		role.Description = *in.Description
	}

	result = db.Save(&role)
	if result.Error != nil {
		return nil, result.Error
	}

	return &role, nil
}

// Delete deletes a role by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Role{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}

	return nil
}

// GrantPermission grants a permission to a role.
// An already existing grant is rejected with ErrGrantAlreadyExists; the
// duplicate policy is the same as on the generic role-permission create path.
func GrantPermission(db *gorm.DB, roleID, permissionID uint) (*models.RolePermission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.RolePermission
	result := db.Where(pairQueryPattern, roleID, permissionID).First(&existing)
	if result.Error == nil {
		return nil, ErrGrantAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	grant := &models.RolePermission{
		RoleID:       roleID,
		PermissionID: permissionID,
	}

	result = db.Create(grant)
	if result.Error != nil {
		return nil, result.Error
	}

	return grant, nil
}

// Permissions retrieves all permissions granted to a role.
// An unknown role yields an empty list, not an error.
func Permissions(db *gorm.DB, roleID uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var permissions []models.Permission
	result := db.Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Find(&permissions)
	if result.Error != nil {
		return nil, result.Error
	}

	return permissions, nil
}
