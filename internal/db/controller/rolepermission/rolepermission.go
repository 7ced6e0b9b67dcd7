// Package rolepermission provides CRUD operations for the role-permission
// grant table. Grants are identified by their (role_id, permission_id)
// composite key; there is no surrogate key.
package rolepermission

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

const pairQueryPattern = "role_id = ? AND permission_id = ?"

var (
	// ErrGrantNotFound is returned when a grant is not found.
	ErrGrantNotFound = errors.New("role-permission grant not found")
	// ErrGrantAlreadyExists is returned when the composite pair already exists.
	ErrGrantAlreadyExists = errors.New("role-permission grant already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Key is the composite identity of a grant.
type Key struct {
	RoleID       uint
	PermissionID uint
}

// CreateInput holds the fields for creating a grant.
type CreateInput struct {
	RoleID       uint
	PermissionID uint
}

// UpdateInput holds the partial fields for re-keying a grant.
// A nil field keeps the current half of the key.
type UpdateInput struct {
	RoleID       *uint
	PermissionID *uint
}

// Create creates a new grant. Duplicate pairs are rejected with
// ErrGrantAlreadyExists.
func Create(db *gorm.DB, in CreateInput) (*models.RolePermission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.RolePermission
	result := db.Where(pairQueryPattern, in.RoleID, in.PermissionID).First(&existing)
	if result.Error == nil {
		return nil, ErrGrantAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	grant := &models.RolePermission{
		RoleID:       in.RoleID,
		PermissionID: in.PermissionID,
	}

	result = db.Create(grant)
	if result.Error != nil {
		return nil, result.Error
	}

	return grant, nil
}

// GetAll retrieves all grants, optionally filtered by exact role and/or
// permission ID. A zero ID means no filter on that column.
func GetAll(db *gorm.DB, roleID, permissionID uint) ([]models.RolePermission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.RolePermission{})
	if roleID != 0 {
		tx = tx.Where("role_id = ?", roleID)
	}
	if permissionID != 0 {
		tx = tx.Where("permission_id = ?", permissionID)
	}

	var grants []models.RolePermission
	result := tx.Find(&grants)
	if result.Error != nil {
		return nil, result.Error
	}

	return grants, nil
}

// Update re-keys a grant: either half of the composite key may be replaced
// while the original granted_at timestamp is preserved.
func Update(db *gorm.DB, key Key, in UpdateInput) (*models.RolePermission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var current models.RolePermission
	result := db.Where(pairQueryPattern, key.RoleID, key.PermissionID).First(&current)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, result.Error
	}

	newRoleID := current.RoleID
	if in.RoleID != nil {
		newRoleID = *in.RoleID
	}

	newPermissionID := current.PermissionID
	if in.PermissionID != nil {
		newPermissionID = *in.PermissionID
	}

	result = db.Model(&models.RolePermission{}).
		Where(pairQueryPattern, key.RoleID, key.PermissionID).
		Updates(map[string]interface{}{
			"role_id":       newRoleID,
			"permission_id": newPermissionID,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	return &models.RolePermission{
		RoleID:       newRoleID,
		PermissionID: newPermissionID,
		GrantedAt:    current.GrantedAt,
	}, nil
}

// Delete deletes a grant by its composite key.
func Delete(db *gorm.DB, key Key) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(pairQueryPattern, key.RoleID, key.PermissionID).
		Delete(&models.RolePermission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGrantNotFound
	}

	return nil
}

// PermissionsForRole retrieves the permissions granted to a role.
func PermissionsForRole(db *gorm.DB, roleID uint) ([]models.Permission, error) {
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

// RolesForPermission retrieves the roles a permission is granted to.
func RolesForPermission(db *gorm.DB, permissionID uint) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Model(&models.Role{}).
		Joins("JOIN role_permissions ON role_permissions.role_id = roles.id").
		Where("role_permissions.permission_id = ?", permissionID).
		Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}
