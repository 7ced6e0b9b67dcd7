// Package userrole provides CRUD operations for the user-role assignment
// table. Assignments are identified by their (user_id, role_id) composite key.
package userrole

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

const pairQueryPattern = "user_id = ? AND role_id = ?"

var (
	// ErrAssignmentNotFound is returned when an assignment is not found.
	ErrAssignmentNotFound = errors.New("user-role assignment not found")
	// ErrAssignmentAlreadyExists is returned when the composite pair already exists.
	ErrAssignmentAlreadyExists = errors.New("user-role assignment already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Key is the composite identity of an assignment.
type Key struct {
	UserID uint
	RoleID uint
}

// CreateInput holds the fields for creating an assignment.
type CreateInput struct {
	UserID uint
	RoleID uint
}

// UpdateInput holds the partial fields for re-keying an assignment.
// A nil field keeps the current half of the key.
type UpdateInput struct {
	UserID *uint
	RoleID *uint
}

// Create creates a new assignment. Duplicate pairs are rejected with
// ErrAssignmentAlreadyExists.
func Create(db *gorm.DB, in CreateInput) (*models.UserRole, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var existing models.UserRole
	result := db.Where(pairQueryPattern, in.UserID, in.RoleID).First(&existing)
	if result.Error == nil {
		return nil, ErrAssignmentAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	assignment := &models.UserRole{
		UserID: in.UserID,
		RoleID: in.RoleID,
	}

	result = db.Create(assignment)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignment, nil
}

// GetAll retrieves all assignments, optionally filtered by exact user and/or
// role ID. A zero ID means no filter on that column.
func GetAll(db *gorm.DB, userID, roleID uint) ([]models.UserRole, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.UserRole{})
	if userID != 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	if roleID != 0 {
		tx = tx.Where("role_id = ?", roleID)
	}

	var assignments []models.UserRole
	result := tx.Find(&assignments)
	if result.Error != nil {
		return nil, result.Error
	}

	return assignments, nil
}

// Update re-keys an assignment: either half of the composite key may be
// replaced while the original assigned_at timestamp is preserved.
func Update(db *gorm.DB, key Key, in UpdateInput) (*models.UserRole, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var current models.UserRole
	result := db.Where(pairQueryPattern, key.UserID, key.RoleID).First(&current)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, result.Error
	}

	newUserID := current.UserID
	if in.UserID != nil {
		newUserID = *in.UserID
	}

	newRoleID := current.RoleID
	if in.RoleID != nil {
		newRoleID = *in.RoleID
	}

	result = db.Model(&models.UserRole{}).
		Where(pairQueryPattern, key.UserID, key.RoleID).
		Updates(map[string]interface{}{
			"user_id": newUserID,
			"role_id": newRoleID,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	return &models.UserRole{
		UserID:     newUserID,
		RoleID:     newRoleID,
		AssignedAt: current.AssignedAt,
	}, nil
}

// Delete deletes an assignment by its composite key.
func Delete(db *gorm.DB, key Key) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where(pairQueryPattern, key.UserID, key.RoleID).
		Delete(&models.UserRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// RolesForUser retrieves the roles assigned to a user.
func RolesForUser(db *gorm.DB, userID uint) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}
