// Package user provides CRUD operations for managing user accounts.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// CreateInput holds the fields for creating a user.
// IsActive defaults to true when nil.
type CreateInput struct {
	Username     string
	Email        string
	PasswordHash string
	IsActive     *bool
}

// UpdateInput holds the partial fields for updating a user.
// Nil fields are left unchanged.
type UpdateInput struct {
	Username     *string
	Email        *string
	PasswordHash *string
	IsActive     *bool
}

// Filter narrows GetAll results. Empty fields match everything.
type Filter struct {
	Username string
	Email    string
}

// Create creates a new user in the database.
// The password hash is stored verbatim, it is never hashed here.
func Create(db *gorm.DB, in CreateInput) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		IsActive:     isActive,
	}

	result := db.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}

	return user, nil
}

// GetAll retrieves all users, optionally filtered by case-insensitive
// substring matches on username and email.
func GetAll(db *gorm.DB, filter Filter) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Model(&models.User{})
	if filter.Username != "" {
		tx = tx.Where("LOWER(username) LIKE LOWER(?)", "%"+filter.Username+"%")
	}
	if filter.Email != "" {
		tx = tx.Where("LOWER(email) LIKE LOWER(?)", "%"+filter.Email+"%")
	}

	var users []models.User
	result := tx.Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// Update applies the non-nil fields of in to an existing user.
func Update(db *gorm.DB, id uint, in UpdateInput) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	result := db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.PasswordHash != nil {
		user.PasswordHash = *in.PasswordHash
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	// Save uses a full update so a false IsActive is persisted as well.
	result = db.Save(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// Delete deletes a user by ID.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
