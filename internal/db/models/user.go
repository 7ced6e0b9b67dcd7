package models

import "time"

// User represents a user account in the system.
// Users are assigned roles through user-role assignments; the roles in turn
// carry permission grants. The password hash is stored verbatim as supplied
// by the caller, this service never hashes or verifies passwords.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`
	// Username is the username for login.
	Username string `gorm:"size:50;not null"`
	// Email is the user's email address.
	Email string `gorm:"size:255;not null"`
	// PasswordHash is the opaque, pre-hashed password string.
	PasswordHash string `gorm:"size:255;not null"`
	// IsActive indicates whether the user account is active.
	// The true-by-default rule lives in the controller; a column default
	// would make GORM swap an explicit false for true on insert.
	IsActive bool
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
// This overrides GORM's default pluralized table naming.
func (User) TableName() string {
	return "users"
}
