package models

import "time"

// UserRole represents the many-to-many relationship between users and roles.
// This junction table allows users to hold multiple roles, and roles to be
// assigned to multiple users. The pair (user_id, role_id) is the identity.
type UserRole struct {
	// UserID is the ID of the user in this assignment.
	UserID uint `gorm:"primaryKey;column:user_id"`
	// RoleID is the ID of the role in this assignment.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// AssignedAt is the timestamp when the role was assigned to the user.
	// It is set once at creation and survives re-keying of the pair.
	AssignedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for the UserRole model.
// This overrides GORM's default pluralized table naming.
func (UserRole) TableName() string {
	return "user_roles"
}
