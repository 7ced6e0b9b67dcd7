package models

import "time"

// RolePermission represents the many-to-many relationship between roles and permissions.
// This junction table maps which permissions are granted to which roles.
// The pair (role_id, permission_id) is the identity; there is no surrogate key.
type RolePermission struct {
	// RoleID is the ID of the role in this grant.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// PermissionID is the ID of the permission in this grant.
	PermissionID uint `gorm:"primaryKey;column:permission_id"`
	// GrantedAt is the timestamp when the permission was granted to the role.
	// It is set once at creation and survives re-keying of the pair.
	GrantedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for the RolePermission model.
// This overrides GORM's default pluralized table naming.
func (RolePermission) TableName() string {
	return "role_permissions"
}
