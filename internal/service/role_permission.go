package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/rolepermission"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

// RolePermissionRecord is the API representation of a role-permission grant.
type RolePermissionRecord struct {
	RoleID       uint      `json:"role_id"`
	PermissionID uint      `json:"permission_id"`
	GrantedAt    time.Time `json:"granted_at"`
}

func newRolePermissionRecord(m *models.RolePermission) *RolePermissionRecord {
	return &RolePermissionRecord{
		RoleID:       m.RoleID,
		PermissionID: m.PermissionID,
		GrantedAt:    m.GrantedAt,
	}
}

// RolePermissionService provides grant operations for the HTTP layer.
type RolePermissionService struct {
	db *gorm.DB
}

// NewRolePermissionService creates a new RolePermissionService.
func NewRolePermissionService(db *gorm.DB) *RolePermissionService {
	return &RolePermissionService{db: db}
}

// Create persists a new grant.
func (s *RolePermissionService) Create(in rolepermission.CreateInput) (*RolePermissionRecord, error) {
	created, err := rolepermission.Create(s.db, in)
	if err != nil {
		return nil, err
	}

	return newRolePermissionRecord(created), nil
}

// List returns all grants matching the optional exact-ID filters.
func (s *RolePermissionService) List(roleID, permissionID uint) ([]RolePermissionRecord, error) {
	grants, err := rolepermission.GetAll(s.db, roleID, permissionID)
	if err != nil {
		return nil, err
	}

	records := make([]RolePermissionRecord, 0, len(grants))
	for i := range grants {
		records = append(records, *newRolePermissionRecord(&grants[i]))
	}

	return records, nil
}

// Update re-keys a grant while keeping its granted_at timestamp.
func (s *RolePermissionService) Update(key rolepermission.Key, in rolepermission.UpdateInput) (*RolePermissionRecord, error) {
	updated, err := rolepermission.Update(s.db, key, in)
	if err != nil {
		return nil, err
	}

	return newRolePermissionRecord(updated), nil
}

// Delete removes a grant.
func (s *RolePermissionService) Delete(key rolepermission.Key) error {
	return rolepermission.Delete(s.db, key)
}
