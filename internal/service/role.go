package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/role"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

// RoleRecord is the API representation of a role.
type RoleRecord struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newRoleRecord(m *models.Role) *RoleRecord {
	return &RoleRecord{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RoleService provides role operations for the HTTP layer.
type RoleService struct {
	db *gorm.DB
}

// NewRoleService creates a new RoleService.
func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

// Create persists a new role.
func (s *RoleService) Create(in role.CreateInput) (*RoleRecord, error) {
	created, err := role.Create(s.db, in)
	if err != nil {
		return nil, err
	}

	return newRoleRecord(created), nil
}

// List returns all roles matching the optional name filter.
func (s *RoleService) List(name string) ([]RoleRecord, error) {
	roles, err := role.GetAll(s.db, name)
	if err != nil {
		return nil, err
	}

	records := make([]RoleRecord, 0, len(roles))
	for i := range roles {
		records = append(records, *newRoleRecord(&roles[i]))
	}

	return records, nil
}

// Update applies a partial update to a role.
func (s *RoleService) Update(id uint, in role.UpdateInput) (*RoleRecord, error) {
	updated, err := role.Update(s.db, id, in)
	if err != nil {
		return nil, err
	}

	return newRoleRecord(updated), nil
}

// Delete removes a role.
func (s *RoleService) Delete(id uint) error {
	return role.Delete(s.db, id)
}

// GrantPermission grants a permission to a role.
func (s *RoleService) GrantPermission(roleID, permissionID uint) (*RolePermissionRecord, error) {
	grant, err := role.GrantPermission(s.db, roleID, permissionID)
	if err != nil {
		return nil, err
	}

	return newRolePermissionRecord(grant), nil
}

// Permissions returns the permissions granted to a role.
func (s *RoleService) Permissions(roleID uint) ([]PermissionRecord, error) {
	permissions, err := role.Permissions(s.db, roleID)
	if err != nil {
		return nil, err
	}

	records := make([]PermissionRecord, 0, len(permissions))
	for i := range permissions {
		records = append(records, *newPermissionRecord(&permissions[i]))
	}

	return records, nil
}
