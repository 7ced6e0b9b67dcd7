package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/userrole"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

// UserRoleRecord is the API representation of a user-role assignment.
type UserRoleRecord struct {
	UserID     uint      `json:"user_id"`
	RoleID     uint      `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

func newUserRoleRecord(m *models.UserRole) *UserRoleRecord {
	return &UserRoleRecord{
		UserID:     m.UserID,
		RoleID:     m.RoleID,
		AssignedAt: m.AssignedAt,
	}
}

// UserRoleService provides assignment operations for the HTTP layer.
type UserRoleService struct {
	db *gorm.DB
}

// NewUserRoleService creates a new UserRoleService.
func NewUserRoleService(db *gorm.DB) *UserRoleService {
	return &UserRoleService{db: db}
}

// Create persists a new assignment.
func (s *UserRoleService) Create(in userrole.CreateInput) (*UserRoleRecord, error) {
	created, err := userrole.Create(s.db, in)
	if err != nil {
		return nil, err
	}

	return newUserRoleRecord(created), nil
}

// List returns all assignments matching the optional exact-ID filters.
func (s *UserRoleService) List(userID, roleID uint) ([]UserRoleRecord, error) {
	assignments, err := userrole.GetAll(s.db, userID, roleID)
	if err != nil {
		return nil, err
	}

	records := make([]UserRoleRecord, 0, len(assignments))
	for i := range assignments {
		records = append(records, *newUserRoleRecord(&assignments[i]))
	}

	return records, nil
}

// Update re-keys an assignment while keeping its assigned_at timestamp.
func (s *UserRoleService) Update(key userrole.Key, in userrole.UpdateInput) (*UserRoleRecord, error) {
	updated, err := userrole.Update(s.db, key, in)
	if err != nil {
		return nil, err
	}

	return newUserRoleRecord(updated), nil
}

// Delete removes an assignment.
func (s *UserRoleService) Delete(key userrole.Key) error {
	return userrole.Delete(s.db, key)
}

// Roles returns the roles assigned to a user.
func (s *UserRoleService) Roles(userID uint) ([]RoleRecord, error) {
	roles, err := userrole.RolesForUser(s.db, userID)
	if err != nil {
		return nil, err
	}

	records := make([]RoleRecord, 0, len(roles))
	for i := range roles {
		records = append(records, *newRoleRecord(&roles[i]))
	}

	return records, nil
}
