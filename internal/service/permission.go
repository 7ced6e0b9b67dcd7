package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/permission"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

// PermissionRecord is the API representation of a permission.
type PermissionRecord struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newPermissionRecord(m *models.Permission) *PermissionRecord {
	return &PermissionRecord{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PermissionService provides permission operations for the HTTP layer.
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// Create persists a new permission.
func (s *PermissionService) Create(in permission.CreateInput) (*PermissionRecord, error) {
	created, err := permission.Create(s.db, in)
	if err != nil {
		return nil, err
	}

	return newPermissionRecord(created), nil
}

// List returns all permissions matching the optional name filter.
func (s *PermissionService) List(name string) ([]PermissionRecord, error) {
	permissions, err := permission.GetAll(s.db, name)
	if err != nil {
		return nil, err
	}

	records := make([]PermissionRecord, 0, len(permissions))
	for i := range permissions {
		records = append(records, *newPermissionRecord(&permissions[i]))
	}

	return records, nil
}

// Update applies a partial update to a permission.
func (s *PermissionService) Update(id uint, in permission.UpdateInput) (*PermissionRecord, error) {
	updated, err := permission.Update(s.db, id, in)
	if err != nil {
		return nil, err
	}

	return newPermissionRecord(updated), nil
}

// Delete removes a permission.
func (s *PermissionService) Delete(id uint) error {
	return permission.Delete(s.db, id)
}
