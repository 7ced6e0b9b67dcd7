package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/controller/user"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

// UserRecord is the API representation of a user.
// The password hash is part of the read shape, mirroring what the store
// holds; this service never hashes or hides it.
type UserRecord struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newUserRecord(m *models.User) *UserRecord {
	return &UserRecord{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// UserService provides user operations for the HTTP layer.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create persists a new user.
func (s *UserService) Create(in user.CreateInput) (*UserRecord, error) {
	created, err := user.Create(s.db, in)
	if err != nil {
		return nil, err
	}

	return newUserRecord(created), nil
}

// List returns all users matching the optional username/email filters.
func (s *UserService) List(filter user.Filter) ([]UserRecord, error) {
	users, err := user.GetAll(s.db, filter)
	if err != nil {
		return nil, err
	}

	records := make([]UserRecord, 0, len(users))
	for i := range users {
		records = append(records, *newUserRecord(&users[i]))
	}

	return records, nil
}

// Update applies a partial update to a user.
func (s *UserService) Update(id uint, in user.UpdateInput) (*UserRecord, error) {
	updated, err := user.Update(s.db, id, in)
	if err != nil {
		return nil, err
	}

	return newUserRecord(updated), nil
}

// Delete removes a user.
func (s *UserService) Delete(id uint) error {
	return user.Delete(s.db, id)
}
