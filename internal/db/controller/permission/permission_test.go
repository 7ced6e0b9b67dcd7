package permission

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Permission{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, CreateInput{Name: "zone.create", Description: "Create DNS zones"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "zone.create", created.Name)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))

	_, err = Create(nil, CreateInput{Name: "zone.create"})
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"zone.create", "zone.delete", "record.update"} {
		_, err := Create(db, CreateInput{Name: name})
		require.NoError(t, err)
	}

	testCases := []struct {
		name          string
		filter        string
		expectedNames []string
	}{
		{
			name:          "no filter returns all",
			expectedNames: []string{"zone.create", "zone.delete", "record.update"},
		},
		{
			name:          "substring filter",
			filter:        "zone",
			expectedNames: []string{"zone.create", "zone.delete"},
		},
		{
			name:          "filter is case-insensitive",
			filter:        "ZONE",
			expectedNames: []string{"zone.create", "zone.delete"},
		},
		{
			name:          "filter without match",
			filter:        "nonexistent",
			expectedNames: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			permissions, err := GetAll(db, tc.filter)
			require.NoError(t, err)

			names := make([]string, 0, len(permissions))
			for _, p := range permissions {
				names = append(names, p.Name)
			}
			assert.ElementsMatch(t, tc.expectedNames, names)
		})
	}

	_, err := GetAll(nil, "")
	require.ErrorIs(t, err, ErrDBNil)
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	strPtr := func(s string) *string { return &s }

	created, err := Create(db, CreateInput{Name: "zone.create", Description: "Create DNS zones"})
	require.NoError(t, err)

	// partial update keeps the untouched field
	updated, err := Update(db, created.ID, UpdateInput{Description: strPtr("Create zones")})
	require.NoError(t, err)
	assert.Equal(t, "zone.create", updated.Name)
	assert.Equal(t, "Create zones", updated.Description)

	_, err = Update(db, 999, UpdateInput{Name: strPtr("ghost")})
	require.ErrorIs(t, err, ErrPermissionNotFound)

	_, err = Update(nil, created.ID, UpdateInput{})
	require.ErrorIs(t, err, ErrDBNil)
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, CreateInput{Name: "temp"})
	require.NoError(t, err)

	require.NoError(t, Delete(db, created.ID))
	require.ErrorIs(t, Delete(db, created.ID), ErrPermissionNotFound)
	require.ErrorIs(t, Delete(nil, created.ID), ErrDBNil)
}
