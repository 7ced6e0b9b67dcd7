package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
	"github.com/go-rbac-admin/go-rbac-admin/internal/service"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
	)
	require.NoError(t, err, "failed to migrate test database")

	app := fiber.New()

	h := Service{}
	h.Init(app, &config.Config{Title: "test"}, db)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestUserLifecycle(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doRequest(t, app, fiber.MethodPost, Path, fiber.Map{
		"username":      "alice",
		"email":         "alice@example.com",
		"password_hash": "$2b$12$abcdefghijklmnop",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created service.UserRecord
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.True(t, created.IsActive, "is_active defaults to true")

	// filter by username substring
	resp = doRequest(t, app, fiber.MethodGet, Path+"?username=ali", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var listed []service.UserRecord
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// deactivate without touching the other fields
	resp = doRequest(t, app, fiber.MethodPut, fmt.Sprintf("%s/%d", Path, created.ID), fiber.Map{
		"is_active": false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated service.UserRecord
	decodeBody(t, resp, &updated)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email)

	resp = doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("%s/%d", Path, created.ID), nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("%s/%d", Path, created.ID), nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	testCases := []struct {
		name           string
		body           fiber.Map
		expectedStatus int
	}{
		{
			name: "invalid email",
			body: fiber.Map{
				"username":      "alice",
				"email":         "not-an-email",
				"password_hash": "$2b$12$abcdefghijklmnop",
			},
			expectedStatus: fiber.StatusUnprocessableEntity,
		},
		{
			name: "password hash too short",
			body: fiber.Map{
				"username":      "alice",
				"email":         "alice@example.com",
				"password_hash": "short",
			},
			expectedStatus: fiber.StatusUnprocessableEntity,
		},
		{
			name: "missing username",
			body: fiber.Map{
				"email":         "alice@example.com",
				"password_hash": "$2b$12$abcdefghijklmnop",
			},
			expectedStatus: fiber.StatusUnprocessableEntity,
		},
		{
			name: "valid payload",
			body: fiber.Map{
				"username":      "alice",
				"email":         "alice@example.com",
				"password_hash": "$2b$12$abcdefghijklmnop",
			},
			expectedStatus: fiber.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, fiber.MethodPost, Path, tc.body)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreateExplicitInactive(t *testing.T) {
	app, db := setupTestApp(t)

	resp := doRequest(t, app, fiber.MethodPost, Path, fiber.Map{
		"username":      "bob",
		"email":         "bob@example.com",
		"password_hash": "$2b$12$qrstuvwxyz012345",
		"is_active":     false,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created service.UserRecord
	decodeBody(t, resp, &created)
	assert.False(t, created.IsActive)

	var dbUser models.User
	require.NoError(t, db.First(&dbUser, created.ID).Error)
	assert.False(t, dbUser.IsActive)
}

func TestRoles(t *testing.T) {
	app, db := setupTestApp(t)

	resp := doRequest(t, app, fiber.MethodPost, Path, fiber.Map{
		"username":      "alice",
		"email":         "alice@example.com",
		"password_hash": "$2b$12$abcdefghijklmnop",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created service.UserRecord
	decodeBody(t, resp, &created)

	r := models.Role{Name: "admin"}
	require.NoError(t, db.Create(&r).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: created.ID, RoleID: r.ID}).Error)

	resp = doRequest(t, app, fiber.MethodGet, fmt.Sprintf("%s/%d/roles", Path, created.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var roles []service.RoleRecord
	decodeBody(t, resp, &roles)
	require.Len(t, roles, 1)
	assert.Equal(t, "admin", roles[0].Name)
}
