package rolepermission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-rbac-admin/go-rbac-admin/internal/config"
	"github.com/go-rbac-admin/go-rbac-admin/internal/db/models"
	"github.com/go-rbac-admin/go-rbac-admin/internal/service"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
	)
	require.NoError(t, err, "failed to migrate test database")

	app := fiber.New()

	h := Service{}
	h.Init(app, &config.Config{Title: "test"}, db)

	return app
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

func TestGrantLifecycle(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, fiber.MethodPost, Path, fiber.Map{
		"role_id":       1,
		"permission_id": 2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created service.RolePermissionRecord
	decodeBody(t, resp, &created)
	assert.Equal(t, uint(1), created.RoleID)
	assert.Equal(t, uint(2), created.PermissionID)
	assert.False(t, created.GrantedAt.IsZero())

	// duplicate pair is rejected
	resp = doRequest(t, app, fiber.MethodPost, Path, fiber.Map{
		"role_id":       1,
		"permission_id": 2,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// re-key the permission half, granted_at stays put
	resp = doRequest(t, app, fiber.MethodPut, Path+"/1/2", fiber.Map{
		"permission_id": 5,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated service.RolePermissionRecord
	decodeBody(t, resp, &updated)
	assert.Equal(t, uint(1), updated.RoleID)
	assert.Equal(t, uint(5), updated.PermissionID)
	assert.WithinDuration(t, created.GrantedAt, updated.GrantedAt, time.Second)

	// the old key no longer resolves
	resp = doRequest(t, app, fiber.MethodPut, Path+"/1/2", fiber.Map{})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodDelete, Path+"/1/5", nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodDelete, Path+"/1/5", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateValidation(t *testing.T) {
	app := setupTestApp(t)

	testCases := []struct {
		name           string
		body           fiber.Map
		expectedStatus int
	}{
		{
			name:           "zero role_id",
			body:           fiber.Map{"role_id": 0, "permission_id": 2},
			expectedStatus: fiber.StatusUnprocessableEntity,
		},
		{
			name:           "missing permission_id",
			body:           fiber.Map{"role_id": 1},
			expectedStatus: fiber.StatusUnprocessableEntity,
		},
		{
			name:           "valid pair",
			body:           fiber.Map{"role_id": 1, "permission_id": 2},
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

func TestListFilters(t *testing.T) {
	app := setupTestApp(t)

	pairs := []fiber.Map{
		{"role_id": 1, "permission_id": 10},
		{"role_id": 1, "permission_id": 11},
		{"role_id": 2, "permission_id": 10},
	}
	for _, p := range pairs {
		resp := doRequest(t, app, fiber.MethodPost, Path, p)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	testCases := []struct {
		name        string
		query       string
		expectedLen int
	}{
		{name: "no filter", query: "", expectedLen: 3},
		{name: "by role", query: "?role_id=1", expectedLen: 2},
		{name: "by permission", query: "?permission_id=10", expectedLen: 2},
		{name: "by both", query: "?role_id=2&permission_id=10", expectedLen: 1},
		{name: "no match", query: "?role_id=9", expectedLen: 0},
		// a non-numeric ID filter is ignored, not an error
		{name: "malformed filter falls back to unfiltered", query: "?role_id=abc", expectedLen: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, fiber.MethodGet, Path+tc.query, nil)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			var grants []service.RolePermissionRecord
			decodeBody(t, resp, &grants)
			assert.Len(t, grants, tc.expectedLen)
		})
	}
}

func TestInvalidKey(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, fiber.MethodPut, Path+"/abc/2", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("%s/1/xyz", Path), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
