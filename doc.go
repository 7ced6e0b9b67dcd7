// Package main provides the entry point for the RBAC administration service.
// It initializes and runs a web server using the Fiber framework that exposes
// CRUD endpoints for users, roles, permissions and their many-to-many
// associations through a JSON REST API. The application uses gorm for data
// persistence and creates its schema at startup.
package main
