// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-rbac-admin",
	Short: "go-rbac-admin is an administration service for role-based access control",
	Long: `go-rbac-admin is an administration service for role-based access control
that exposes CRUD endpoints for users, roles, permissions and their
role-permission grants and user-role assignments.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
