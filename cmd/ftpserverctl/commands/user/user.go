// Package user implements user management commands for ftpserverctl.
package user

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for user management.
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "User management",
	Long: `Manage users on the ftpserverd admin API.

User commands allow you to create, list, edit, and delete users.
These operations require admin privileges.

Examples:
  # List all users
  ftpserverctl user list

  # Create a new user interactively
  ftpserverctl user create

  # Create a user with flags
  ftpserverctl user create --username alice --password secret --method password

  # Edit a user interactively
  ftpserverctl user edit alice

  # Delete a user
  ftpserverctl user delete alice`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(passwordCmd)
	Cmd.AddCommand(changePasswordCmd)
}
