// Package group implements group management commands for ftpserverctl.
package group

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for group management.
var Cmd = &cobra.Command{
	Use:   "group",
	Short: "Group management",
	Long: `Manage groups on the ftpserverd admin API.

Group commands allow you to create, list, get, edit, and delete groups,
as well as manage group membership. Groups bundle mount points and
rate/session limits that every member user inherits on top of their own.
These operations require admin privileges.

Examples:
  # List all groups
  ftpserverctl group list

  # Get group details
  ftpserverctl group get editors

  # Create a new group
  ftpserverctl group create --name editors

  # Edit a group interactively
  ftpserverctl group edit editors

  # Add a user to a group
  ftpserverctl group add-user editors alice

  # Remove a user from a group
  ftpserverctl group remove-user editors alice

  # Delete a group
  ftpserverctl group delete editors`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(addUserCmd)
	Cmd.AddCommand(removeUserCmd)
}
