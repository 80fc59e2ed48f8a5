package user

import (
	"fmt"
	"os"
	"strings"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Long: `List all users on the ftpserverd admin API.

Examples:
  # List users as table
  ftpserverctl user list

  # List as JSON
  ftpserverctl user list -o json`,
	RunE: runList,
}

// UserList is a list of users for table rendering.
type UserList []adminrpc.User

// Headers implements TableRenderer.
func (ul UserList) Headers() []string {
	return []string{"NAME", "DISABLED", "METHODS", "GROUPS"}
}

// Rows implements TableRenderer.
func (ul UserList) Rows() [][]string {
	rows := make([][]string, 0, len(ul))
	for _, u := range ul {
		rows = append(rows, []string{
			u.Name,
			cmdutil.BoolToYesNo(u.Disabled),
			cmdutil.EmptyOr(strings.Join(u.Methods, ", "), "-"),
			cmdutil.EmptyOr(strings.Join(u.Groups, ", "), "-"),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	users, err := client.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, users, len(users) == 0, "No users found.", UserList(users))
}
