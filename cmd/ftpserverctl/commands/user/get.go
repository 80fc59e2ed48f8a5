package user

import (
	"fmt"
	"os"
	"strings"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <username>",
	Short: "Get user details",
	Long: `Get detailed information about a user.

Examples:
  # Get user details as table
  ftpserverctl user get alice

  # Get as JSON
  ftpserverctl user get alice -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

// SingleUserList wraps a single user for table rendering.
type SingleUserList []adminrpc.User

// Headers implements TableRenderer.
func (ul SingleUserList) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements TableRenderer.
func (ul SingleUserList) Rows() [][]string {
	if len(ul) == 0 {
		return nil
	}
	u := ul[0]

	return [][]string{
		{"Name", u.Name},
		{"Disabled", cmdutil.BoolToYesNo(u.Disabled)},
		{"Methods", cmdutil.EmptyOr(strings.Join(u.Methods, ", "), "-")},
		{"Groups", cmdutil.EmptyOr(strings.Join(u.Groups, ", "), "-")},
		{"Mounts", fmt.Sprintf("%d", len(u.Mounts))},
		{"Rate Limit", cmdutil.EmptyOr(fmt.Sprintf("%d", u.RateLimitBytesPerSec), "-")},
		{"Session Limit", cmdutil.EmptyOr(fmt.Sprintf("%d", u.SessionCountLimit), "-")},
		{"Disallowed IPs", cmdutil.EmptyOr(strings.Join(u.DisallowedIPs, ", "), "-")},
		{"Allowed IPs", cmdutil.EmptyOr(strings.Join(u.AllowedIPs, ", "), "-")},
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	username := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	user, err := client.GetUser(username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, user, SingleUserList{*user})
}
