package group

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all groups",
	Long: `List all groups on the ftpserverd admin API.

Examples:
  # List groups as table
  ftpserverctl group list

  # List as JSON
  ftpserverctl group list -o json

  # List as YAML
  ftpserverctl group list -o yaml`,
	RunE: runList,
}

// GroupList is a list of groups for table rendering.
type GroupList []adminrpc.Group

// Headers implements TableRenderer.
func (gl GroupList) Headers() []string {
	return []string{"NAME", "MOUNTS", "RATE LIMIT", "SESSION LIMIT"}
}

// Rows implements TableRenderer.
func (gl GroupList) Rows() [][]string {
	rows := make([][]string, 0, len(gl))
	for _, g := range gl {
		rows = append(rows, []string{
			g.Name,
			fmt.Sprintf("%d", len(g.Mounts)),
			cmdutil.EmptyOr(fmt.Sprintf("%d", g.RateLimitBytesPerSec), "-"),
			cmdutil.EmptyOr(fmt.Sprintf("%d", g.SessionCountLimit), "-"),
		})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	groups, err := client.ListGroups()
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, groups, len(groups) == 0, "No groups found.", GroupList(groups))
}
