package group

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Get group details",
	Long: `Get details of a group on the ftpserverd admin API.

Examples:
  # Get group details
  ftpserverctl group get editors`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	group, err := client.GetGroup(name)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}

	return cmdutil.PrintResource(os.Stdout, group, GroupList{*group})
}
