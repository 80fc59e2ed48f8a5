package group

import (
	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a group",
	Long: `Delete a group on the ftpserverd admin API.

Members keep their own mounts and limits but lose whatever this group
contributed on top of them.

Examples:
  # Delete group editors
  ftpserverctl group delete editors

  # Delete without confirmation
  ftpserverctl group delete editors --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("Group", name, deleteForce, func() error {
		return client.DeleteGroup(name)
	})
}
