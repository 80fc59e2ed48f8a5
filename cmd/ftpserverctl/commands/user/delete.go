package user

import (
	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user",
	Long: `Delete a user on the ftpserverd admin API.

Examples:
  # Delete user alice
  ftpserverctl user delete alice

  # Delete without confirmation
  ftpserverctl user delete alice --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	username := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("User", username, deleteForce, func() error {
		return client.DeleteUser(username)
	})
}
