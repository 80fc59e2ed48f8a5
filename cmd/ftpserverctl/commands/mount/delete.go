package mount

import (
	"fmt"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/spf13/cobra"
)

var (
	deleteUser    string
	deleteGroup   string
	deleteVirtual string
	deleteForce   bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove a mount point",
	Long: `Remove a mount point from a user or group.

Examples:
  # Remove a user's mount point
  ftpserverctl mount delete --user alice --virtual /home

  # Remove without confirmation
  ftpserverctl mount delete --group editors --virtual /shared --force`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVar(&deleteUser, "user", "", "Remove the mount from this user")
	deleteCmd.Flags().StringVar(&deleteGroup, "group", "", "Remove the mount from this group")
	deleteCmd.Flags().StringVar(&deleteVirtual, "virtual", "", "Virtual path of the mount to remove (required)")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
	_ = deleteCmd.MarkFlagRequired("virtual")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if (deleteUser == "") == (deleteGroup == "") {
		return fmt.Errorf("specify exactly one of --user or --group")
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	return cmdutil.RunDeleteWithConfirmation("Mount point", deleteVirtual, deleteForce, func() error {
		if deleteUser != "" {
			return client.DeleteUserMount(deleteUser, deleteVirtual)
		}
		return client.DeleteGroupMount(deleteGroup, deleteVirtual)
	})
}
