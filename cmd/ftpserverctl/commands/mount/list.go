package mount

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var (
	listUser  string
	listGroup string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mount points",
	Long: `List the mount points attached to a user or group.

Examples:
  # List a user's mount points
  ftpserverctl mount list --user alice

  # List a group's mount points
  ftpserverctl mount list --group editors`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listUser, "user", "", "List mounts owned by this user")
	listCmd.Flags().StringVar(&listGroup, "group", "", "List mounts owned by this group")
}

// MountList is a list of mount points for table rendering.
type MountList []adminrpc.Mount

// Headers implements TableRenderer.
func (ml MountList) Headers() []string {
	return []string{"VIRTUAL", "NATIVE", "ACCESS", "RECURSION", "AUTOCREATE"}
}

// Rows implements TableRenderer.
func (ml MountList) Rows() [][]string {
	rows := make([][]string, 0, len(ml))
	for _, m := range ml {
		rows = append(rows, []string{m.Virtual, m.Native, m.Access, m.Recursion, cmdutil.BoolToYesNo(m.Autocreate)})
	}
	return rows
}

func runList(cmd *cobra.Command, args []string) error {
	if (listUser == "") == (listGroup == "") {
		return fmt.Errorf("specify exactly one of --user or --group")
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	var mounts []adminrpc.Mount
	if listUser != "" {
		mounts, err = client.ListUserMounts(listUser)
	} else {
		mounts, err = client.ListGroupMounts(listGroup)
	}
	if err != nil {
		return fmt.Errorf("failed to list mounts: %w", err)
	}

	return cmdutil.PrintOutput(os.Stdout, mounts, len(mounts) == 0, "No mount points found.", MountList(mounts))
}
