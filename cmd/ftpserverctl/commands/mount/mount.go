// Package mount implements mount point management commands for
// ftpserverctl. A mount point binds a client-visible virtual path to a
// native filesystem path with an access policy, and is attached either
// to a user directly or to a group its members inherit.
package mount

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for mount point management.
var Cmd = &cobra.Command{
	Use:   "mount",
	Short: "Mount point management",
	Long: `Manage TVFS mount points on the ftpserverd admin API.

Every mount command takes exactly one of --user or --group, naming the
owner the mount point is attached to.

Examples:
  # List a user's mount points
  ftpserverctl mount list --user alice

  # List a group's mount points
  ftpserverctl mount list --group editors

  # Add a mount point to a user
  ftpserverctl mount create --user alice --virtual /home --native /srv/ftp/alice --access read-write

  # Remove a mount point from a group
  ftpserverctl mount delete --group editors --virtual /shared`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(deleteCmd)
}
