// Package commands implements the ftpserverctl command tree: an admin
// CLI that drives ftpserverd's webui control API over HTTP.
package commands

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/cmd/ftpserverctl/commands/context"
	"github.com/marmos91/ftpserver/cmd/ftpserverctl/commands/group"
	"github.com/marmos91/ftpserver/cmd/ftpserverctl/commands/mount"
	"github.com/marmos91/ftpserver/cmd/ftpserverctl/commands/user"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// RootCmd is the ftpserverctl entrypoint command.
var RootCmd = &cobra.Command{
	Use:     "ftpserverctl",
	Short:   "Administer an ftpserverd instance",
	Version: Version,
	Long: `ftpserverctl is the admin CLI for ftpserverd.

It talks to ftpserverd's webui control API to manage users, groups, and
mount points, without ever touching users.xml/groups.xml directly.`,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cmdutil.Flags.ServerURL, "server", "", "Admin API URL (overrides stored context)")
	RootCmd.PersistentFlags().StringVar(&cmdutil.Flags.Token, "token", "", "Bearer token (overrides stored credentials)")
	RootCmd.PersistentFlags().StringVarP(&cmdutil.Flags.Output, "output", "o", "table", "Output format (table|json|yaml)")
	RootCmd.PersistentFlags().BoolVar(&cmdutil.Flags.NoColor, "no-color", false, "Disable colored output")
	RootCmd.PersistentFlags().BoolVarP(&cmdutil.Flags.Verbose, "verbose", "v", false, "Verbose output")

	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(completionCmd)
	RootCmd.AddCommand(context.Cmd)
	RootCmd.AddCommand(user.Cmd)
	RootCmd.AddCommand(group.Cmd)
	RootCmd.AddCommand(mount.Cmd)
}

// Execute runs the ftpserverctl command tree.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
