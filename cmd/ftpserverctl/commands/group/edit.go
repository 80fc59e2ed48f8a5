package group

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/internal/cli/prompt"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var (
	editRateLimit      int64
	editSessionLimit   int64
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a group",
	Long: `Edit an existing group's limits on the ftpserverd admin API.

When run without flags, opens an interactive editor to modify group properties.
When flags are provided, only the specified fields are updated.

Examples:
  # Edit group interactively
  ftpserverctl group edit editors

  # Update the rate limit directly
  ftpserverctl group edit editors --rate-limit 1048576

  # Update the session cap
  ftpserverctl group edit editors --session-limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().Int64Var(&editRateLimit, "rate-limit", 0, "Default byte-rate limit for members, in bytes/sec")
	editCmd.Flags().Int64Var(&editSessionLimit, "session-limit", 0, "Default concurrent session cap for members")
}

func runEdit(cmd *cobra.Command, args []string) error {
	name := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	hasFlags := cmd.Flags().Changed("rate-limit") || cmd.Flags().Changed("session-limit")

	if !hasFlags {
		return runEditInteractive(client, name)
	}

	req := &adminrpc.UpdateGroupRequest{}
	hasUpdate := false

	if cmd.Flags().Changed("rate-limit") {
		req.RateLimitBytesPerSec = &editRateLimit
		hasUpdate = true
	}
	if cmd.Flags().Changed("session-limit") {
		req.SessionCountLimit = &editSessionLimit
		hasUpdate = true
	}

	if !hasUpdate {
		return fmt.Errorf("no fields specified. Use --rate-limit or --session-limit")
	}

	group, err := client.UpdateGroup(name, req)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, group, fmt.Sprintf("Group '%s' updated successfully", group.Name))
}

func runEditInteractive(client *adminrpc.Client, name string) error {
	current, err := client.GetGroup(name)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}

	fmt.Printf("Editing group: %s\n", current.Name)
	fmt.Println("Press Enter to keep current value, or enter a new value.")
	fmt.Println("Press Ctrl+C to abort.")
	fmt.Println()

	req := &adminrpc.UpdateGroupRequest{}
	hasUpdate := false

	currentRateLimit := fmt.Sprintf("%d", current.RateLimitBytesPerSec)
	newRateLimit, err := prompt.Input("Rate limit (bytes/sec)", currentRateLimit)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if newRateLimit != currentRateLimit {
		var v int64
		if _, err := fmt.Sscanf(newRateLimit, "%d", &v); err == nil {
			req.RateLimitBytesPerSec = &v
			hasUpdate = true
		}
	}

	currentSessionLimit := fmt.Sprintf("%d", current.SessionCountLimit)
	newSessionLimit, err := prompt.Input("Session limit", currentSessionLimit)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if newSessionLimit != currentSessionLimit {
		var v int64
		if _, err := fmt.Sscanf(newSessionLimit, "%d", &v); err == nil {
			req.SessionCountLimit = &v
			hasUpdate = true
		}
	}

	if !hasUpdate {
		fmt.Println("No changes made.")
		return nil
	}

	group, err := client.UpdateGroup(name, req)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, group, fmt.Sprintf("Group '%s' updated successfully", group.Name))
}
