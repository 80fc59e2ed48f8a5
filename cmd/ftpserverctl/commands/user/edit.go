package user

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/internal/cli/prompt"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var (
	editGroups   string
	editDisabled bool
)

var editCmd = &cobra.Command{
	Use:   "edit <username>",
	Short: "Edit a user",
	Long: `Edit an existing user on the ftpserverd admin API.

When run without flags, opens an interactive editor for the user's groups.

Examples:
  # Edit a user interactively
  ftpserverctl user edit alice

  # Update group membership directly
  ftpserverctl user edit alice --groups editors,viewers

  # Disable a user
  ftpserverctl user edit alice --disabled`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editGroups, "groups", "", "Comma-separated group names")
	editCmd.Flags().BoolVar(&editDisabled, "disabled", false, "Disable the user")
}

func runEdit(cmd *cobra.Command, args []string) error {
	username := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	hasFlags := cmd.Flags().Changed("groups") || cmd.Flags().Changed("disabled")
	if !hasFlags {
		return runEditInteractive(client, username)
	}

	req := &adminrpc.UpdateUserRequest{}
	hasUpdate := false

	if cmd.Flags().Changed("groups") {
		groups := cmdutil.ParseCommaSeparatedList(editGroups)
		req.Groups = &groups
		hasUpdate = true
	}
	if cmd.Flags().Changed("disabled") {
		req.Disabled = &editDisabled
		hasUpdate = true
	}

	if !hasUpdate {
		return fmt.Errorf("no fields specified. Use --groups or --disabled")
	}

	updated, err := client.UpdateUser(username, req)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, updated, fmt.Sprintf("User '%s' updated successfully", updated.Name))
}

func runEditInteractive(client *adminrpc.Client, username string) error {
	current, err := client.GetUser(username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	fmt.Printf("Editing user: %s\n", current.Name)
	fmt.Println("Press Enter to keep current value, or enter a new value.")
	fmt.Println("Press Ctrl+C to abort.")
	fmt.Println()

	req := &adminrpc.UpdateUserRequest{}
	hasUpdate := false

	currentGroups := ""
	if len(current.Groups) > 0 {
		currentGroups = fmt.Sprintf("%v", current.Groups)
	}
	newGroups, err := prompt.Input("Groups (comma-separated)", currentGroups)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if newGroups != currentGroups {
		groups := cmdutil.ParseCommaSeparatedList(newGroups)
		req.Groups = &groups
		hasUpdate = true
	}

	if !hasUpdate {
		fmt.Println("No changes made.")
		return nil
	}

	updated, err := client.UpdateUser(username, req)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, updated, fmt.Sprintf("User '%s' updated successfully", updated.Name))
}
