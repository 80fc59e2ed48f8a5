package user

import (
	"fmt"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/internal/cli/prompt"
	"github.com/spf13/cobra"
)

var resetPassword string

var passwordCmd = &cobra.Command{
	Use:   "password <username>",
	Short: "Reset a user's password",
	Long: `Reset a user's password (admin operation).

Examples:
  # Reset password interactively
  ftpserverctl user password alice

  # Reset password with flag (less secure)
  ftpserverctl user password alice --password newsecret`,
	Args: cobra.ExactArgs(1),
	RunE: runPassword,
}

func init() {
	passwordCmd.Flags().StringVarP(&resetPassword, "password", "p", "", "New password (prompts if not provided)")
}

func runPassword(cmd *cobra.Command, args []string) error {
	username := args[0]

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	password := resetPassword
	if password == "" {
		password, err = prompt.PasswordWithConfirmation("New password", "Confirm password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	if err := client.ResetUserPassword(username, password); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Password reset for user '%s'", username))
	return nil
}

var (
	currentPassword string
	newPassword     string
)

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change your own password",
	Long: `Change the password of the currently authenticated user.

Examples:
  # Change password interactively
  ftpserverctl user change-password`,
	RunE: runChangePassword,
}

func init() {
	changePasswordCmd.Flags().StringVar(&currentPassword, "current-password", "", "Current password (prompts if not provided)")
	changePasswordCmd.Flags().StringVar(&newPassword, "new-password", "", "New password (prompts if not provided)")
}

func runChangePassword(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	current := currentPassword
	if current == "" {
		current, err = prompt.Password("Current password")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	next := newPassword
	if next == "" {
		next, err = prompt.PasswordWithConfirmation("New password", "Confirm new password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	if _, err := client.ChangeOwnPassword(current, next); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	cmdutil.PrintSuccess("Password changed successfully")
	return nil
}
