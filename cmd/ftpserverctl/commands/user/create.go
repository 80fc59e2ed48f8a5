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
	createUsername string
	createPassword string
	createMethods  string
	createGroups   string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Long: `Create a new user on the ftpserverd admin API.

When run without flags, prompts interactively for the required fields.

Examples:
  # Create a user interactively
  ftpserverctl user create

  # Create a user with flags
  ftpserverctl user create --username alice --password secret --method password

  # Create a user in groups
  ftpserverctl user create --username alice --password secret --groups editors,viewers`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createUsername, "username", "u", "", "Username")
	createCmd.Flags().StringVarP(&createPassword, "password", "p", "", "Password")
	createCmd.Flags().StringVar(&createMethods, "method", "password", "Comma-separated authentication methods (password,token)")
	createCmd.Flags().StringVar(&createGroups, "groups", "", "Comma-separated group names")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	username := createUsername
	if username == "" {
		username, err = prompt.InputRequired("Username")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	password := createPassword
	if password == "" {
		password, err = prompt.PasswordWithConfirmation("Password", "Confirm password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	req := &adminrpc.CreateUserRequest{
		Name:     username,
		Password: password,
		Methods:  cmdutil.ParseCommaSeparatedList(createMethods),
		Groups:   cmdutil.ParseCommaSeparatedList(createGroups),
	}

	created, err := client.CreateUser(req)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, created, fmt.Sprintf("User '%s' created successfully", created.Name))
}
