package group

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var (
	createName              string
	createRateLimit         int64
	createSessionCountLimit int64
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new group",
	Long: `Create a new group on the ftpserverd admin API.

Examples:
  # Create a group
  ftpserverctl group create --name editors

  # Create a group with a byte-rate limit
  ftpserverctl group create --name editors --rate-limit 1048576

  # Create a group with a session count cap
  ftpserverctl group create --name editors --session-limit 5`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "Group name (required)")
	createCmd.Flags().Int64Var(&createRateLimit, "rate-limit", 0, "Default byte-rate limit for members, in bytes/sec (0 = unlimited)")
	createCmd.Flags().Int64Var(&createSessionCountLimit, "session-limit", 0, "Default concurrent session cap for members (0 = unlimited)")
	_ = createCmd.MarkFlagRequired("name")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := &adminrpc.CreateGroupRequest{
		Name:                 createName,
		RateLimitBytesPerSec: createRateLimit,
		SessionCountLimit:    createSessionCountLimit,
	}

	group, err := client.CreateGroup(req)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, group, fmt.Sprintf("Group '%s' created successfully", group.Name))
}
