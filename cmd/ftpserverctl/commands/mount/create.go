package mount

import (
	"fmt"
	"os"

	"github.com/marmos91/ftpserver/cmd/ftpserverctl/cmdutil"
	"github.com/marmos91/ftpserver/pkg/adminrpc"
	"github.com/spf13/cobra"
)

var (
	createUser       string
	createGroup      string
	createVirtual    string
	createNative     string
	createAccess     string
	createRecursion  string
	createAutocreate bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a mount point",
	Long: `Add a mount point to a user or group on the ftpserverd admin API.

Examples:
  # Mount a user's home directory
  ftpserverctl mount create --user alice --virtual /home --native /srv/ftp/alice --access read-write

  # Mount a shared directory read-only through a group
  ftpserverctl mount create --group viewers --virtual /public --native /srv/ftp/public --access read-only`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createUser, "user", "", "Attach the mount to this user")
	createCmd.Flags().StringVar(&createGroup, "group", "", "Attach the mount to this group")
	createCmd.Flags().StringVar(&createVirtual, "virtual", "", "Client-visible virtual path, e.g. /home (required)")
	createCmd.Flags().StringVar(&createNative, "native", "", "Native backend path, may contain %u/%g placeholders (required)")
	createCmd.Flags().StringVar(&createAccess, "access", "read-only", "Access policy (read-only|read-write)")
	createCmd.Flags().StringVar(&createRecursion, "recursion", "recursive", "Recursion policy (recursive|non-recursive)")
	createCmd.Flags().BoolVar(&createAutocreate, "autocreate", false, "Create the native directory on first use if missing")
	_ = createCmd.MarkFlagRequired("virtual")
	_ = createCmd.MarkFlagRequired("native")
}

func runCreate(cmd *cobra.Command, args []string) error {
	if (createUser == "") == (createGroup == "") {
		return fmt.Errorf("specify exactly one of --user or --group")
	}

	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := &adminrpc.CreateMountRequest{
		Virtual:    createVirtual,
		Native:     createNative,
		Access:     createAccess,
		Recursion:  createRecursion,
		Autocreate: createAutocreate,
	}

	var mount *adminrpc.Mount
	if createUser != "" {
		mount, err = client.CreateUserMount(createUser, req)
	} else {
		mount, err = client.CreateGroupMount(createGroup, req)
	}
	if err != nil {
		return fmt.Errorf("failed to create mount: %w", err)
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, mount, fmt.Sprintf("Mount point '%s' created successfully", mount.Virtual))
}
