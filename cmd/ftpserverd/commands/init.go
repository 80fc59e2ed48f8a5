package commands

import (
	"fmt"

	"github.com/marmos91/ftpserver/pkg/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample ftpserverd configuration file.

The configuration file is always created at the default location,
$XDG_CONFIG_HOME/ftpserverd/config.yaml; --config is not used by this command.

Examples:
  # Initialize with default location
  ftpserverd init

  # Force overwrite existing config
  ftpserverd init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, err := config.InitConfig(initForce)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Add at least one user: ftpserverd user add <username>")
	fmt.Printf("  3. Start the server with: ftpserverd start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  If the admin webui is enabled, set a JWT secret of at least 32")
	fmt.Println("  characters; the generated file does not set one:")
	fmt.Println("    export FTPSRV_WEBUI_JWT_SECRET=$(openssl rand -hex 32)")

	return nil
}
