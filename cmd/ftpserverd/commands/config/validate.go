package config

import (
	"fmt"

	"github.com/marmos91/ftpserver/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate an ftpserverd configuration file without starting
the server.

Examples:
  ftpserverd config validate
  ftpserverd config validate --config /etc/ftpserverd/config.yaml`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	fmt.Println("Configuration is valid")
	return nil
}
