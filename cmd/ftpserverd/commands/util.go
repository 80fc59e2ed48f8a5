package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marmos91/ftpserver/internal/logger"
	"github.com/marmos91/ftpserver/pkg/config"
	"github.com/spf13/cobra"
)

// userCobraCmd wraps UserCommand's flag-based subcommand dispatch in a thin
// cobra.Command so it can be attached to the root tree like the rest of
// ftpserverd's commands, while the subcommand parsing itself stays in the
// flag.FlagSet style used for local store-management commands.
func userCobraCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "user <subcommand> [options]",
		Short:              "Manage local users in the auth store",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewUserCommand().Run(args)
		},
	}
}

// groupCobraCmd is the group-management analogue of userCobraCmd.
func groupCobraCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "group <subcommand> [options]",
		Short:              "Manage local groups in the auth store",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewGroupCommand().Run(args)
		},
	}
}

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// GetDefaultStateDir returns the default state directory path.
func GetDefaultStateDir() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "/tmp"
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "ftpserverd")
}

// GetDefaultPidFile returns the default PID file path.
func GetDefaultPidFile() string {
	return filepath.Join(GetDefaultStateDir(), "ftpserverd.pid")
}

// GetDefaultLogFile returns the default log file path for daemon mode.
func GetDefaultLogFile() string {
	return filepath.Join(GetDefaultStateDir(), "ftpserverd.log")
}
