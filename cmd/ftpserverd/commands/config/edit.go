package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/marmos91/ftpserver/pkg/config"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	Long: `Open the ftpserverd configuration file in the editor named by
$EDITOR (falls back to vi), then validate it once the editor exits.

Examples:
  ftpserverd config edit
  ftpserverd config edit --config /etc/ftpserverd/config.yaml`,
	RunE: runConfigEdit,
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	editProc := exec.Command(editor, path)
	editProc.Stdin = os.Stdin
	editProc.Stdout = os.Stdout
	editProc.Stderr = os.Stderr
	if err := editProc.Run(); err != nil {
		return fmt.Errorf("failed to run editor %q: %w", editor, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("configuration is now invalid: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration is now invalid: %w", err)
	}

	fmt.Println("Configuration is valid")
	return nil
}
