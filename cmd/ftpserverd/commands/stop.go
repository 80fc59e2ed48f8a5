package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var stopPidFile string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop a running ftpserverd daemon",
	Long: `Send SIGTERM to the daemon recorded in the PID file and wait for it
to exit gracefully.

Examples:
  ftpserverd stop
  ftpserverd stop --pid-file /var/run/ftpserverd.pid`,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().StringVar(&stopPidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/ftpserverd/ftpserverd.pid)")
}

func runStop(cmd *cobra.Command, args []string) error {
	pidPath := stopPidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	data, err := os.ReadFile(pidPath)
	if err != nil {
		return fmt.Errorf("failed to read PID file %s: %w", pidPath, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("invalid PID in %s: %w", pidPath, err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to signal process %d: %w", pid, err)
	}

	for i := 0; i < 30; i++ {
		if process.Signal(syscall.Signal(0)) != nil {
			fmt.Printf("ftpserverd (pid %d) stopped\n", pid)
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}

	fmt.Printf("Sent SIGTERM to ftpserverd (pid %d); it did not exit within 6s\n", pid)
	return nil
}
