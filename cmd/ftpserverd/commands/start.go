package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/marmos91/ftpserver/internal/logger"
	"github.com/marmos91/ftpserver/internal/telemetry"
	"github.com/marmos91/ftpserver/pkg/auth"
	"github.com/marmos91/ftpserver/pkg/autoban"
	"github.com/marmos91/ftpserver/pkg/config"
	"github.com/marmos91/ftpserver/pkg/metrics"
	"github.com/marmos91/ftpserver/pkg/webui"
	"github.com/spf13/cobra"
)

var (
	foreground   bool
	startPidFile string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ftpserverd daemon",
	Long: `Start the ftpserverd FTP/FTPS server.

Loads the auth store and starts the admin webui and the metrics server
when they are enabled. The listeners configured under "listeners" in the
config file are logged; this command does not open them or accept FTP
connections.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/ftpserverd/config.yaml.

Examples:
  # Start with default config location
  ftpserverd start

  # Start with a custom config file
  ftpserverd start --config /etc/ftpserverd/config.yaml

  # Override the log level via environment variable
  FTPSRV_LOGGING_LEVEL=DEBUG ftpserverd start`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", true, "Run in the foreground (process supervisors should use this)")
	startCmd.Flags().StringVar(&startPidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/ftpserverd/ftpserverd.pid)")
}

func runStart(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()

	if configPath == "" && !config.DefaultConfigExists() {
		return fmt.Errorf("no configuration file found at %s; run 'ftpserverd init' first", config.GetDefaultConfigPath())
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "ftpserverd",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	pidPath := startPidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}
	if err := writePidFile(pidPath); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer os.Remove(pidPath)

	authStore := auth.NewStore(cfg.Auth.UsersPath, cfg.Auth.GroupsPath)
	if err := authStore.Load(); err != nil {
		return fmt.Errorf("failed to load auth store: %w", err)
	}
	logger.Info("auth store loaded", "users_path", cfg.Auth.UsersPath, "groups_path", cfg.Auth.GroupsPath)

	if cfg.Auth.ReloadDebounce > 0 {
		go func() {
			watchLogger := logger.With("component", "auth")
			if err := authStore.WatchForChanges(ctx, watchLogger, cfg.Auth.ReloadDebounce); err != nil {
				logger.Error("auth store watcher stopped", "error", err)
			}
		}()
	}

	var autobanner *autoban.Autobanner
	if cfg.Autoban.Enabled {
		autobanner = autoban.New(autoban.Config{
			Window:      cfg.Autoban.Window,
			Threshold:   cfg.Autoban.Threshold,
			BanDuration: cfg.Autoban.BanDuration,
		})
		defer autobanner.Close()
		logger.Info("autoban enabled", "threshold", cfg.Autoban.Threshold, "window", cfg.Autoban.Window)
	}

	var metricsInstance *metrics.Metrics
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsInstance = metrics.New()
		if autobanner != nil {
			autobanner.Subscribe(banMetricsListener{m: metricsInstance})
		}
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: metricsInstance.Handler(),
		}
		go func() {
			logger.Info("metrics server listening", "port", cfg.Metrics.Port)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	var webuiServer *webui.Server
	if cfg.WebUI.Enabled {
		webuiServer, err = webui.NewServer(webui.Config{
			Port:        cfg.WebUI.Port,
			JWTSecret:   cfg.WebUI.JWTSecret,
			JWTTTL:      cfg.WebUI.JWTTTL,
			TokenDBPath: cfg.WebUI.TokenDBPath,
		}, authStore, autobanRecorder(autobanner), metricsInstance)
		if err != nil {
			return fmt.Errorf("failed to construct admin webui: %w", err)
		}

		go func() {
			logger.Info("admin webui listening", "port", cfg.WebUI.Port)
			if err := webuiServer.Start(ctx); err != nil && err != http.ErrServerClosed {
				logger.Error("admin webui error", "error", err)
			}
		}()
	}

	logger.Info("ftpserverd started", "listeners", len(cfg.Listeners))
	for _, l := range cfg.Listeners {
		mode := "explicit FTPS"
		if l.Implicit {
			mode = "implicit FTPS"
		}
		if l.TLS == nil {
			mode = "plaintext"
		}
		logger.Info("listener configured", "address", l.Address, "mode", mode)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	signal.Stop(sigChan)
	logger.Info("shutdown signal received, initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if webuiServer != nil {
		if err := webuiServer.Stop(shutdownCtx); err != nil {
			logger.Error("admin webui shutdown error", "error", err)
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}

	logger.Info("ftpserverd stopped gracefully")
	return nil
}

func writePidFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

// banMetricsListener records a metric each time the autobanner bans an IP.
type banMetricsListener struct {
	m *metrics.Metrics
}

func (b banMetricsListener) OnBanned(ip string, until time.Time) {
	b.m.RecordBan()
}

// autobanRecorder returns ab as a webui.AutobanRecorder, or nil if autoban
// is disabled; a plain nil *autoban.Autobanner would not compare equal to a
// nil interface once boxed, so this indirection keeps webui.NewServer happy
// either way.
func autobanRecorder(ab *autoban.Autobanner) webui.AutobanRecorder {
	if ab == nil {
		return nil
	}
	return ab
}
