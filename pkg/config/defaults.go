package config

import (
	"path/filepath"
	"strings"
	"time"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields, called after loading configuration from file and environment.
//
// Default strategy: zero values (0, "", false, nil) are replaced with
// defaults; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyShutdownDefaults(cfg)
	applyAuthDefaults(&cfg.Auth)
	applyACMEDefaults(&cfg.ACME)
	applyImpersonationDefaults(&cfg.Impersonation)
	applyAutobanDefaults(&cfg.Autoban)
	applyMetricsDefaults(&cfg.Metrics)
	applyWebUIDefaults(&cfg.WebUI)
	applyAdminDefaults(&cfg.Admin)

	// Listeners have no sensible default address; the operator must
	// configure at least one (Validate enforces this).
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
}

func applyShutdownDefaults(cfg *Config) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

func applyAuthDefaults(cfg *AuthConfig) {
	dir := getConfigDir()
	if cfg.UsersPath == "" {
		cfg.UsersPath = filepath.Join(dir, "users.xml")
	}
	if cfg.GroupsPath == "" {
		cfg.GroupsPath = filepath.Join(dir, "groups.xml")
	}
	if cfg.ReloadDebounce == 0 {
		cfg.ReloadDebounce = 2 * time.Second
	}
}

func applyACMEDefaults(cfg *ACMEConfig) {
	if cfg.DirectoryURL == "" {
		cfg.DirectoryURL = "https://acme-v02.api.letsencrypt.org/directory"
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = filepath.Join(getConfigDir(), "acme")
	}
	if cfg.AccountKeyPath == "" {
		cfg.AccountKeyPath = filepath.Join(cfg.CacheDir, "account.key")
	}
	if cfg.RenewBefore == 0 {
		cfg.RenewBefore = 30 * 24 * time.Hour
	}
}

func applyImpersonationDefaults(cfg *ImpersonationConfig) {
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 4
	}
}

func applyAutobanDefaults(cfg *AutobanConfig) {
	if cfg.Window == 0 {
		cfg.Window = time.Minute
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = 5
	}
	if cfg.BanDuration == 0 {
		cfg.BanDuration = time.Hour
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyWebUIDefaults(cfg *WebUIConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8443
	}
	if cfg.TokenDBPath == "" {
		cfg.TokenDBPath = filepath.Join(getConfigDir(), "tokens.db")
	}
	if cfg.JWTTTL == 0 {
		cfg.JWTTTL = 15 * time.Minute
	}
}

func applyAdminDefaults(cfg *AdminConfig) {
	if cfg.Username == "" {
		cfg.Username = "admin"
	}
}

// GetDefaultConfig returns a Config with every field set to its default
// value and one listener bound to the standard FTP control port.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Listeners: []ListenerConfig{{Address: "0.0.0.0:21"}},
	}
	ApplyDefaults(cfg)
	return cfg
}
