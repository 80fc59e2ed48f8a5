package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/marmos91/ftpserver/internal/bytesize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the FTP server suite's static configuration: everything not
// already persisted in the auth store's users.xml/groups.xml or the ACME
// client's cert cache. This structure captures:
//   - Logging and telemetry configuration
//   - FTP/FTPS listener addresses and TLS settings
//   - The auth store's on-disk location and hot-reload behavior
//   - ACME client/renewal settings
//   - Impersonation channel settings
//   - Default rate/session limits and the autobanner's thresholds
//   - The admin WebUI's HTTP settings and token database
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (FTPSRV_*)
//  3. Configuration file (YAML or TOML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`

	// Listeners is the set of FTP/FTPS control-connection endpoints the
	// daemon binds.
	Listeners []ListenerConfig `mapstructure:"listeners" validate:"required,min=1,dive" yaml:"listeners"`

	// Auth configures the file-backed user/group store.
	Auth AuthConfig `mapstructure:"auth" yaml:"auth"`

	// ACME configures the certificate acquisition/renewal client.
	ACME ACMEConfig `mapstructure:"acme" yaml:"acme"`

	// Impersonation configures the child-process impersonation channel.
	Impersonation ImpersonationConfig `mapstructure:"impersonation" yaml:"impersonation"`

	// RateLimit holds the server-wide default rate/session caps applied
	// when a user or group record doesn't specify its own.
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`

	// Autoban configures the per-IP failed-login autobanner.
	Autoban AutobanConfig `mapstructure:"autoban" yaml:"autoban"`

	// Metrics contains Prometheus metrics server configuration.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// WebUI contains the admin HTTP API / token-issuance server settings.
	WebUI WebUIConfig `mapstructure:"webui" yaml:"webui"`

	// Admin contains initial admin user configuration for bootstrap.
	Admin AdminConfig `mapstructure:"admin" yaml:"admin"`
}

// ListenerConfig is one FTP/FTPS control-connection bind address.
type ListenerConfig struct {
	// Address is the host:port to bind, e.g. "0.0.0.0:21".
	Address string `mapstructure:"address" validate:"required" yaml:"address"`

	// Implicit enables implicit FTPS (TLS from connection start) instead
	// of explicit FTPS (plaintext then AUTH TLS).
	Implicit bool `mapstructure:"implicit" yaml:"implicit,omitempty"`

	// TLS configures the certificate this listener presents. May be nil
	// for a plaintext-only listener (AUTH TLS refused).
	TLS *TLSConfig `mapstructure:"tls" yaml:"tls,omitempty"`

	// PassiveHostOverride advertises this address for PASV/EPSV replies
	// instead of the listener's own bind address, for NAT traversal.
	PassiveHostOverride string `mapstructure:"passive_host_override" yaml:"passive_host_override,omitempty"`

	// PassivePortRange is "min-max", restricting passive data ports to a
	// firewall-friendly range. Empty means OS-assigned ephemeral ports.
	PassivePortRange string `mapstructure:"passive_port_range" validate:"omitempty" yaml:"passive_port_range,omitempty"`
}

// TLSConfig names the certificate source for a listener, matching
// pkg/certinfo's CertInfo source variants (inline PEM, file path, or a
// PKCS#11 URL), plus the minimum accepted TLS version.
type TLSConfig struct {
	// CertSource is "inline", "file", or "pkcs11".
	CertSource string `mapstructure:"cert_source" validate:"omitempty,oneof=inline file pkcs11" yaml:"cert_source"`

	// CertFile/KeyFile apply when CertSource is "file".
	CertFile string `mapstructure:"cert_file" yaml:"cert_file,omitempty"`
	KeyFile  string `mapstructure:"key_file" yaml:"key_file,omitempty"`

	// InlineCert/InlineKey apply when CertSource is "inline" (PEM text,
	// e.g. injected via environment variable in a container deployment).
	InlineCert string `mapstructure:"inline_cert" yaml:"inline_cert,omitempty"`
	InlineKey  string `mapstructure:"inline_key" yaml:"inline_key,omitempty"`

	// PKCS11URL applies when CertSource is "pkcs11" (RFC 7512 URL
	// resolved via github.com/ThalesIgnite/crypto11).
	PKCS11URL string `mapstructure:"pkcs11_url" yaml:"pkcs11_url,omitempty"`

	// MinVersion is "1.2" or "1.3". Default: "1.2".
	MinVersion string `mapstructure:"min_version" validate:"omitempty,oneof=1.2 1.3" yaml:"min_version,omitempty"`

	// AutoACME names the ACME-managed domain this listener should use
	// once pkg/acme has obtained and renewed it, superseding CertSource.
	AutoACME string `mapstructure:"auto_acme" yaml:"auto_acme,omitempty"`
}

// AuthConfig configures the file-backed user/group store.
type AuthConfig struct {
	// UsersPath/GroupsPath are the on-disk XML files.
	UsersPath  string `mapstructure:"users_path" validate:"required" yaml:"users_path"`
	GroupsPath string `mapstructure:"groups_path" validate:"required" yaml:"groups_path"`

	// ReloadDebounce is how long to wait after the last fsnotify event
	// before reloading, coalescing bursts of writes into one Load.
	ReloadDebounce time.Duration `mapstructure:"reload_debounce" yaml:"reload_debounce,omitempty"`
}

// ACMEConfig configures the ACME client and renewal daemon.
type ACMEConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// DirectoryURL is the ACME server's directory endpoint.
	DirectoryURL string `mapstructure:"directory_url" validate:"omitempty,url" yaml:"directory_url,omitempty"`

	// Contact is the account contact, e.g. "mailto:admin@example.com".
	Contact string `mapstructure:"contact" yaml:"contact,omitempty"`

	// Domains lists the identifiers to request a certificate for.
	Domains []string `mapstructure:"domains" yaml:"domains,omitempty"`

	// AccountKeyPath is where the ACME account's private key is cached.
	AccountKeyPath string `mapstructure:"account_key_path" yaml:"account_key_path,omitempty"`

	// CacheDir stores issued certificates/chains between restarts.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir,omitempty"`

	// RenewBefore is how far ahead of expiry the daemon starts renewing.
	RenewBefore time.Duration `mapstructure:"renew_before" yaml:"renew_before,omitempty"`
}

// ImpersonationConfig configures the child-process impersonation pool.
type ImpersonationConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// HelperPath is the impersonation helper binary to spawn.
	HelperPath string `mapstructure:"helper_path" yaml:"helper_path,omitempty"`

	// PoolSize is the maximum number of concurrently spawned helper
	// processes; the pool grows lazily up to this cap.
	PoolSize int `mapstructure:"pool_size" validate:"omitempty,min=1" yaml:"pool_size,omitempty"`
}

// RateLimitConfig holds server-wide default byte-rate and session caps.
type RateLimitConfig struct {
	// DefaultBytesPerSec is applied to a user/group with no rate limit
	// of its own. 0 means unlimited.
	DefaultBytesPerSec int64 `mapstructure:"default_bytes_per_sec" yaml:"default_bytes_per_sec,omitempty"`

	// DefaultSessionLimit caps concurrent sessions per user absent a
	// more specific limit. 0 means unlimited.
	DefaultSessionLimit int64 `mapstructure:"default_session_limit" yaml:"default_session_limit,omitempty"`
}

// AutobanConfig configures the per-IP failed-login autobanner.
type AutobanConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Window is how long a failed attempt counts toward the threshold.
	Window time.Duration `mapstructure:"window" yaml:"window,omitempty"`

	// Threshold is the number of failures within Window that bans an IP.
	Threshold int `mapstructure:"threshold" validate:"omitempty,min=1" yaml:"threshold,omitempty"`

	// BanDuration is how long an IP stays banned once triggered.
	BanDuration time.Duration `mapstructure:"ban_duration" yaml:"ban_duration,omitempty"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
type TelemetryConfig struct {
	Enabled    bool    `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string  `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure   bool    `mapstructure:"insecure" yaml:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// MetricsConfig configures the Prometheus metrics HTTP server.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// WebUIConfig configures the admin HTTP API and token database.
type WebUIConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// TokenDBPath is the SQLite file backing refresh-token issuance.
	TokenDBPath string `mapstructure:"token_db_path" yaml:"token_db_path,omitempty"`

	// JWTSecret signs issued access tokens.
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32" yaml:"jwt_secret,omitempty"`

	// JWTTTL is the lifetime of an issued access token.
	JWTTTL time.Duration `mapstructure:"jwt_ttl" yaml:"jwt_ttl,omitempty"`
}

// AdminConfig contains initial admin user configuration for bootstrap,
// used by 'ftpserverd init' to pre-configure the first admin user.
type AdminConfig struct {
	Username     string `mapstructure:"username" yaml:"username"`
	Email        string `mapstructure:"email" yaml:"email,omitempty"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		return GetDefaultConfig(), nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration with helpful error messages when the
// config file is missing.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  ftpserverd init\n\n"+
				"Or specify a custom config file:\n"+
				"  ftpserverd <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s\n\n"+
			"Create a sample configuration at the default location (%s) with:\n"+
			"  ftpserverd init",
			configPath, GetDefaultConfigPath())
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: config may embed a JWT secret or inline TLS key material.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("FTPSRV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
	)
}

// byteSizeDecodeHook converts strings/numbers to bytesize.ByteSize,
// enabling human-readable sizes like "1Gi", "500Mi", "100MB".
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// durationDecodeHook converts strings to time.Duration, enabling
// human-readable durations like "30s", "5m", "1h".
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path, preferring
// XDG_CONFIG_HOME, then ~/.config, then the current directory.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "ftpserverd")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ftpserverd")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for the
// init command).
func GetConfigDir() string {
	return getConfigDir()
}
