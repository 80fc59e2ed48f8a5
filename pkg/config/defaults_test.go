package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_ShutdownTimeout(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
}

func TestApplyDefaults_Auth(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Auth.UsersPath == "" {
		t.Errorf("Expected a default users path, got empty")
	}
	if cfg.Auth.GroupsPath == "" {
		t.Errorf("Expected a default groups path, got empty")
	}
	if cfg.Auth.ReloadDebounce != 2*time.Second {
		t.Errorf("Expected default reload debounce 2s, got %v", cfg.Auth.ReloadDebounce)
	}
}

func TestApplyDefaults_ACME(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.ACME.DirectoryURL == "" {
		t.Errorf("Expected a default ACME directory URL, got empty")
	}
	if cfg.ACME.RenewBefore != 30*24*time.Hour {
		t.Errorf("Expected default renew_before 30 days, got %v", cfg.ACME.RenewBefore)
	}
}

func TestApplyDefaults_Autoban(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Autoban.Window != time.Minute {
		t.Errorf("Expected default autoban window 1m, got %v", cfg.Autoban.Window)
	}
	if cfg.Autoban.Threshold != 5 {
		t.Errorf("Expected default autoban threshold 5, got %d", cfg.Autoban.Threshold)
	}
	if cfg.Autoban.BanDuration != time.Hour {
		t.Errorf("Expected default ban duration 1h, got %v", cfg.Autoban.BanDuration)
	}
}

func TestApplyDefaults_WebUI(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.WebUI.Port != 8443 {
		t.Errorf("Expected default webui port 8443, got %d", cfg.WebUI.Port)
	}
	if cfg.WebUI.JWTTTL != 15*time.Minute {
		t.Errorf("Expected default JWT TTL 15m, got %v", cfg.WebUI.JWTTTL)
	}
}

func TestApplyDefaults_Admin(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Admin.Username != "admin" {
		t.Errorf("Expected default admin username 'admin', got %q", cfg.Admin.Username)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "DEBUG", Format: "json", Output: "/var/log/ftpserverd.log"},
	}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected explicit log level 'DEBUG' to be preserved, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected explicit log format 'json' to be preserved, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "/var/log/ftpserverd.log" {
		t.Errorf("Expected explicit log output to be preserved, got %q", cfg.Logging.Output)
	}
}

func TestGetDefaultConfig_HasOneListener(t *testing.T) {
	cfg := GetDefaultConfig()
	if len(cfg.Listeners) != 1 {
		t.Fatalf("Expected exactly one default listener, got %d", len(cfg.Listeners))
	}
	if cfg.Listeners[0].Address != "0.0.0.0:21" {
		t.Errorf("Expected default listener address 0.0.0.0:21, got %q", cfg.Listeners[0].Address)
	}
}
