package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldXDG := os.Getenv("XDG_CONFIG_HOME")
	_ = os.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Cleanup(func() {
		if oldXDG != "" {
			_ = os.Setenv("XDG_CONFIG_HOME", oldXDG)
		} else {
			_ = os.Unsetenv("XDG_CONFIG_HOME")
		}
	})
	return tmpDir
}

func TestInitConfig_Success(t *testing.T) {
	withTempConfigDir(t)

	configPath, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file was not created at %s", configPath)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"# FTP server configuration file",
		"logging:",
		"listeners:",
		"auth:",
		"acme:",
		"admin:",
	}
	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing section: %s", section)
		}
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		t.Fatalf("Generated config file is not valid YAML: %v", err)
	}
}

func TestInitConfig_RefusesOverwriteWithoutForce(t *testing.T) {
	withTempConfigDir(t)

	if _, err := InitConfig(false); err != nil {
		t.Fatalf("first InitConfig failed: %v", err)
	}
	if _, err := InitConfig(false); err == nil {
		t.Fatal("Expected InitConfig to refuse overwriting an existing config without force")
	}
}

func TestInitConfig_ForceOverwrites(t *testing.T) {
	withTempConfigDir(t)

	path1, err := InitConfig(false)
	if err != nil {
		t.Fatalf("first InitConfig failed: %v", err)
	}
	path2, err := InitConfig(true)
	if err != nil {
		t.Fatalf("InitConfig with force failed: %v", err)
	}
	if path1 != path2 {
		t.Errorf("Expected InitConfig to reuse the same path, got %q and %q", path1, path2)
	}
}

func TestInitConfig_LoadableAfterwards(t *testing.T) {
	withTempConfigDir(t)

	configPath, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load of generated config failed: %v", err)
	}
	if len(cfg.Listeners) != 1 || cfg.Listeners[0].Address != "0.0.0.0:21" {
		t.Errorf("Expected generated config to have default listener, got %v", cfg.Listeners)
	}
}

func TestInitConfig_CreatesConfigDir(t *testing.T) {
	tmpDir := withTempConfigDir(t)

	if _, err := InitConfig(false); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "ftpserverd")); err != nil {
		t.Errorf("Expected config directory to be created: %v", err)
	}
}
