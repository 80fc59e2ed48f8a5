package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const initTemplate = `# FTP server configuration file
# Generated by 'ftpserverd init'. Precedence: flags > FTPSRV_* env vars >
# this file > built-in defaults.

logging:
  level: "INFO"
  format: "text"
  output: "stdout"

shutdown_timeout: 30s

listeners:
  - address: "0.0.0.0:21"

auth:
  users_path: "%s"
  groups_path: "%s"

acme:
  enabled: false

autoban:
  enabled: true

metrics:
  enabled: false

webui:
  enabled: false

admin:
  username: "admin"
`

// InitConfig writes a sample configuration file to the default location
// (or overwrites it if force is true), alongside empty users.xml/
// groups.xml the auth store can load on first run.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	usersPath := filepath.Join(dir, "users.xml")
	groupsPath := filepath.Join(dir, "groups.xml")

	content := fmt.Sprintf(initTemplate, usersPath, groupsPath)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
