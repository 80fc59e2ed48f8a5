package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_NoListeners(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Listeners = nil

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error when no listeners are configured")
	}
}

func TestValidate_ListenerMissingAddress(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Listeners = []ListenerConfig{{}}

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for listener with empty address")
	}
}

func TestValidate_ImplicitFTPSRequiresTLS(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Listeners = []ListenerConfig{{Address: "0.0.0.0:990", Implicit: true}}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for implicit FTPS listener without tls")
	}
	if !strings.Contains(err.Error(), "implicit FTPS requires tls") {
		t.Errorf("Expected implicit-FTPS-requires-TLS error, got: %v", err)
	}
}

func TestValidate_InvalidWebUIPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.WebUI.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_ShortJWTSecretRejected(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.WebUI.JWTSecret = "too-short"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for a JWT secret shorter than 32 bytes")
	}
	if !strings.Contains(err.Error(), "min") {
		t.Errorf("Expected 'min' validation error, got: %v", err)
	}
}
