package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/fusion-backcast/pkg/constants"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected %q", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.MaxRequestSize != constants.DefaultMaxRequestSizeBytes {
		t.Errorf("MaxRequestSize = %d, expected %d", cfg.MaxRequestSize, constants.DefaultMaxRequestSizeBytes)
	}
}

func TestLoadConfigParsesFile(t *testing.T) {
	content := `address: ":9090"
maxRequestSize: 1048576
logging:
  level: debug
  format: console
`
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("Address = %q, expected :9090", cfg.Address)
	}
	if cfg.MaxRequestSize != 1048576 {
		t.Errorf("MaxRequestSize = %d, expected 1048576", cfg.MaxRequestSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", cfg.Logging.Level)
	}
}

func TestLoadConfigAppliesDefaultsForZeroValues(t *testing.T) {
	content := `maxRequestSize: 0
`
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default", cfg.Address)
	}
	if cfg.MaxRequestSize != constants.DefaultMaxRequestSizeBytes {
		t.Errorf("MaxRequestSize = %d, expected default", cfg.MaxRequestSize)
	}
}

func TestLoadConfigRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte("address: [unterminated"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
