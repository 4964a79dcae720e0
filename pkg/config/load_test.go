package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entitrack.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfigFile(t, `
environment: Development
base_entitrack_endpoint: http://localhost:5000
debug: true
timeouts:
  request: 5s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Environment != Development {
		t.Errorf("Environment = %q, want %q", cfg.Environment, Development)
	}
	if cfg.BaseEndpoint != "http://localhost:5000" {
		t.Errorf("BaseEndpoint = %q", cfg.BaseEndpoint)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Timeouts.Request != 5*time.Second {
		t.Errorf("Timeouts.Request = %v, want 5s", cfg.Timeouts.Request)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
environment: Development
base_entitrack_endpoint: http://localhost:5000
`)
	t.Setenv("ENTITRACK_BASE_ENTITRACK_ENDPOINT", "http://10.0.0.7:3000")
	t.Setenv("ENTITRACK_TIMEOUTS_REQUEST", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseEndpoint != "http://10.0.0.7:3000" {
		t.Errorf("BaseEndpoint = %q, want env value", cfg.BaseEndpoint)
	}
	if cfg.Timeouts.Request != 250*time.Millisecond {
		t.Errorf("Timeouts.Request = %v, want 250ms", cfg.Timeouts.Request)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("ENTITRACK_HOST_BASE_ADDRESS", "https://app.example.com/UI/")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Environment != Production {
		t.Errorf("Environment = %q, want %q", cfg.Environment, Production)
	}
	if cfg.HostBaseAddress != "https://app.example.com/UI/" {
		t.Errorf("HostBaseAddress = %q", cfg.HostBaseAddress)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "environment: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
