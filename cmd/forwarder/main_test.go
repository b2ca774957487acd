package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with an invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("FORWARDER_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingCredentials verifies run fails when Datadog keys are absent.
func TestRun_MissingCredentials(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
mqtt:
  broker:
    host: "127.0.0.1"
    port: 1883
datadog:
  api_key: ""
  app_key: ""
logging:
  level: info
  format: text
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("FORWARDER_CONFIG", configPath)
	// Make sure ambient credentials don't rescue the config.
	t.Setenv("FORWARDER_DATADOG_API_KEY", "")
	t.Setenv("FORWARDER_DATADOG_APP_KEY", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail without Datadog credentials")
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("FORWARDER_CONFIG", "")
	if got := getConfigPath(); got != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want default %q", got, defaultConfigPath)
	}

	t.Setenv("FORWARDER_CONFIG", "/etc/bridge/config.yaml")
	if got := getConfigPath(); got != "/etc/bridge/config.yaml" {
		t.Errorf("getConfigPath() = %q, want env override", got)
	}
}
