package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  broker:
    host: "broker.local"
    port: 8883
    tls: true
  event_topic: "homeassistant/events"
datadog:
  api_key: "key"
  app_key: "app"
  prefix: "ha.main_home"
  tags: "a:b,test:foo"
  flush_period_sec: 30
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want broker.local", cfg.MQTT.Broker.Host)
	}
	if !cfg.MQTT.Broker.TLS {
		t.Error("MQTT.Broker.TLS = false, want true")
	}
	if cfg.Datadog.Prefix != "ha.main_home" {
		t.Errorf("Datadog.Prefix = %q, want ha.main_home", cfg.Datadog.Prefix)
	}
	if cfg.Datadog.Tags != "a:b,test:foo" {
		t.Errorf("Datadog.Tags = %q", cfg.Datadog.Tags)
	}
	if got := cfg.FlushPeriod(); got != 30*time.Second {
		t.Errorf("FlushPeriod() = %v, want 30s", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
datadog:
  api_key: "key"
  app_key: "app"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Datadog.FlushPeriodSec != 60 {
		t.Errorf("FlushPeriodSec = %d, want default 60", cfg.Datadog.FlushPeriodSec)
	}
	if cfg.Datadog.Prefix != "hass.datadog" {
		t.Errorf("Prefix = %q, want default hass.datadog", cfg.Datadog.Prefix)
	}
	if cfg.Datadog.Tags != "" {
		t.Errorf("Tags = %q, want empty default", cfg.Datadog.Tags)
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port = %d, want default 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FORWARDER_DATADOG_API_KEY", "env-api-key")
	t.Setenv("FORWARDER_MQTT_HOST", "env-broker")
	t.Setenv("FORWARDER_MQTT_PORT", "2883")

	path := writeConfig(t, `
datadog:
  api_key: "file-api-key"
  app_key: "app"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Datadog.APIKey != "env-api-key" {
		t.Errorf("Datadog.APIKey = %q, want env override", cfg.Datadog.APIKey)
	}
	if cfg.MQTT.Broker.Host != "env-broker" {
		t.Errorf("MQTT.Broker.Host = %q, want env override", cfg.MQTT.Broker.Host)
	}
	if cfg.MQTT.Broker.Port != 2883 {
		t.Errorf("MQTT.Broker.Port = %d, want env override 2883", cfg.MQTT.Broker.Port)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Datadog.APIKey = "key"
		cfg.Datadog.AppKey = "app"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Datadog.APIKey = "" },
			wantErr: "datadog.api_key",
		},
		{
			name:    "missing app key",
			mutate:  func(c *Config) { c.Datadog.AppKey = "" },
			wantErr: "datadog.app_key",
		},
		{
			name:    "zero flush period",
			mutate:  func(c *Config) { c.Datadog.FlushPeriodSec = 0 },
			wantErr: "flush_period_sec",
		},
		{
			name:    "invalid qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name:    "empty event topic",
			mutate:  func(c *Config) { c.MQTT.EventTopic = "" },
			wantErr: "event_topic",
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.MQTT.Broker.Port = 0 },
			wantErr: "port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
