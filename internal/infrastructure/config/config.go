package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the metrics bridge.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Datadog DatadogConfig `yaml:"datadog"`
	Logging LoggingConfig `yaml:"logging"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`

	// EventTopic is the topic Home Assistant's MQTT eventstream
	// integration publishes events on.
	EventTopic string `yaml:"event_topic"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
// An empty ClientID is replaced with a generated one at connect time.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings in seconds.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// DatadogConfig contains Datadog API credentials and forwarding policy.
type DatadogConfig struct {
	APIKey string `yaml:"api_key"`
	AppKey string `yaml:"app_key"`

	// Site selects the Datadog region, e.g. "datadoghq.com" or
	// "datadoghq.eu". Empty uses the client default.
	Site string `yaml:"site"`

	// Prefix is prepended to every metric name.
	Prefix string `yaml:"prefix"`

	// Tags is a comma-separated list of key:value pairs attached to
	// every series in addition to the per-entity tags.
	Tags string `yaml:"tags"`

	// FlushPeriodSec is the minimum number of seconds between flushes.
	FlushPeriodSec int `yaml:"flush_period_sec"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// The loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern FORWARDER_SECTION_KEY, e.g.
// FORWARDER_DATADOG_API_KEY, FORWARDER_MQTT_HOST.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host: "localhost",
				Port: 1883,
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
			EventTopic: "homeassistant/events",
		},
		Datadog: DatadogConfig{
			Prefix:         "hass.datadog",
			FlushPeriodSec: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides.
// Credentials are the expected use; the broker address is also
// overridable for containerised deployments.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FORWARDER_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("FORWARDER_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Broker.Port = port
		}
	}
	if v := os.Getenv("FORWARDER_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("FORWARDER_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("FORWARDER_DATADOG_API_KEY"); v != "" {
		cfg.Datadog.APIKey = v
	}
	if v := os.Getenv("FORWARDER_DATADOG_APP_KEY"); v != "" {
		cfg.Datadog.AppKey = v
	}
	if v := os.Getenv("FORWARDER_DATADOG_SITE"); v != "" {
		cfg.Datadog.Site = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.MQTT.Broker.Host == "" {
		errs = append(errs, "mqtt.broker.host is required")
	}
	if c.MQTT.Broker.Port < 1 || c.MQTT.Broker.Port > 65535 {
		errs = append(errs, "mqtt.broker.port must be between 1 and 65535")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.MQTT.EventTopic == "" {
		errs = append(errs, "mqtt.event_topic is required")
	}

	if c.Datadog.APIKey == "" {
		errs = append(errs, "datadog.api_key is required (set FORWARDER_DATADOG_API_KEY environment variable)")
	}
	if c.Datadog.AppKey == "" {
		errs = append(errs, "datadog.app_key is required (set FORWARDER_DATADOG_APP_KEY environment variable)")
	}
	if c.Datadog.FlushPeriodSec < 1 {
		errs = append(errs, "datadog.flush_period_sec must be at least 1")
	}
	if c.Datadog.Prefix == "" {
		errs = append(errs, "datadog.prefix is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// FlushPeriod returns the flush period as a Duration.
func (c *Config) FlushPeriod() time.Duration {
	return time.Duration(c.Datadog.FlushPeriodSec) * time.Second
}
