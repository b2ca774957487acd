// Metrics bridge - Home Assistant to Datadog telemetry forwarder
//
// The bridge subscribes to state-change events on the MQTT event stream,
// translates numeric state and attribute values into metric samples, and
// flushes them to the Datadog metrics intake API in periodic batches.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/hass-metrics-bridge/internal/forwarder"
	"github.com/nerrad567/hass-metrics-bridge/internal/infrastructure/config"
	"github.com/nerrad567/hass-metrics-bridge/internal/infrastructure/datadog"
	"github.com/nerrad567/hass-metrics-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/hass-metrics-bridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/hass-metrics-bridge/internal/metrics"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for
// testability. Returning an error allows main to handle exit codes
// consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting metrics bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
	)

	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Create the Datadog sink
	sink, err := datadog.Connect(cfg.Datadog)
	if err != nil {
		return fmt.Errorf("creating Datadog client: %w", err)
	}
	defer func() {
		log.Info("closing Datadog client")
		if closeErr := sink.Close(); closeErr != nil {
			log.Error("error closing Datadog client", "error", closeErr)
		}
	}()
	log.Info("Datadog sink ready",
		"site", cfg.Datadog.Site,
		"prefix", cfg.Datadog.Prefix,
		"flush_period", cfg.FlushPeriod(),
	)

	// Wire translator and buffer into the forwarding service
	fwdLog := log.With("component", "forwarder")
	translator := forwarder.NewTranslator(cfg.Datadog.Prefix, cfg.Datadog.Tags, fwdLog)
	buffer := metrics.NewBuffer(sink, cfg.FlushPeriod(), fwdLog)

	service, err := forwarder.NewService(forwarder.ServiceOptions{
		Source:     &eventSourceAdapter{client: mqttClient},
		Translator: translator,
		Buffer:     buffer,
		Topic:      cfg.MQTT.EventTopic,
		QoS:        byte(cfg.MQTT.QoS),
		Logger:     fwdLog,
	})
	if err != nil {
		return fmt.Errorf("creating forwarder: %w", err)
	}
	service.SetOnError(func(err error) {
		log.Error("Datadog submission failed", "error", err)
	})

	if err := service.Start(ctx); err != nil {
		return fmt.Errorf("starting forwarder: %w", err)
	}
	defer func() {
		log.Info("stopping forwarder")
		service.Stop()
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses FORWARDER_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("FORWARDER_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// eventSourceAdapter adapts the infrastructure MQTT client to the
// forwarder's EventSource interface. The difference is the Subscribe
// handler signature: the infrastructure client's handlers return an
// error, the forwarder's do not.
type eventSourceAdapter struct {
	client *mqtt.Client
}

// Subscribe implements forwarder.EventSource.
func (a *eventSourceAdapter) Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error {
	return a.client.Subscribe(topic, qos, func(t string, p []byte) error {
		handler(t, p)
		return nil
	})
}

// Unsubscribe implements forwarder.EventSource.
func (a *eventSourceAdapter) Unsubscribe(topic string) error {
	return a.client.Unsubscribe(topic)
}
