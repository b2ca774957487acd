// Package config loads and validates the bridge's YAML configuration.
//
// Configuration is layered: hardcoded defaults, then the YAML file, then
// FORWARDER_* environment variables. Credentials (Datadog keys, MQTT
// auth) should come from the environment rather than the file in
// production.
//
// Example config.yaml:
//
//	mqtt:
//	  broker:
//	    host: "localhost"
//	    port: 1883
//	  event_topic: "homeassistant/events"
//	datadog:
//	  prefix: "hass.datadog"
//	  tags: "site:home,env:prod"
//	  flush_period_sec: 60
//	logging:
//	  level: "info"
//	  format: "json"
package config
