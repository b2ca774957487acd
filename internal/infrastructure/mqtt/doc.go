// Package mqtt provides MQTT client connectivity for the metrics bridge.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Topic subscriptions with wildcard support
//   - Connection health monitoring
//
// The bridge is a pure consumer: it subscribes to the topic Home
// Assistant's MQTT eventstream integration publishes on and never
// publishes anything itself, so there is no publish surface, no LWT, and
// no retained status topic.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe("homeassistant/events", 1,
//	    func(topic string, payload []byte) error {
//	        // decode and forward
//	        return nil
//	    })
//
// # Delivery Caveats
//
// Sessions are clean: events published while the bridge is disconnected
// are not replayed and are simply never forwarded. This mirrors the
// bridge's overall best-effort delivery stance.
package mqtt
