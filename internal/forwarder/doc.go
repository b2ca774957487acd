// Package forwarder wires home-automation state-change events into the
// metrics buffer.
//
// It contains the three pieces that sit between the MQTT event stream and
// the sink:
//   - StateEvent: the decoded form of a Home Assistant state_changed event
//     as published by the MQTT eventstream integration
//   - Translator: turns one event into zero or more metric samples
//     (per-numeric-attribute samples plus one for the state value itself)
//   - Service: subscribes to the event topic and feeds samples into the
//     buffer from a single consumer goroutine
//
// # Event Flow
//
//	MQTT broker → Service handler → events channel → consumer goroutine
//	  → Translator.Translate → Buffer.Accept (may flush to the sink)
//
// The MQTT library invokes subscription handlers on its own goroutines, so
// the handler only enqueues raw payloads; all decoding, translation, and
// buffer mutation happens on the one consumer goroutine. Events are
// processed to completion, flush included, before the next one starts.
package forwarder
