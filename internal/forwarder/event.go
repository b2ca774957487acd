package forwarder

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// StateUnknown is the sentinel state Home Assistant reports for entities
// whose value is not (yet) known. Events in this state carry no telemetry.
const StateUnknown = "unknown"

// eventTypeStateChanged is the only event type the bridge consumes.
const eventTypeStateChanged = "state_changed"

// StateEvent is a Home Assistant event as published on the MQTT event
// stream. Only state_changed events are of interest; everything else is
// skipped after decoding the envelope.
type StateEvent struct {
	EventType string    `json:"event_type"`
	EventData EventData `json:"event_data"`
}

// EventData carries the entity and state transition of a state_changed
// event. NewState is nil for entity-removed events.
type EventData struct {
	EntityID string `json:"entity_id"`
	NewState *State `json:"new_state"`
}

// State is an entity state snapshot: the state value as a string, the
// attribute map, and the last-updated wall-clock time.
type State struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastUpdated string         `json:"last_updated"`
}

// Domain returns the entity's domain, the segment of the entity ID before
// the first dot ("sensor.temp1" → "sensor"). Entity IDs without a dot are
// their own domain.
func (s *State) Domain() string {
	if i := strings.IndexByte(s.EntityID, '.'); i >= 0 {
		return s.EntityID[:i]
	}
	return s.EntityID
}

// LastUpdatedTimestamp returns the last-updated time as epoch seconds.
// Home Assistant serialises timestamps as RFC 3339 with fractional
// seconds; when the field is absent or unparsable the fallback is used.
func (s *State) LastUpdatedTimestamp(fallback int64) int64 {
	if s.LastUpdated == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, s.LastUpdated)
	if err != nil {
		return fallback
	}
	return t.Unix()
}

// StringAttribute returns the named attribute as a string, or the default
// when the attribute is absent or not a string.
func (s *State) StringAttribute(name, def string) string {
	if v, ok := s.Attributes[name].(string); ok {
		return v
	}
	return def
}

// DecodeStateEvent parses an MQTT event-stream payload.
//
// Returns:
//   - StateEvent: The decoded event
//   - error: If the payload is not valid JSON or is not a state_changed
//     event. Callers treat this as "skip", not as a failure.
func DecodeStateEvent(payload []byte) (StateEvent, error) {
	var ev StateEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return StateEvent{}, fmt.Errorf("decoding event: %w", err)
	}
	if ev.EventType != eventTypeStateChanged {
		return StateEvent{}, fmt.Errorf("ignoring event type %q", ev.EventType)
	}
	return ev, nil
}
