package forwarder

import "testing"

func TestDecodeStateEvent(t *testing.T) {
	payload := []byte(`{
		"event_type": "state_changed",
		"event_data": {
			"entity_id": "sensor.temp1",
			"new_state": {
				"entity_id": "sensor.temp1",
				"state": "21.5",
				"attributes": {"device_class": "temperature", "battery": 55},
				"last_updated": "2026-08-30T10:00:00.123456+00:00"
			}
		}
	}`)

	ev, err := DecodeStateEvent(payload)
	if err != nil {
		t.Fatalf("DecodeStateEvent() error = %v", err)
	}

	state := ev.EventData.NewState
	if state == nil {
		t.Fatal("NewState = nil")
	}
	if state.State != "21.5" {
		t.Errorf("State = %q, want \"21.5\"", state.State)
	}
	if state.Domain() != "sensor" {
		t.Errorf("Domain() = %q, want sensor", state.Domain())
	}
	if got := state.StringAttribute("device_class", ""); got != "temperature" {
		t.Errorf("StringAttribute(device_class) = %q, want temperature", got)
	}
	if got := state.LastUpdatedTimestamp(0); got == 0 {
		t.Error("LastUpdatedTimestamp() fell back despite a valid stamp")
	}
}

func TestDecodeStateEvent_InvalidJSON(t *testing.T) {
	if _, err := DecodeStateEvent([]byte("not json")); err == nil {
		t.Error("DecodeStateEvent() expected error for invalid JSON")
	}
}

func TestDecodeStateEvent_OtherEventType(t *testing.T) {
	payload := []byte(`{"event_type": "call_service", "event_data": {}}`)
	if _, err := DecodeStateEvent(payload); err == nil {
		t.Error("DecodeStateEvent() expected error for non state_changed event")
	}
}

func TestState_Domain(t *testing.T) {
	tests := []struct {
		entityID string
		want     string
	}{
		{entityID: "sensor.temp1", want: "sensor"},
		{entityID: "binary_sensor.door.front", want: "binary_sensor"},
		{entityID: "nodomain", want: "nodomain"},
	}

	for _, tt := range tests {
		s := &State{EntityID: tt.entityID}
		if got := s.Domain(); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.entityID, got, tt.want)
		}
	}
}

func TestState_LastUpdatedTimestamp_Fallback(t *testing.T) {
	tests := []struct {
		name  string
		stamp string
	}{
		{name: "empty", stamp: ""},
		{name: "garbage", stamp: "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{LastUpdated: tt.stamp}
			if got := s.LastUpdatedTimestamp(99); got != 99 {
				t.Errorf("LastUpdatedTimestamp() = %d, want fallback 99", got)
			}
		})
	}
}
