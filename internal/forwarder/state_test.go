package forwarder

import "testing"

func TestStateAsNumber(t *testing.T) {
	tests := []struct {
		state   string
		want    float64
		wantErr bool
	}{
		{state: "21.5", want: 21.5},
		{state: "-3", want: -3},
		{state: "0", want: 0},
		{state: "on", want: 1},
		{state: "off", want: 0},
		{state: "Open", want: 1},
		{state: "closed", want: 0},
		{state: "locked", want: 1},
		{state: "unlocked", want: 0},
		{state: "home", want: 1},
		{state: "not_home", want: 0},
		{state: "above_horizon", want: 1},
		{state: "below_horizon", want: 0},
		{state: "eco", wantErr: true},
		{state: "", wantErr: true},
		{state: "21.5C", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			got, err := StateAsNumber(tt.state)
			if (err != nil) != tt.wantErr {
				t.Fatalf("StateAsNumber(%q) error = %v, wantErr %v", tt.state, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("StateAsNumber(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestNumericValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{name: "float64", value: float64(1.5), want: 1.5, ok: true},
		{name: "int", value: int(7), want: 7, ok: true},
		{name: "int64", value: int64(-2), want: -2, ok: true},
		{name: "uint", value: uint(3), want: 3, ok: true},
		{name: "bool true", value: true, want: 1, ok: true},
		{name: "bool false", value: false, want: 0, ok: true},
		{name: "numeric string", value: "55", ok: false},
		{name: "string", value: "temperature", ok: false},
		{name: "nil", value: nil, ok: false},
		{name: "slice", value: []any{1.0}, ok: false},
		{name: "map", value: map[string]any{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numericValue(tt.value)
			if ok != tt.ok {
				t.Fatalf("numericValue(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("numericValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
