package forwarder

import (
	"fmt"
	"strconv"
	"strings"
)

// binaryStates maps Home Assistant's two-valued state vocabulary onto 1/0,
// matching the upstream state-as-number semantics. Anything not listed
// here must parse as a plain number.
var binaryStates = map[string]float64{
	"on":            1,
	"open":          1,
	"home":          1,
	"locked":        1,
	"above_horizon": 1,
	"true":          1,
	"off":           0,
	"closed":        0,
	"not_home":      0,
	"unlocked":      0,
	"below_horizon": 0,
	"false":         0,
}

// StateAsNumber converts a state string to a number.
//
// Two-valued states (on/off, open/closed, locked/unlocked, home/not_home,
// above_horizon/below_horizon, true/false) map to 1 or 0; everything else
// goes through a float parse. Categorical states that are neither return
// an error, which callers treat as "no sample", not as a failure.
func StateAsNumber(state string) (float64, error) {
	if v, ok := binaryStates[strings.ToLower(state)]; ok {
		return v, nil
	}
	v, err := strconv.ParseFloat(state, 64)
	if err != nil {
		return 0, fmt.Errorf("state %q is not numeric", state)
	}
	return v, nil
}

// numericValue classifies an attribute value at the type boundary.
//
// Integers, floats, and booleans qualify (booleans coerce to 0/1);
// strings and structured values never do, including numeric-looking
// strings.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
