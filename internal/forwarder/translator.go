package forwarder

import (
	"fmt"
	"strings"

	"github.com/nerrad567/hass-metrics-bridge/internal/metrics"
)

// Attribute names with special meaning during translation.
const (
	attrDeviceClass = "device_class"
	attrStateClass  = "state_class"
	attrUnit        = "unit_of_measurement"

	defaultDeviceClass = "unknown_device"
	defaultStateClass  = "unknown_state"
)

// Logger is the logging surface the forwarder package needs.
// Compatible with logging.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Translator converts one state-change event into zero or more samples.
//
// Every numeric attribute of the new state produces one sample named
// <prefix>.<domain>.<device_class>.<state_class>.<attribute>, and the
// state value itself produces one more under the base name when it can be
// coerced to a number. All samples of one event share the same tag set
// and timestamp.
type Translator struct {
	prefix      string
	defaultTags []string
	log         Logger
}

// NewTranslator creates a translator with the given metric prefix and
// default tags. Tags arrive as the raw comma-separated config string and
// are parsed once here; entries are not validated beyond trimming.
func NewTranslator(prefix, tags string, log Logger) *Translator {
	return &Translator{
		prefix:      prefix,
		defaultTags: parseTags(tags),
		log:         log,
	}
}

// parseTags splits a comma-separated tag list, dropping empty entries so
// an unset config value contributes no tags.
func parseTags(tags string) []string {
	var out []string
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Translate maps one event to its samples.
//
// A missing new-state or the "unknown" sentinel yields nil. A state value
// that cannot be coerced to a number yields only the attribute samples;
// the occurrence is logged but is not an error.
//
// The returned slice lists attribute samples first (attribute-map
// iteration order) and the state-value sample last. Downstream grouping
// re-sorts points by timestamp, so this order is only observable through
// timestamp ties.
func (t *Translator) Translate(ev StateEvent, now int64) []metrics.Sample {
	state := ev.EventData.NewState
	if state == nil || state.State == StateUnknown {
		return nil
	}

	domain := state.Domain()
	deviceClass := state.StringAttribute(attrDeviceClass, defaultDeviceClass)
	stateClass := state.StringAttribute(attrStateClass, defaultStateClass)

	metric := fmt.Sprintf("%s.%s.%s.%s", t.prefix, domain, deviceClass, stateClass)
	tags := append([]string{
		"domain:" + domain,
		"entity_id:" + state.EntityID,
		"device_class:" + deviceClass,
		"state_class:" + stateClass,
	}, t.defaultTags...)
	timestamp := state.LastUpdatedTimestamp(now)

	var samples []metrics.Sample
	for key, raw := range state.Attributes {
		value, ok := numericValue(raw)
		if !ok {
			continue
		}
		attribute := metric + "." + strings.ReplaceAll(key, " ", "_")

		// Unit stays empty: the unit of a nested attribute is unknown
		// and never guessed.
		samples = append(samples, metrics.Sample{
			ID:        metrics.Identity{Name: attribute, Tags: tags},
			Timestamp: timestamp,
			Value:     value,
		})
		t.log.Debug("buffered attribute metric", "metric", attribute, "value", value)
	}

	value, err := StateAsNumber(state.State)
	if err != nil {
		t.log.Error("state has no numeric form",
			"metric", metric,
			"state", state.State,
			"entity_id", state.EntityID,
		)
		return samples
	}

	samples = append(samples, metrics.Sample{
		ID: metrics.Identity{
			Name: metric,
			Tags: tags,
			Unit: state.StringAttribute(attrUnit, ""),
		},
		Timestamp: timestamp,
		Value:     value,
	})
	t.log.Debug("buffered state metric", "metric", metric, "value", value)

	return samples
}
