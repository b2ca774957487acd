package metrics

import (
	"context"
	"sort"
	"strings"
)

// Identity is the immutable key identifying a distinct time series.
//
// Two identities are equal when their names, units, and tag sets match;
// tag order is insignificant for equality but is preserved for output,
// so "env:prod,site:home" and "site:home,env:prod" group into the same
// series while the tags of the first-seen identity are the ones sent.
type Identity struct {
	Name string
	Tags []string
	Unit string
}

// keySeparator joins key components. Tag values come from entity IDs and
// config, which never contain NUL, so the key is unambiguous.
const keySeparator = "\x00"

// Key returns a canonical grouping key for the identity.
//
// The key is stable under tag reordering: tags are sorted into a copy
// before joining, leaving the identity itself untouched.
func (id Identity) Key() string {
	sorted := make([]string, len(id.Tags))
	copy(sorted, id.Tags)
	sort.Strings(sorted)

	var b strings.Builder
	b.WriteString(id.Name)
	b.WriteString(keySeparator)
	b.WriteString(id.Unit)
	for _, tag := range sorted {
		b.WriteString(keySeparator)
		b.WriteString(tag)
	}
	return b.String()
}

// Equal reports whether two identities identify the same series.
func (id Identity) Equal(other Identity) bool {
	return id.Key() == other.Key()
}

// Sample is one numeric observation: an identity, an epoch-seconds
// timestamp, and a value. Samples are immutable once created and are
// consumed exactly once by a flush.
type Sample struct {
	ID        Identity
	Timestamp int64
	Value     float64
}

// Point is a single (timestamp, value) pair within a Series.
type Point struct {
	Timestamp int64
	Value     float64
}

// Series is the unit of submission to the sink: all points observed for
// one identity within a flush window, sorted ascending by timestamp.
type Series struct {
	Metric string
	Points []Point
	Tags   []string
	Unit   string
}

// SubmitResult reports partial failures from a sink submission.
// Errors is empty on full success.
type SubmitResult struct {
	Errors []string
}

// Sink accepts one batch of series per call and reports partial-failure
// detail. A returned error indicates the submission as a whole failed
// (network, auth); per-point rejections surface in SubmitResult instead.
type Sink interface {
	Submit(ctx context.Context, series []Series) (SubmitResult, error)
}
