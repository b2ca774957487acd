// Package metrics contains the core buffering and batching engine of the
// metrics bridge.
//
// It defines the value types shared across the application:
//   - Identity: the (name, tags, unit) key that distinguishes one time series
//     from another
//   - Sample: a single numeric observation tied to an Identity and timestamp
//   - Series: a timestamp-ordered group of points submitted to the sink as
//     one unit
//
// and the Buffer, which accumulates Samples between flushes and decides when
// to flush based on elapsed wall-clock time.
//
// # Delivery Semantics
//
// Delivery is at-most-once by design. A flush hands the whole batch to the
// sink in a single call and clears it regardless of the outcome; failed
// points are reported, never re-buffered. There is no upper bound on batch
// growth between flushes — during long sink outages memory use grows with
// event volume. This is a known limitation, not a tunable.
//
// # Concurrency
//
// The Buffer performs no internal locking. It is designed for exclusive
// ownership by a single goroutine (the forwarder's event consumer); the
// flush predicate is evaluated inside Accept rather than on a timer, so no
// background goroutine touches the batch either.
package metrics
