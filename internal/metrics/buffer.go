package metrics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Logger is the minimal logging surface the buffer needs.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// Buffer accumulates samples between flushes and submits them to the sink
// when the flush period has elapsed.
//
// The flush predicate is evaluated on every Accept call, not on a timer:
// a long gap with no events means no flush occurs even though the period
// has elapsed, and the next Accept after the gap flushes everything
// buffered so far. Flush granularity is therefore bounded by the incoming
// event rate.
//
// Thread Safety: none. The buffer must be owned and mutated by a single
// goroutine.
type Buffer struct {
	sink        Sink
	flushPeriod int64
	log         Logger

	batch     []Sample
	lastFlush int64

	// now is the wall clock, injectable for tests.
	now func() int64
}

// NewBuffer creates a buffer bound to one sink and one flush period.
//
// Parameters:
//   - sink: Destination for flushed series
//   - flushPeriod: Seconds that must elapse (strictly) since the last
//     flush before the next Accept triggers one
//   - log: Logger for flush diagnostics
func NewBuffer(sink Sink, flushPeriod time.Duration, log Logger) *Buffer {
	now := func() int64 { return time.Now().Unix() }
	return &Buffer{
		sink:        sink,
		flushPeriod: int64(flushPeriod.Seconds()),
		log:         log,
		lastFlush:   now(),
		now:         now,
	}
}

// Accept appends a sample to the current batch and flushes if the flush
// period has elapsed since the last flush.
//
// The batch has no size cap; growth between flushes is unbounded.
//
// Returns:
//   - error: Only when a triggered flush fails at the transport level.
//     The batch is cleared and the flush timestamp recorded even then —
//     delivery is at-most-once and failed batches are never retried.
func (b *Buffer) Accept(ctx context.Context, sample Sample) error {
	b.batch = append(b.batch, sample)

	now := b.now()
	if now-b.lastFlush <= b.flushPeriod {
		return nil
	}
	return b.flush(ctx, now)
}

// Len returns the number of samples currently buffered.
func (b *Buffer) Len() int {
	return len(b.batch)
}

// flush groups the batch into series, submits them in one call, and
// clears the batch. The flush timestamp advances regardless of outcome.
func (b *Buffer) flush(ctx context.Context, now int64) error {
	series := buildSeries(b.batch)
	count := len(b.batch)

	b.lastFlush = now
	b.batch = nil

	result, err := b.sink.Submit(ctx, series)
	if err != nil {
		return fmt.Errorf("submitting %d points: %w", count, err)
	}

	if len(result.Errors) > 0 {
		b.log.Error("sink rejected points",
			"buffered", count,
			"errors", strings.Join(result.Errors, ","),
		)
		return nil
	}

	b.log.Debug("flushed batch", "points", count, "series", len(series))
	return nil
}

// buildSeries groups samples by identity and sorts each group's points
// ascending by timestamp. The sort is stable, so samples with equal
// timestamps keep their arrival order.
//
// Series output order follows first appearance of each identity in the
// batch, keeping flushes deterministic.
func buildSeries(batch []Sample) []Series {
	byKey := make(map[string]int, len(batch))
	series := make([]Series, 0, len(batch))

	for _, sample := range batch {
		key := sample.ID.Key()
		idx, ok := byKey[key]
		if !ok {
			idx = len(series)
			byKey[key] = idx
			series = append(series, Series{
				Metric: sample.ID.Name,
				Tags:   sample.ID.Tags,
				Unit:   sample.ID.Unit,
			})
		}
		series[idx].Points = append(series[idx].Points, Point{
			Timestamp: sample.Timestamp,
			Value:     sample.Value,
		})
	}

	for i := range series {
		points := series[i].Points
		sort.SliceStable(points, func(a, b int) bool {
			return points[a].Timestamp < points[b].Timestamp
		})
	}

	return series
}
