package forwarder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/hass-metrics-bridge/internal/metrics"
)

// eventQueueSize bounds the handoff between MQTT handler goroutines and
// the consumer. Handlers block when the queue is full, which pushes back
// on the broker connection rather than dropping events.
const eventQueueSize = 256

// EventSource is the subscription surface the service needs from the
// event bus. The infrastructure MQTT client satisfies it via a small
// adapter in main.
type EventSource interface {
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error
	Unsubscribe(topic string) error
}

// Service subscribes to the state-change event stream and drives events
// through translation into the buffer. It is pure wiring: all policy
// lives in the Translator and the Buffer.
//
// Thread Safety: Start and Stop must not be called concurrently. The
// buffer is only ever touched by the consumer goroutine.
type Service struct {
	source     EventSource
	translator *Translator
	buffer     *metrics.Buffer
	topic      string
	qos        byte
	log        Logger

	events chan []byte
	done   chan struct{}
	wg     sync.WaitGroup

	// onError is invoked when a flush fails at the transport level.
	onError func(err error)
	errMu   sync.Mutex

	// now is the wall clock, injectable for tests.
	now func() int64
}

// ServiceOptions collects the service's constructor dependencies.
type ServiceOptions struct {
	Source     EventSource
	Translator *Translator
	Buffer     *metrics.Buffer
	Topic      string
	QoS        byte
	Logger     Logger
}

// NewService creates a forwarding service. All options are required.
func NewService(opts ServiceOptions) (*Service, error) {
	switch {
	case opts.Source == nil:
		return nil, fmt.Errorf("forwarder: event source is required")
	case opts.Translator == nil:
		return nil, fmt.Errorf("forwarder: translator is required")
	case opts.Buffer == nil:
		return nil, fmt.Errorf("forwarder: buffer is required")
	case opts.Topic == "":
		return nil, fmt.Errorf("forwarder: event topic is required")
	case opts.Logger == nil:
		return nil, fmt.Errorf("forwarder: logger is required")
	}

	return &Service{
		source:     opts.Source,
		translator: opts.Translator,
		buffer:     opts.Buffer,
		topic:      opts.Topic,
		qos:        opts.QoS,
		log:        opts.Logger,
		events:     make(chan []byte, eventQueueSize),
		done:       make(chan struct{}),
		now:        func() int64 { return time.Now().Unix() },
	}, nil
}

// SetOnError sets a callback invoked when a flush fails at the transport
// level (network, auth). The failed batch is already discarded when the
// callback runs; the consumer keeps processing subsequent events.
func (s *Service) SetOnError(callback func(err error)) {
	s.errMu.Lock()
	s.onError = callback
	s.errMu.Unlock()
}

// Start subscribes to the event topic and launches the consumer
// goroutine. It returns once the subscription is registered.
func (s *Service) Start(ctx context.Context) error {
	if err := s.source.Subscribe(s.topic, s.qos, s.handleMessage); err != nil {
		return fmt.Errorf("subscribing to %s: %w", s.topic, err)
	}

	s.wg.Add(1)
	go s.consume(ctx)

	s.log.Info("forwarder started", "topic", s.topic)
	return nil
}

// Stop unsubscribes from the event topic and waits for the consumer to
// drain. Events still queued at shutdown are discarded along with any
// unflushed samples; nothing is persisted.
func (s *Service) Stop() {
	if err := s.source.Unsubscribe(s.topic); err != nil {
		s.log.Warn("unsubscribe failed", "topic", s.topic, "error", err)
	}

	close(s.done)
	s.wg.Wait()

	if n := s.buffer.Len(); n > 0 {
		s.log.Info("discarding unflushed samples on shutdown", "samples", n)
	}
}

// handleMessage runs on the MQTT library's goroutines and only enqueues
// the raw payload for the consumer.
func (s *Service) handleMessage(_ string, payload []byte) {
	select {
	case s.events <- payload:
	case <-s.done:
	}
}

// consume processes queued events one at a time until stopped. Each event
// runs to completion, flush included, before the next one starts.
func (s *Service) consume(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case payload := <-s.events:
			s.process(ctx, payload)
		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}

// process decodes one payload and feeds its samples into the buffer in
// emission order. Malformed or irrelevant payloads are skipped silently.
func (s *Service) process(ctx context.Context, payload []byte) {
	ev, err := DecodeStateEvent(payload)
	if err != nil {
		s.log.Debug("skipping event", "reason", err)
		return
	}

	for _, sample := range s.translator.Translate(ev, s.now()) {
		if err := s.buffer.Accept(ctx, sample); err != nil {
			s.log.Error("flush failed, batch discarded", "error", err)
			s.reportError(err)
		}
	}
}

// reportError delivers a transport error to the onError callback if set.
func (s *Service) reportError(err error) {
	s.errMu.Lock()
	callback := s.onError
	s.errMu.Unlock()

	if callback != nil {
		callback(err)
	}
}
