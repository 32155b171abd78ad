package events

import (
	"context"
	"log/slog"
	"time"

	"careteam/internal/platform/metrics"
)

// Sink delivers events to their destination (Kafka in production, memory in
// tests).
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// Publisher decouples event emission from delivery with a buffered inbox so
// request handling never blocks on the broker. Emit after commit only.
type Publisher struct {
	inbox   chan Event
	sink    Sink
	metrics *metrics.Metrics
	logger  *slog.Logger
}

const inboxSize = 256

func NewPublisher(sink Sink, m *metrics.Metrics, logger *slog.Logger) *Publisher {
	return &Publisher{
		inbox:   make(chan Event, inboxSize),
		sink:    sink,
		metrics: m,
		logger:  logger,
	}
}

// Emit queues an event for delivery. When the inbox is full the event is
// dropped and counted; notifications are best-effort by contract, the status
// log is the durable record.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "event inbox full, dropping event",
			"type", string(event.Type),
			"client_id", event.ClientID,
		)
		p.record(event.Type, "dropped")
	}
}

// Run consumes the inbox until ctx is cancelled. Delivery failures are
// logged and counted, never retried here; the broker client has its own
// retry budget.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-p.inbox:
			if err := p.sink.Deliver(ctx, event); err != nil {
				p.logger.ErrorContext(ctx, "event delivery failed",
					"type", string(event.Type),
					"client_id", event.ClientID,
					"error", err.Error(),
				)
				p.record(event.Type, "error")
				continue
			}
			p.record(event.Type, "ok")
		}
	}
}

func (p *Publisher) record(eventType Type, result string) {
	if p.metrics != nil {
		p.metrics.EventsPublished.WithLabelValues(string(eventType), result).Inc()
	}
}
