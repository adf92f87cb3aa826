package audit

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/iho/goatm/internal/domain"
)

// Publisher decouples the engine from the audit sink. Record enqueues and
// never blocks or fails; a background worker drains the queue to the sink,
// retrying transient write failures with exponential backoff. Events that
// still cannot be written are dropped: audit failures are non-fatal.
type Publisher struct {
	sink       Sink
	logger     zerolog.Logger
	queue      chan domain.AuditEvent
	maxRetries uint64
	done       chan struct{}
}

// Config for Publisher.
type Config struct {
	Sink       Sink
	Logger     zerolog.Logger
	QueueSize  int
	MaxRetries uint64
}

// NewPublisher creates a new Publisher.
func NewPublisher(cfg Config) *Publisher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}

	return &Publisher{
		sink:       cfg.Sink,
		logger:     cfg.Logger,
		queue:      make(chan domain.AuditEvent, cfg.QueueSize),
		maxRetries: cfg.MaxRetries,
		done:       make(chan struct{}),
	}
}

// Record enqueues an event. If the queue is full the event is dropped with a
// warning rather than blocking the engine.
func (p *Publisher) Record(event domain.AuditEvent) {
	select {
	case p.queue <- event:
	default:
		p.logger.Warn().
			Str("account_id", event.AccountID).
			Str("action", string(event.Action)).
			Msg("audit queue full, event dropped")
	}
}

// Start runs the draining worker until the context is cancelled, then flushes
// whatever is still queued.
func (p *Publisher) Start(ctx context.Context) {
	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			p.drain()
			return
		case event := <-p.queue:
			p.write(event)
		}
	}
}

// Wait blocks until the worker has stopped.
func (p *Publisher) Wait() {
	<-p.done
}

func (p *Publisher) drain() {
	for {
		select {
		case event := <-p.queue:
			p.write(event)
		default:
			return
		}
	}
}

func (p *Publisher) write(event domain.AuditEvent) {
	op := func() error {
		return p.sink.Write(event)
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(50*time.Millisecond),
		backoff.WithMaxInterval(time.Second),
	), p.maxRetries)

	if err := backoff.Retry(op, policy); err != nil {
		p.logger.Error().
			Err(err).
			Str("account_id", event.AccountID).
			Str("action", string(event.Action)).
			Msg("audit event dropped after retries")
	}
}
