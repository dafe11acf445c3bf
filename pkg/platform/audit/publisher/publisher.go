// Package publisher persists audit events to a store, synchronously or via a
// bounded async buffer, and fans them out to optional sinks such as the
// Kafka stream.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "campusvote/pkg/domain"
	audit "campusvote/pkg/platform/audit"
)

// ErrBufferFull is returned by Emit in async mode when the buffer is full.
var ErrBufferFull = errors.New("audit buffer full")

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store  audit.Store
	sinks  []audit.Emitter
	logger *slog.Logger

	buffer chan audit.Event
	wg     sync.WaitGroup
	once   sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer enables async mode: Emit enqueues and returns, a single
// goroutine persists in order.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		if size > 0 {
			p.buffer = make(chan audit.Event, size)
		}
	}
}

// WithSink adds a secondary destination. Sink failures are logged, never
// returned.
func WithSink(sink audit.Emitter) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.ID.IsNil() {
		event.ID = id.NewAuditEventID()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.buffer == nil {
		return p.persist(ctx, event)
	}

	select {
	case p.buffer <- event:
		return nil
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit buffer full, dropping event", "event", event.Action)
		}
		return ErrBufferFull
	}
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		if err := sink.Emit(ctx, event); err != nil && p.logger != nil {
			p.logger.WarnContext(ctx, "audit sink failed", "event", event.Action, "error", err)
		}
	}
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.buffer {
		// The request that produced the event may be long gone.
		if err := p.persist(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Error("failed to persist audit event", "event", event.Action, "error", err)
		}
	}
}

// List returns the events recorded for a voter, oldest first.
func (p *Publisher) List(ctx context.Context, voterID id.VoterID) ([]audit.Event, error) {
	return p.store.ListByUser(ctx, voterID)
}

// ListRecent returns at most limit events, newest first.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close drains the async buffer. Emit must not be called after Close.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.buffer != nil {
			close(p.buffer)
			p.wg.Wait()
		}
	})
}
