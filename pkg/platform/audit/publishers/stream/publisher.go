// Package stream publishes audit events to a Kafka topic. It sits behind the
// audit store as a secondary sink: a broker outage opens a circuit breaker and
// events are held in a bounded backlog until the broker recovers, so the vote
// path never waits on Kafka.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "campusvote/pkg/platform/audit"
	"campusvote/pkg/platform/circuit"
)

// Producer is the subset of *kgo.Client the publisher uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Publisher streams audit events to Kafka.
type Publisher struct {
	producer Producer
	topic    string
	breaker  *circuit.Breaker
	backlog  *RingBuffer
	timeout  time.Duration
	probe    time.Duration
	logger   *slog.Logger
	metrics  *Metrics

	mu        sync.Mutex
	lastProbe time.Time
	now       func() time.Time
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithBacklog sets the capacity of the backlog kept while the breaker is open.
func WithBacklog(capacity int) Option {
	return func(p *Publisher) {
		p.backlog = NewRingBuffer(capacity)
	}
}

// WithProduceTimeout bounds each produce call.
func WithProduceTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithProbeInterval sets how often an open breaker lets one publish through
// to test the broker.
func WithProbeInterval(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.probe = d
		}
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(p *Publisher) {
		if b != nil {
			p.breaker = b
		}
	}
}

func New(producer Producer, topic string, opts ...Option) *Publisher {
	p := &Publisher{
		producer: producer,
		topic:    topic,
		breaker:  circuit.New("audit-stream", circuit.WithFailureThreshold(3), circuit.WithSuccessThreshold(1)),
		backlog:  NewRingBuffer(1024),
		timeout:  2 * time.Second,
		probe:    10 * time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// message is the wire format of a streamed audit event.
type message struct {
	ID        string            `json:"id"`
	Category  string            `json:"category"`
	Timestamp string            `json:"timestamp"`
	ActorID   string            `json:"actor_id,omitempty"`
	Action    string            `json:"action"`
	Decision  string            `json:"decision,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func encode(event audit.Event) ([]byte, error) {
	msg := message{
		ID:        event.ID.String(),
		Category:  string(event.Category),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		Action:    event.Action,
		Decision:  event.Decision,
		Reason:    event.Reason,
		Details:   event.Details,
		RequestID: event.RequestID,
	}
	if !event.ActorID.IsNil() {
		msg.ActorID = event.ActorID.String()
	}
	return json.Marshal(msg)
}

// Emit publishes the event, or backlogs it while the broker is unavailable.
// It returns an error only when the event cannot be encoded.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	value, err := encode(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	if p.breaker.IsOpen() && !p.shouldProbe() {
		p.hold(event)
		return nil
	}

	pending := append(p.backlog.DequeueBatch(p.backlog.Len()), event)
	records := make([]*kgo.Record, 0, len(pending))
	for _, e := range pending[:len(pending)-1] {
		v, err := encode(e)
		if err != nil {
			continue
		}
		records = append(records, p.record(e, v))
	}
	records = append(records, p.record(event, value))

	produceCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	if err := p.producer.ProduceSync(produceCtx, records...).FirstErr(); err != nil {
		p.metrics.IncPublishFailures()
		p.backlog.Requeue(pending)
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.metrics.SetCircuitBreakerState(true)
			if p.logger != nil {
				p.logger.WarnContext(ctx, "audit stream unavailable, backlogging events",
					"breaker", p.breaker.Name(), "topic", p.topic, "backlog", p.backlog.Len(), "error", err)
			}
		}
		return nil
	}

	p.metrics.IncPublished(len(records))
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.metrics.SetCircuitBreakerState(false)
		if p.logger != nil {
			p.logger.InfoContext(ctx, "audit stream recovered", "breaker", p.breaker.Name(), "topic", p.topic)
		}
	}
	return nil
}

func (p *Publisher) record(event audit.Event, value []byte) *kgo.Record {
	return &kgo.Record{Topic: p.topic, Key: []byte(event.ActorID.String()), Value: value}
}

func (p *Publisher) hold(event audit.Event) {
	p.metrics.IncBacklogged()
	if p.backlog.Enqueue(event) {
		p.metrics.IncDropped()
	}
}

func (p *Publisher) shouldProbe() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if now.Sub(p.lastProbe) < p.probe {
		return false
	}
	p.lastProbe = now
	return true
}

// Backlog returns the number of events waiting for the broker.
func (p *Publisher) Backlog() int {
	return p.backlog.Len()
}
