package stream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "campusvote/pkg/domain"
	audit "campusvote/pkg/platform/audit"
)

type fakeProducer struct {
	mu      sync.Mutex
	err     error
	records []*kgo.Record
	calls   int
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if f.err == nil {
			f.records = append(f.records, r)
		}
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeProducer) actions(t *testing.T) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.records))
	for _, r := range f.records {
		var msg message
		require.NoError(t, json.Unmarshal(r.Value, &msg))
		out = append(out, msg.Action)
	}
	return out
}

func event(action audit.AuditEvent) audit.Event {
	return audit.Event{
		ID:        id.NewAuditEventID(),
		Category:  action.Category(),
		Timestamp: time.Now(),
		ActorID:   id.NewVoterID(),
		Action:    string(action),
		Details:   map[string]string{"election_id": id.NewElectionID().String()},
	}
}

func TestPublisher_PublishesToTopic(t *testing.T) {
	producer := &fakeProducer{}
	pub := New(producer, "audit-events")

	e := event(audit.EventVoteCast)
	require.NoError(t, pub.Emit(context.Background(), e))

	require.Len(t, producer.records, 1)
	rec := producer.records[0]
	assert.Equal(t, "audit-events", rec.Topic)
	assert.Equal(t, e.ActorID.String(), string(rec.Key))

	var msg message
	require.NoError(t, json.Unmarshal(rec.Value, &msg))
	assert.Equal(t, "vote_cast", msg.Action)
	assert.Equal(t, "compliance", msg.Category)
	assert.Equal(t, e.Details["election_id"], msg.Details["election_id"])
}

func TestPublisher_BrokerOutageBacklogsWithoutError(t *testing.T) {
	producer := &fakeProducer{}
	producer.fail(errors.New("broker down"))
	pub := New(producer, "audit-events", WithProbeInterval(time.Hour))

	for range 5 {
		require.NoError(t, pub.Emit(context.Background(), event(audit.EventVoteCast)))
	}

	assert.True(t, pub.breaker.IsOpen())
	assert.Equal(t, 5, pub.Backlog())
	// Three attempts open the breaker, one probe is allowed immediately, the
	// rest are held without calling the broker.
	assert.Equal(t, 4, producer.calls)
}

func TestPublisher_RecoveryFlushesBacklogInOrder(t *testing.T) {
	producer := &fakeProducer{}
	producer.fail(errors.New("broker down"))
	pub := New(producer, "audit-events", WithProbeInterval(time.Minute))
	clock := time.Now()
	pub.now = func() time.Time { return clock }

	actions := []audit.AuditEvent{
		audit.EventVoteCast, audit.EventVoteRejected, audit.EventAdminLoginFailed, audit.EventElectionCreated,
	}
	for _, a := range actions {
		require.NoError(t, pub.Emit(context.Background(), event(a)))
	}
	require.True(t, pub.breaker.IsOpen())

	producer.fail(nil)
	clock = clock.Add(2 * time.Minute)
	require.NoError(t, pub.Emit(context.Background(), event(audit.EventVoteCast)))

	assert.False(t, pub.breaker.IsOpen())
	assert.Zero(t, pub.Backlog())
	assert.Equal(t, []string{
		"vote_cast", "vote_rejected", "admin_login_failed", "election_created", "vote_cast",
	}, producer.actions(t))
}

func TestRingBuffer_DropsOldestWhenFull(t *testing.T) {
	b := NewRingBuffer(2)
	assert.False(t, b.Enqueue(event(audit.EventVoteCast)))
	assert.False(t, b.Enqueue(event(audit.EventVoteRejected)))
	assert.True(t, b.Enqueue(event(audit.EventElectionCreated)))

	got := b.DequeueBatch(10)
	require.Len(t, got, 2)
	assert.Equal(t, "vote_rejected", got[0].Action)
	assert.Equal(t, "election_created", got[1].Action)
	assert.Equal(t, int64(1), b.Dropped())
}

func TestRingBuffer_RequeuePreservesOrder(t *testing.T) {
	b := NewRingBuffer(4)
	b.Enqueue(event(audit.EventVoteCast))
	batch := b.DequeueBatch(1)
	b.Enqueue(event(audit.EventVoteRejected))

	b.Requeue(batch)

	got := b.DequeueBatch(10)
	require.Len(t, got, 2)
	assert.Equal(t, "vote_cast", got[0].Action)
	assert.Equal(t, "vote_rejected", got[1].Action)
}
