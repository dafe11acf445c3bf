package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	id "campusvote/pkg/domain"
	audit "campusvote/pkg/platform/audit"
	"campusvote/pkg/platform/audit/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	voterID := id.NewVoterID()
	event := audit.Event{
		ActorID: voterID,
		Action:  string(audit.EventVoteCast),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), voterID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventVoteCast), events[0].Action)
}

func TestPublisher_AsyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))
	defer pub.Close()

	voterID := id.NewVoterID()
	event := audit.Event{
		ActorID: voterID,
		Action:  string(audit.EventVoteRejected),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	// Wait for async processing
	time.Sleep(100 * time.Millisecond)

	events, err := pub.List(context.Background(), voterID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventVoteRejected), events[0].Action)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	voterID := id.NewVoterID()

	// Emit multiple events
	for range 10 {
		event := audit.Event{
			ActorID: voterID,
			Action:  string(audit.EventVoteCast),
		}
		err := pub.Emit(context.Background(), event)
		require.NoError(t, err)
	}

	// Close should drain all events
	pub.Close()

	events, err := store.ListByUser(context.Background(), voterID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_BufferFull_DropsEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	voterID := id.NewVoterID()

	// Fill the buffer with concurrent writes
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event := audit.Event{
				ActorID: voterID,
				Action:  string(audit.EventVoteCast),
			}
			_ = pub.Emit(context.Background(), event)
		}()
	}
	wg.Wait()

	// Some events should have been dropped (buffer size 1)
	// Just verify no panic and publisher still works
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	voterID := id.NewVoterID()
	event := audit.Event{
		ActorID: voterID,
		Action:  string(audit.EventVoteCast),
		// Timestamp not set
	}

	before := time.Now()
	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)
	after := time.Now()

	events, err := pub.List(context.Background(), voterID)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.True(t, !events[0].Timestamp.Before(before), "timestamp should be >= before")
	assert.True(t, !events[0].Timestamp.After(after), "timestamp should be <= after")
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	voterID := id.NewVoterID()
	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	event := audit.Event{
		ActorID:   voterID,
		Action:    string(audit.EventVoteCast),
		Timestamp: customTime,
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), voterID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_CancelledCallerStillRecorded(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1024))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	const votes = 200
	for i := 0; i < votes; i++ {
		audit.Record(ctx, nil, pub, audit.EventVoteCast, id.NewVoterID(), map[string]string{"vote_id": id.NewVoteID().String()})
	}
	pub.Close()

	events, err := store.ListRecent(context.Background(), votes*2)
	require.NoError(t, err)
	assert.Len(t, events, votes)
}

func TestPublisher_AsyncEmitIgnoresCallerContext(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(8))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 8; i++ {
		require.NoError(t, pub.Emit(ctx, audit.Event{ActorID: id.NewVoterID(), Action: string(audit.EventVoteCast)}))
	}
	pub.Close()

	events, err := store.ListRecent(context.Background(), 16)
	require.NoError(t, err)
	assert.Len(t, events, 8)
}

func TestPublisher_MultipleEvents(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	voterID := id.NewVoterID()

	events := []audit.Event{
		{ActorID: voterID, Action: string(audit.EventVoteCast)},
		{ActorID: voterID, Action: string(audit.EventElectionCreated)},
		{ActorID: voterID, Action: string(audit.EventCandidateAdded)},
	}

	for _, event := range events {
		err := pub.Emit(context.Background(), event)
		require.NoError(t, err)
	}

	result, err := pub.List(context.Background(), voterID)
	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.Equal(t, string(audit.EventVoteCast), result[0].Action)
	assert.Equal(t, string(audit.EventElectionCreated), result[1].Action)
	assert.Equal(t, string(audit.EventCandidateAdded), result[2].Action)
}

func TestPublisher_DifferentUsers(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	voterID1 := id.NewVoterID()
	voterID2 := id.NewVoterID()

	err := pub.Emit(context.Background(), audit.Event{
		ActorID: voterID1,
		Action:  string(audit.EventVoteCast),
	})
	require.NoError(t, err)

	err = pub.Emit(context.Background(), audit.Event{
		ActorID: voterID2,
		Action:  string(audit.EventVoteRejected),
	})
	require.NoError(t, err)

	events1, err := pub.List(context.Background(), voterID1)
	require.NoError(t, err)
	require.Len(t, events1, 1)
	assert.Equal(t, string(audit.EventVoteCast), events1[0].Action)

	events2, err := pub.List(context.Background(), voterID2)
	require.NoError(t, err)
	require.Len(t, events2, 1)
	assert.Equal(t, string(audit.EventVoteRejected), events2[0].Action)
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (s *recordingSink) Emit(_ context.Context, e audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func TestPublisher_FansOutToSinks(t *testing.T) {
	store := memory.NewInMemoryStore()
	sink := &recordingSink{err: errors.New("broker down")}
	pub := NewPublisher(store, WithSink(sink))
	defer pub.Close()

	voterID := id.NewVoterID()
	err := pub.Emit(context.Background(), audit.Event{ActorID: voterID, Action: string(audit.EventVoteCast)})
	require.NoError(t, err, "sink failures must not fail the emit")

	require.Len(t, sink.events, 1)
	assert.False(t, sink.events[0].ID.IsNil(), "publisher assigns an id")
	assert.Equal(t, audit.CategoryCompliance, sink.events[0].Category)

	events, err := pub.List(context.Background(), voterID)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestPublisher_ListRecentNewestFirst(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	for _, action := range []audit.AuditEvent{audit.EventElectionCreated, audit.EventCandidateAdded, audit.EventVoteCast} {
		require.NoError(t, pub.Emit(context.Background(), audit.Event{ActorID: id.NewVoterID(), Action: string(action)}))
	}

	recent, err := pub.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, string(audit.EventVoteCast), recent[0].Action)
	assert.Equal(t, string(audit.EventCandidateAdded), recent[1].Action)
}
