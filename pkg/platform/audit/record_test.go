package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "campusvote/pkg/domain"
	"campusvote/pkg/requestcontext"
)

type captureEmitter struct {
	events  []Event
	ctxErrs []error
	err     error
}

func (c *captureEmitter) Emit(ctx context.Context, e Event) error {
	c.events = append(c.events, e)
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	return c.err
}

func TestRecord_EnrichesFromRequestContext(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.7", "kiosk/1.0")
	ctx = requestcontext.WithTime(ctx, now)
	voterID := id.NewVoterID()
	emitter := &captureEmitter{}

	Record(ctx, nil, emitter, EventVoteRejected, voterID, map[string]string{
		"election_id": "e1",
		"reason":      "duplicate_vote",
	})

	require.Len(t, emitter.events, 1)
	e := emitter.events[0]
	assert.Equal(t, "vote_rejected", e.Action)
	assert.Equal(t, CategorySecurity, e.Category)
	assert.Equal(t, voterID, e.ActorID)
	assert.Equal(t, "duplicate_vote", e.Reason)
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, "10.0.0.7", e.IP)
	assert.Equal(t, "kiosk/1.0", e.UserAgent)
	assert.Equal(t, now, e.Timestamp)
}

func TestRecord_SwallowsEmitErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	emitter := &captureEmitter{err: errors.New("store down")}

	assert.NotPanics(t, func() {
		Record(context.Background(), logger, emitter, EventVoteCast, id.NewVoterID(), nil)
	})
	assert.Contains(t, buf.String(), "failed to emit audit event")
	assert.Contains(t, buf.String(), "log_type=audit")
}

func TestRecord_OutlivesCancelledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(requestcontext.WithRequestID(context.Background(), "req-gone"))
	cancel()
	emitter := &captureEmitter{}

	Record(ctx, nil, emitter, EventVoteCast, id.NewVoterID(), nil)

	require.Len(t, emitter.events, 1)
	assert.NoError(t, emitter.ctxErrs[0])
	assert.Equal(t, "req-gone", emitter.events[0].RequestID)
}

func TestRecord_NilEmitter(t *testing.T) {
	assert.NotPanics(t, func() {
		Record(context.Background(), nil, nil, EventVoteCast, id.NewVoterID(), nil)
	})
}

func TestAuditEvent_Category(t *testing.T) {
	assert.Equal(t, CategoryCompliance, EventVoteCast.Category())
	assert.Equal(t, CategorySecurity, EventAuthorizationDenied.Category())
	assert.Equal(t, CategoryOperations, AuditEvent("something_new").Category())
}
