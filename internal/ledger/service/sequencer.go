package service

import (
	"context"
	"sync"
	"time"

	dErrors "campusvote/pkg/domain-errors"
)

const defaultAppendTimeout = 5 * time.Second

// lockedSequencer serializes appends with one process-wide mutex. The ledger
// tail is global, so there is nothing to shard on.
type lockedSequencer struct {
	mu      sync.Mutex
	store   Store
	timeout time.Duration
}

// NewLockedSequencer returns a Sequencer for stores that live in this
// process.
func NewLockedSequencer(store Store, timeout time.Duration) Sequencer {
	if timeout <= 0 {
		timeout = defaultAppendTimeout
	}
	return &lockedSequencer{store: store, timeout: timeout}
}

func (s *lockedSequencer) RunInTx(ctx context.Context, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The wait for the lock may have outlived the caller.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(s.store)
}
