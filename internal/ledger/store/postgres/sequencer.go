package postgres

import (
	"context"
	"database/sql"
	"time"

	ledgerservice "campusvote/internal/ledger/service"
	"campusvote/internal/platform/postgres"
)

// ledgerLockKey is the transaction-scoped advisory lock every append holds.
// The value is arbitrary but must be the same in every process sharing the
// database.
const ledgerLockKey int64 = 0x6c6564676572

// Sequencer serializes appends across processes: each append runs in a
// transaction that first takes the ledger advisory lock, so the tail read and
// the insert of two appends can never interleave. The unique (voter_id,
// election_id) constraint backs up the duplicate check.
//
// The transaction runs at READ COMMITTED. Under REPEATABLE READ or
// SERIALIZABLE the snapshot would be taken by the lock statement itself,
// before the wait, and the tail read after the wait would miss the append
// that held the lock.
type Sequencer struct {
	store  *PostgresStore
	runner *postgres.TxRunner
}

func NewSequencer(db *sql.DB, timeout time.Duration) *Sequencer {
	return &Sequencer{
		store: New(db),
		runner: postgres.NewTxRunner(db,
			postgres.WithIsolation(sql.LevelReadCommitted),
			postgres.WithTimeout(timeout),
		),
	}
}

func (s *Sequencer) RunInTx(ctx context.Context, fn func(store ledgerservice.Store) error) error {
	return s.runner.Run(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
			return err
		}
		return fn(s.store.withTx(tx))
	})
}
