// Package postgres opens the PostgreSQL pool, runs transactions with
// serialization-failure retry, and classifies driver errors.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"campusvote/internal/platform/config"
	txcontext "campusvote/pkg/platform/tx"
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Open connects through the pgx database/sql driver and pings.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// IsUniqueViolation reports a unique constraint failure. An empty constraint
// matches any unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	code, name := pgCode(err)
	return code == codeUniqueViolation && (constraint == "" || constraint == name)
}

func IsForeignKeyViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeForeignKeyViolation
}

// IsRetryable reports errors that a fresh attempt of the same transaction
// may not hit again.
func IsRetryable(err error) bool {
	code, _ := pgCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// TxRunner runs functions inside a database transaction.
type TxRunner struct {
	db          *sql.DB
	opts        *sql.TxOptions
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
}

type TxOption func(*TxRunner)

func WithIsolation(level sql.IsolationLevel) TxOption {
	return func(r *TxRunner) {
		r.opts = &sql.TxOptions{Isolation: level}
	}
}

// WithTimeout bounds a transaction when the caller's context has no deadline.
func WithTimeout(d time.Duration) TxOption {
	return func(r *TxRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithMaxAttempts(n int) TxOption {
	return func(r *TxRunner) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

func NewTxRunner(db *sql.DB, opts ...TxOption) *TxRunner {
	r := &TxRunner{
		db:          db,
		timeout:     5 * time.Second,
		maxAttempts: 5,
		backoff:     10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes fn in a transaction carried on the context, retrying with
// bounded backoff on serialization failures and deadlocks. fn must be safe
// to run more than once.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var err error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.backoff << (attempt - 1)):
			}
		}
		err = r.runOnce(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, r.opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), tx); err != nil {
		return err
	}
	return tx.Commit()
}
