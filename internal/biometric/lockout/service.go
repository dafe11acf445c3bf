package lockout

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/audit"
	"campusvote/pkg/requestcontext"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// Store persists lockout records. Get returns nil, nil for unknown keys.
type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	RecordFailure(ctx context.Context, key string, now time.Time, window time.Duration) (*Record, error)
	Lock(ctx context.Context, key string, until time.Time) error
	Clear(ctx context.Context, key string) error
}

// Service refuses biometric attempts for a voter after too many mismatches
// in one window.
type Service struct {
	store       Store
	maxFailures int
	window      time.Duration
	logger      *slog.Logger
	auditor     audit.Emitter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditEmitter(emitter audit.Emitter) Option {
	return func(s *Service) {
		s.auditor = emitter
	}
}

// WithPolicy sets the number of mismatches tolerated per window; the lock
// lasts one window.
func WithPolicy(maxFailures int, window time.Duration) Option {
	return func(s *Service) {
		if maxFailures > 0 {
			s.maxFailures = maxFailures
		}
		if window > 0 {
			s.window = window
		}
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("lockout store is required")
	}
	s := &Service{
		store:       store,
		maxFailures: defaultMaxFailures,
		window:      defaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func key(voterID id.VoterID) string {
	return voterID.String()
}

// Check fails with too_many_attempts while the voter is locked.
func (s *Service) Check(ctx context.Context, voterID id.VoterID) error {
	rec, err := s.store.Get(ctx, key(voterID))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read biometric lockout")
	}
	if rec.IsLockedAt(requestcontext.Now(ctx)) {
		return dErrors.New(dErrors.CodeTooManyRequests, "too many failed fingerprint attempts, try again later")
	}
	return nil
}

// RecordFailure counts a mismatch and locks the voter once the limit is
// reached.
func (s *Service) RecordFailure(ctx context.Context, voterID id.VoterID) (*Record, error) {
	now := requestcontext.Now(ctx)
	rec, err := s.store.RecordFailure(ctx, key(voterID), now, s.window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record biometric failure")
	}
	if rec.Failures < s.maxFailures || rec.IsLockedAt(now) {
		return rec, nil
	}

	until := now.Add(s.window)
	if err := s.store.Lock(ctx, key(voterID), until); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to lock biometric attempts")
	}
	rec.LockedUntil = &until
	audit.Record(ctx, s.logger, s.auditor, audit.EventBiometricLockout, voterID, map[string]string{
		"failures":     strconv.Itoa(rec.Failures),
		"locked_until": until.UTC().Format(time.RFC3339),
		"reason":       "too_many_mismatches",
	})
	return rec, nil
}

// Clear resets the counter after a successful match.
func (s *Service) Clear(ctx context.Context, voterID id.VoterID) error {
	if err := s.store.Clear(ctx, key(voterID)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear biometric lockout")
	}
	return nil
}
