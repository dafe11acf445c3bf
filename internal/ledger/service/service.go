package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"campusvote/internal/ledger"
	"campusvote/internal/ledger/metrics"
	"campusvote/internal/ledger/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/sentinel"
)

// Service owns chain construction. It is the only writer of the vote ledger;
// tallies and verification are read-only.
type Service struct {
	store      Store
	seq        Sequencer
	candidates CandidateDirectory
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	clock      func() time.Time
	verify     singleflight.Group
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithCandidateDirectory(dir CandidateDirectory) Option {
	return func(s *Service) {
		s.candidates = dir
	}
}

// WithClock overrides the time source used for vote timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New builds the ledger service. store serves reads outside the sequencer.
func New(store Store, seq Sequencer, opts ...Option) *Service {
	s := &Service{
		store:  store,
		seq:    seq,
		tracer: otel.Tracer("campusvote/internal/ledger"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendVote records a ballot as one serialized unit: duplicate check, tail
// read, hash, insert. It fails with duplicate_vote when the voter already
// voted in the election and with storage_error when the unit could not
// commit; in both cases nothing is written.
func (s *Service) AppendVote(ctx context.Context, voterID id.VoterID, candidateID id.CandidateID, electionID id.ElectionID) (*models.VoteRecord, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.AppendVote", trace.WithAttributes(
		attribute.String("election_id", electionID.String()),
	))
	defer span.End()
	start := time.Now()

	var rec *models.VoteRecord
	err := s.seq.RunInTx(ctx, func(store Store) error {
		voted, err := store.HasVoted(ctx, voterID, electionID)
		if err != nil {
			return err
		}
		if voted {
			return errDuplicate()
		}

		previous := ledger.GenesisHash
		var tailTime time.Time
		tail, err := store.Tail(ctx)
		switch {
		case err == nil:
			previous = tail.VoteHash
			tailTime = tail.Timestamp
		case !errors.Is(err, sentinel.ErrNotFound):
			return err
		}

		ts := s.nextTimestamp(tailTime)
		rec = &models.VoteRecord{
			ID:           id.NewVoteID(),
			VoterID:      voterID,
			CandidateID:  candidateID,
			ElectionID:   electionID,
			VoteHash:     ledger.VoteDigest(voterID.String(), candidateID.String(), electionID.String(), ts),
			PreviousHash: previous,
			Timestamp:    ts,
		}
		if err := store.Insert(ctx, rec); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return errDuplicate()
			}
			return err
		}
		return nil
	})
	s.metrics.ObserveAppendLatency(time.Since(start))

	if err != nil {
		err = s.classify(err)
		s.metrics.IncrementAppend(string(dErrors.CodeOf(err)))
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}
	s.metrics.IncrementAppend("ok")
	span.SetAttributes(attribute.String("vote_id", rec.ID.String()))
	return rec, nil
}

// nextTimestamp keeps the chain's timestamps strictly increasing so replay
// order is unambiguous even when the clock stalls or steps back.
func (s *Service) nextTimestamp(tail time.Time) time.Time {
	ts := s.clock().UTC().Truncate(time.Microsecond)
	if !tail.IsZero() && !ts.After(tail) {
		ts = tail.UTC().Add(time.Microsecond)
	}
	return ts
}

func errDuplicate() error {
	return dErrors.New(dErrors.CodeDuplicateVote, "you have already voted in this election")
}

// classify maps whatever escaped the sequencer to a domain error. Domain
// errors pass through; everything else is a storage fault.
func (s *Service) classify(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeTimeout {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeStorage, "the vote could not be recorded, please try again")
}

// HasVoted reports whether the voter has a record in the election.
func (s *Service) HasVoted(ctx context.Context, voterID id.VoterID, electionID id.ElectionID) (bool, error) {
	voted, err := s.store.HasVoted(ctx, voterID, electionID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeStorage, "could not read the ledger")
	}
	return voted, nil
}

// CountForElection returns how many ballots the election has.
func (s *Service) CountForElection(ctx context.Context, electionID id.ElectionID) (int, error) {
	n, err := s.store.CountForElection(ctx, electionID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeStorage, "could not read the ledger")
	}
	return n, nil
}

// VerifyChain replays the whole ledger in timestamp order. Concurrent callers
// share one replay.
func (s *Service) VerifyChain(ctx context.Context) (models.ChainReport, error) {
	v, err, _ := s.verify.Do("verify", func() (any, error) {
		return s.verifyChain(context.WithoutCancel(ctx))
	})
	if err != nil {
		return models.ChainReport{}, err
	}
	return v.(models.ChainReport), nil
}

func (s *Service) verifyChain(ctx context.Context) (models.ChainReport, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.VerifyChain")
	defer span.End()
	start := time.Now()

	verifier := models.NewChainVerifier()
	if err := s.store.Walk(ctx, verifier.Next); err != nil {
		span.SetStatus(codes.Error, "walk failed")
		return models.ChainReport{}, dErrors.Wrap(err, dErrors.CodeStorage, "could not read the ledger")
	}
	report := verifier.Report(s.clock())
	s.metrics.ObserveVerify(report.Valid, time.Since(start))
	span.SetAttributes(attribute.Bool("valid", report.Valid), attribute.Int("length", report.Length))

	if !report.Valid && s.logger != nil {
		s.logger.ErrorContext(ctx, "ledger integrity check failed",
			"vote_id", report.BrokenAt.String(),
			"position", report.Position,
			"reason", report.Reason,
		)
	}
	return report, nil
}

// RequireValidChain returns a ledger_integrity error when the chain is broken.
func (s *Service) RequireValidChain(ctx context.Context) error {
	report, err := s.VerifyChain(ctx)
	if err != nil {
		return err
	}
	if !report.Valid {
		return dErrors.New(dErrors.CodeLedgerIntegrity, "ledger integrity check failed at record "+report.BrokenAt.String())
	}
	return nil
}
