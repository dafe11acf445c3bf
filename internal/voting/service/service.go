package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"campusvote/internal/biometric"
	bmodels "campusvote/internal/biometric/models"
	emodels "campusvote/internal/election/models"
	lmodels "campusvote/internal/ledger/models"
	"campusvote/internal/voting/metrics"
	"campusvote/internal/voting/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/audit"
	"campusvote/pkg/requestcontext"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// Elections resolves the election and candidate a ballot refers to.
type Elections interface {
	GetElection(ctx context.Context, electionID id.ElectionID) (*emodels.Election, error)
	FindCandidate(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) (*emodels.Candidate, error)
}

// Gate admits a voter after a fresh fingerprint proof.
type Gate interface {
	Admit(ctx context.Context, voterID id.VoterID, req bmodels.ProofRequest) error
}

// Ledger is the vote ledger: the serialized append and its read side.
type Ledger interface {
	AppendVote(ctx context.Context, voterID id.VoterID, candidateID id.CandidateID, electionID id.ElectionID) (*lmodels.VoteRecord, error)
	HasVoted(ctx context.Context, voterID id.VoterID, electionID id.ElectionID) (bool, error)
	CountVotes(ctx context.Context, electionID id.ElectionID) ([]lmodels.CandidateTally, error)
	VerifyChain(ctx context.Context) (lmodels.ChainReport, error)
}

// Authorizer gates administrative reads. It audits its own decisions.
type Authorizer interface {
	RequireAdmin(ctx context.Context, voterID id.VoterID, action string) error
}

// AuditLog reads back the audit trail.
type AuditLog interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Service runs the vote flow: the ballot is checked against the election,
// the voter passes the biometric gate, and only then does the ledger see the
// vote. It also serves tallies and ledger verification.
type Service struct {
	elections  Elections
	gate       Gate
	ledger     Ledger
	authorizer Authorizer
	auditLog   AuditLog
	logger     *slog.Logger
	metrics    *metrics.Metrics
	auditor    audit.Emitter
	tracer     trace.Tracer
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

func WithAuditEmitter(emitter audit.Emitter) Option {
	return func(s *Service) {
		s.auditor = emitter
	}
}

// WithAuditLog enables RecentAudit.
func WithAuditLog(log AuditLog) Option {
	return func(s *Service) {
		s.auditLog = log
	}
}

func New(elections Elections, gate Gate, ledger Ledger, authorizer Authorizer, opts ...Option) *Service {
	s := &Service{
		elections:  elections,
		gate:       gate,
		ledger:     ledger,
		authorizer: authorizer,
		tracer:     otel.Tracer("campusvote/internal/voting"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CastVote records one ballot for voterID. Every rejection is terminal for
// the attempt and leaves the ledger untouched; the outcome is audited either
// way.
func (s *Service) CastVote(ctx context.Context, voterID id.VoterID, electionID id.ElectionID, req models.CastVoteRequest, userAgent string) (*models.VoteReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "voting.CastVote", trace.WithAttributes(
		attribute.String("election_id", electionID.String()),
	))
	defer span.End()
	s.metrics.IncInFlight()
	defer s.metrics.DecInFlight()
	start := time.Now()
	defer func() { s.metrics.ObserveCast(time.Since(start)) }()

	candidateID, err := s.checkBallot(ctx, electionID, req.CandidateID)
	if err != nil {
		return nil, s.reject(ctx, span, voterID, electionID, req.CandidateID, err)
	}

	// The ledger re-checks under the sequencer; this only spares the voter
	// a fingerprint prompt that could not lead anywhere.
	voted, err := s.ledger.HasVoted(ctx, voterID, electionID)
	if err != nil {
		return nil, s.reject(ctx, span, voterID, electionID, req.CandidateID, err)
	}
	if voted {
		return nil, s.reject(ctx, span, voterID, electionID, req.CandidateID,
			dErrors.New(dErrors.CodeDuplicateVote, "you have already voted in this election"))
	}

	if err := s.gate.Admit(ctx, voterID, bmodels.ProofRequest{
		VoterID:           voterID,
		AuthenticatorData: req.Proof.AuthenticatorData,
		ClientDataJSON:    req.Proof.ClientDataJSON,
		UserAgent:         userAgent,
	}); err != nil {
		return nil, s.reject(ctx, span, voterID, electionID, req.CandidateID, err)
	}

	rec, err := s.ledger.AppendVote(ctx, voterID, candidateID, electionID)
	if err != nil {
		return nil, s.reject(ctx, span, voterID, electionID, req.CandidateID, err)
	}

	s.metrics.IncrementVote("cast")
	span.SetAttributes(attribute.String("vote_id", rec.ID.String()))
	audit.Record(ctx, s.logger, s.auditor, audit.EventVoteCast, voterID, map[string]string{
		"election_id":  electionID.String(),
		"candidate_id": candidateID.String(),
		"vote_id":      rec.ID.String(),
		"vote_hash":    rec.VoteHash,
	})
	return models.NewVoteReceipt(rec), nil
}

// checkBallot resolves the selected candidate within the election.
func (s *Service) checkBallot(ctx context.Context, electionID id.ElectionID, rawCandidate string) (id.CandidateID, error) {
	rawCandidate = strings.TrimSpace(rawCandidate)
	if rawCandidate == "" {
		return id.CandidateID{}, dErrors.New(dErrors.CodeBadRequest, "no candidate selected")
	}
	candidateID, err := id.ParseCandidateID(rawCandidate)
	if err != nil {
		return id.CandidateID{}, err
	}
	if _, err := s.elections.GetElection(ctx, electionID); err != nil {
		return id.CandidateID{}, err
	}
	if _, err := s.elections.FindCandidate(ctx, electionID, candidateID); err != nil {
		return id.CandidateID{}, err
	}
	return candidateID, nil
}

func (s *Service) reject(ctx context.Context, span trace.Span, voterID id.VoterID, electionID id.ElectionID, candidate string, err error) error {
	code := string(dErrors.CodeOf(err))
	s.metrics.IncrementVote(code)
	span.SetStatus(codes.Error, code)

	details := map[string]string{
		"election_id": electionID.String(),
		"reason":      code,
	}
	if candidate != "" {
		details["candidate_id"] = candidate
	}
	if detail := biometric.FailureReason(err); detail != "" {
		details["biometric_reason"] = detail
	}
	audit.Record(ctx, s.logger, s.auditor, audit.EventVoteRejected, voterID, details)
	return err
}

// HasVoted reports whether voterID has a ballot in the election.
func (s *Service) HasVoted(ctx context.Context, voterID id.VoterID, electionID id.ElectionID) (*models.VoteStatus, error) {
	if _, err := s.elections.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	voted, err := s.ledger.HasVoted(ctx, voterID, electionID)
	if err != nil {
		return nil, err
	}
	return &models.VoteStatus{ElectionID: electionID, HasVoted: voted}, nil
}

// Tally counts an election's ballots from the ledger.
func (s *Service) Tally(ctx context.Context, electionID id.ElectionID) (*models.Tally, error) {
	if _, err := s.elections.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	results, err := s.ledger.CountVotes(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return models.NewTally(electionID, results), nil
}

// Report tallies the election and verifies the chain concurrently. Admin
// only.
func (s *Service) Report(ctx context.Context, actor id.VoterID, electionID id.ElectionID) (*models.ElectionReport, error) {
	if err := s.authorizer.RequireAdmin(ctx, actor, "view_report"); err != nil {
		return nil, err
	}
	election, err := s.elections.GetElection(ctx, electionID)
	if err != nil {
		return nil, err
	}

	var (
		results []lmodels.CandidateTally
		chain   lmodels.ChainReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results, err = s.ledger.CountVotes(gctx, electionID)
		return err
	})
	g.Go(func() error {
		var err error
		chain, err = s.ledger.VerifyChain(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.auditVerification(ctx, actor, chain)

	return &models.ElectionReport{
		Election: *election,
		Tally:    *models.NewTally(electionID, results),
		Chain:    chain,
	}, nil
}

// VerifyLedger replays the whole chain. A broken chain is reported, not
// returned as an error, and is never repaired. Admin only.
func (s *Service) VerifyLedger(ctx context.Context, actor id.VoterID) (*lmodels.ChainReport, error) {
	if err := s.authorizer.RequireAdmin(ctx, actor, "verify_ledger"); err != nil {
		return nil, err
	}
	report, err := s.ledger.VerifyChain(ctx)
	if err != nil {
		return nil, err
	}
	s.auditVerification(ctx, actor, report)
	return &report, nil
}

func (s *Service) auditVerification(ctx context.Context, actor id.VoterID, report lmodels.ChainReport) {
	if report.Valid {
		audit.Record(ctx, s.logger, s.auditor, audit.EventLedgerVerified, actor, map[string]string{
			"length":    strconv.Itoa(report.Length),
			"tail_hash": report.TailHash,
		})
		return
	}
	details := map[string]string{
		"position": strconv.Itoa(report.Position),
		"reason":   report.Reason,
	}
	if report.BrokenAt != nil {
		details["vote_id"] = report.BrokenAt.String()
	}
	audit.Record(ctx, s.logger, s.auditor, audit.EventLedgerIntegrityFailed, actor, details)
}

// RecentAudit returns the newest audit events. Admin only.
func (s *Service) RecentAudit(ctx context.Context, actor id.VoterID, limit int) ([]models.AuditEntry, error) {
	if err := s.authorizer.RequireAdmin(ctx, actor, "read_audit"); err != nil {
		return nil, err
	}
	if s.auditLog == nil {
		return []models.AuditEntry{}, nil
	}
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}
	events, err := s.auditLog.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to read audit trail")
	}
	out := make([]models.AuditEntry, 0, len(events))
	for _, e := range events {
		out = append(out, models.NewAuditEntry(e))
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "audit trail read",
			"count", len(out),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return out, nil
}
