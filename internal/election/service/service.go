package service

import (
	"context"
	"errors"
	"log/slog"

	"campusvote/internal/election/models"
	"campusvote/internal/platform/metrics"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/audit"
	"campusvote/pkg/platform/sentinel"
	"campusvote/pkg/requestcontext"
)

// Store persists elections and candidates.
type Store interface {
	CreateElection(ctx context.Context, e *models.Election) error
	FindElection(ctx context.Context, electionID id.ElectionID) (*models.Election, error)
	ListElections(ctx context.Context) ([]models.ElectionSummary, error)
	// DeleteElection returns sentinel.ErrInvalidState when ballots reference
	// the election.
	DeleteElection(ctx context.Context, electionID id.ElectionID) error
	AddCandidate(ctx context.Context, c *models.Candidate) error
	ListCandidates(ctx context.Context, electionID id.ElectionID) ([]models.Candidate, error)
	FindCandidate(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) (*models.Candidate, error)
}

// Authorizer gates privileged mutations. It audits its own decisions.
type Authorizer interface {
	RequireAdmin(ctx context.Context, voterID id.VoterID, action string) error
}

// BallotCounter reports whether an election already has ballots.
type BallotCounter interface {
	CountForElection(ctx context.Context, electionID id.ElectionID) (int, error)
}

type Service struct {
	store      Store
	authorizer Authorizer
	ballots    BallotCounter
	logger     *slog.Logger
	metrics    *metrics.Metrics
	auditor    audit.Emitter
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

func New(store Store, authorizer Authorizer, ballots BallotCounter, opts ...Option) *Service {
	s := &Service{store: store, authorizer: authorizer, ballots: ballots}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateElection is admin only.
func (s *Service) CreateElection(ctx context.Context, actor id.VoterID, req models.CreateElectionRequest) (*models.Election, error) {
	if err := s.authorizer.RequireAdmin(ctx, actor, "create_election"); err != nil {
		return nil, err
	}
	e, err := models.NewElection(req.Name, actor, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateElection(ctx, e); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to create election")
	}
	s.metrics.IncrementElectionsCreated()
	audit.Record(ctx, s.logger, s.auditor, audit.EventElectionCreated, actor, map[string]string{
		"election_id": e.ID.String(),
		"name":        e.Name,
	})
	return e, nil
}

// AddCandidate is admin only.
func (s *Service) AddCandidate(ctx context.Context, actor id.VoterID, electionID id.ElectionID, req models.AddCandidateRequest) (*models.Candidate, error) {
	if err := s.authorizer.RequireAdmin(ctx, actor, "add_candidate"); err != nil {
		return nil, err
	}
	if _, err := s.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	c, err := models.NewCandidate(req.Name, electionID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddCandidate(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, errElectionNotFound()
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to add candidate")
	}
	audit.Record(ctx, s.logger, s.auditor, audit.EventCandidateAdded, actor, map[string]string{
		"election_id":  electionID.String(),
		"candidate_id": c.ID.String(),
		"name":         c.Name,
	})
	return c, nil
}

// DeleteElection is allowed only to the election's creator and only while
// it has no ballots; the ledger is append-only.
func (s *Service) DeleteElection(ctx context.Context, actor id.VoterID, electionID id.ElectionID) error {
	e, err := s.GetElection(ctx, electionID)
	if err != nil {
		return err
	}
	if e.CreatedBy != actor {
		audit.Record(ctx, s.logger, s.auditor, audit.EventAuthorizationDenied, actor, map[string]string{
			"action":      "delete_election",
			"decision":    "denied",
			"election_id": electionID.String(),
			"reason":      "not_creator",
		})
		return dErrors.New(dErrors.CodeForbidden, "only the creator can delete this election")
	}

	n, err := s.ballots.CountForElection(ctx, electionID)
	if err != nil {
		return err
	}
	if n > 0 {
		return errHasBallots()
	}
	if err := s.store.DeleteElection(ctx, electionID); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidState):
			return errHasBallots()
		case errors.Is(err, sentinel.ErrNotFound):
			return errElectionNotFound()
		}
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to delete election")
	}
	audit.Record(ctx, s.logger, s.auditor, audit.EventElectionDeleted, actor, map[string]string{
		"election_id": electionID.String(),
	})
	return nil
}

func (s *Service) ListElections(ctx context.Context) ([]models.ElectionSummary, error) {
	out, err := s.store.ListElections(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to list elections")
	}
	return out, nil
}

func (s *Service) GetElection(ctx context.Context, electionID id.ElectionID) (*models.Election, error) {
	e, err := s.store.FindElection(ctx, electionID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, errElectionNotFound()
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to load election")
	}
	return e, nil
}

func (s *Service) ListCandidates(ctx context.Context, electionID id.ElectionID) ([]models.Candidate, error) {
	if _, err := s.GetElection(ctx, electionID); err != nil {
		return nil, err
	}
	out, err := s.store.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to list candidates")
	}
	return out, nil
}

// FindCandidate fails with invalid_input when the candidate is not on the
// election's ballot.
func (s *Service) FindCandidate(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) (*models.Candidate, error) {
	c, err := s.store.FindCandidate(ctx, electionID, candidateID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "candidate is not running in this election")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to load candidate")
	}
	return c, nil
}

func errElectionNotFound() error {
	return dErrors.New(dErrors.CodeNotFound, "election not found")
}

func errHasBallots() error {
	return dErrors.New(dErrors.CodeConflict, "election has recorded votes and cannot be deleted")
}
