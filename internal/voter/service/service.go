package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	bmodels "campusvote/internal/biometric/models"
	"campusvote/internal/platform/metrics"
	"campusvote/internal/voter/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/audit"
	"campusvote/pkg/platform/sentinel"
	"campusvote/pkg/requestcontext"
)

const (
	defaultTokenTTL      = 15 * time.Minute
	defaultEnrollmentTTL = 10 * time.Minute
)

// Store persists voter profiles.
type Store interface {
	Create(ctx context.Context, voter *models.Voter) error
	FindByID(ctx context.Context, voterID id.VoterID) (*models.Voter, error)
	FindByRollNumber(ctx context.Context, rollNumber string) (*models.Voter, error)
	// List returns every voter, newest first.
	List(ctx context.Context) ([]models.Voter, error)
}

// Gate is the biometric gate as seen by voter flows.
type Gate interface {
	Enroll(ctx context.Context, voterID id.VoterID, req bmodels.ProofRequest) (*bmodels.Credential, error)
	Admit(ctx context.Context, voterID id.VoterID, req bmodels.ProofRequest) error
}

// TokenIssuer mints access tokens for signed-in voters and the one-off
// enrollment tokens handed out at registration.
type TokenIssuer interface {
	GenerateAccessToken(voterID id.VoterID, expiresIn time.Duration) (string, error)
	GenerateEnrollmentToken(voterID id.VoterID, expiresIn time.Duration) (string, error)
	ValidateEnrollmentToken(token string) (id.VoterID, error)
}

// Service registers voters, enrolls their fingerprint, signs them in and
// answers admin checks.
type Service struct {
	store     Store
	gate      Gate
	tokens    TokenIssuer
	tokenTTL  time.Duration
	enrollTTL time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditor   audit.Emitter
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

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithEnrollmentTTL bounds how long after registration the fingerprint can
// be enrolled.
func WithEnrollmentTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.enrollTTL = ttl
		}
	}
}

func New(store Store, gate Gate, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:     store,
		gate:      gate,
		tokens:    tokens,
		tokenTTL:  defaultTokenTTL,
		enrollTTL: defaultEnrollmentTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error) {
	voter, err := models.NewVoter(req.FullName, req.RollNumber, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, voter); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "a voter with this roll number is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to register voter")
	}

	s.metrics.IncrementVotersRegistered()
	audit.Record(ctx, s.logger, s.auditor, audit.EventVoterRegistered, voter.ID, map[string]string{
		"roll_number": voter.RollNumber,
	})

	token, err := s.tokens.GenerateEnrollmentToken(voter.ID, s.enrollTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue enrollment token")
	}
	return &models.RegisterResult{
		Voter:               *voter,
		EnrollmentToken:     token,
		EnrollmentExpiresIn: int(s.enrollTTL.Seconds()),
	}, nil
}

// Enroll stores the voter's fingerprint. Only the holder of the enrollment
// token issued at registration can enroll, and only once.
func (s *Service) Enroll(ctx context.Context, req models.EnrollRequest, userAgent string) (*models.EnrollResult, error) {
	if req.VoterID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "voter_id is required")
	}
	if req.EnrollmentToken == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "enrollment token is required")
	}
	tokenVoter, err := s.tokens.ValidateEnrollmentToken(req.EnrollmentToken)
	if err != nil {
		return nil, err
	}
	if tokenVoter != req.VoterID {
		audit.Record(ctx, s.logger, s.auditor, audit.EventAuthorizationDenied, req.VoterID, map[string]string{
			"action":   "enroll_biometric",
			"decision": "denied",
			"reason":   "enrollment_token_mismatch",
		})
		return nil, dErrors.New(dErrors.CodeUnauthorized, "enrollment token was not issued for this voter")
	}
	if _, err := s.find(ctx, req.VoterID); err != nil {
		return nil, err
	}
	cred, err := s.gate.Enroll(ctx, req.VoterID, proofRequest(req.VoterID, req.Proof, userAgent))
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementBiometricEnrolled()
	return &models.EnrollResult{VoterID: req.VoterID, Device: cred.DeviceInfo.DisplayName()}, nil
}

// SignIn admits the voter behind the roll number through the biometric gate
// and issues an access token. Admin sign-ins are audited as admin logins.
func (s *Service) SignIn(ctx context.Context, req models.SignInRequest, userAgent string) (*models.SignInResult, error) {
	voter, err := s.store.FindByRollNumber(ctx, models.NormalizeRollNumber(req.RollNumber))
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.IncrementSignIn("unknown_voter")
		audit.Record(ctx, s.logger, s.auditor, audit.EventSignInFailed, id.VoterID{}, map[string]string{
			"reason": "unknown_roll_number",
		})
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid roll number or fingerprint")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to look up voter")
	}

	if err := s.gate.Admit(ctx, voter.ID, proofRequest(voter.ID, req.Proof, userAgent)); err != nil {
		s.metrics.IncrementSignIn(string(dErrors.CodeOf(err)))
		details := map[string]string{"reason": string(dErrors.CodeOf(err))}
		if voter.IsAdmin {
			audit.Record(ctx, s.logger, s.auditor, audit.EventAdminLoginFailed, voter.ID, details)
		} else {
			audit.Record(ctx, s.logger, s.auditor, audit.EventSignInFailed, voter.ID, details)
		}
		return nil, err
	}

	token, err := s.tokens.GenerateAccessToken(voter.ID, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}

	s.metrics.IncrementSignIn("ok")
	if voter.IsAdmin {
		audit.Record(ctx, s.logger, s.auditor, audit.EventAdminLoginSucceeded, voter.ID, nil)
	} else {
		audit.Record(ctx, s.logger, s.auditor, audit.EventSignInSucceeded, voter.ID, nil)
	}
	return &models.SignInResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		VoterID:     voter.ID,
		IsAdmin:     voter.IsAdmin,
	}, nil
}

// Get returns the voter's profile.
func (s *Service) Get(ctx context.Context, voterID id.VoterID) (*models.Voter, error) {
	return s.find(ctx, voterID)
}

// ListVoters returns every voter profile, newest first. Admins only.
func (s *Service) ListVoters(ctx context.Context, actor id.VoterID) ([]models.Voter, error) {
	if err := s.RequireAdmin(ctx, actor, "list_voters"); err != nil {
		return nil, err
	}
	voters, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to list voters")
	}
	return voters, nil
}

// IsAdmin reports whether the voter holds admin authority. Unknown voters
// are not admins.
func (s *Service) IsAdmin(ctx context.Context, voterID id.VoterID) (bool, error) {
	voter, err := s.store.FindByID(ctx, voterID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeStorage, "failed to look up voter")
	}
	return voter.IsAdmin, nil
}

// RequireAdmin fails with forbidden unless the voter is an admin. Every
// decision is audited.
func (s *Service) RequireAdmin(ctx context.Context, voterID id.VoterID, action string) error {
	isAdmin, err := s.IsAdmin(ctx, voterID)
	if err != nil {
		return err
	}
	event, decision := audit.EventAuthorizationGranted, "granted"
	if !isAdmin {
		event, decision = audit.EventAuthorizationDenied, "denied"
	}
	s.metrics.IncrementAuthorization(decision)
	audit.Record(ctx, s.logger, s.auditor, event, voterID, map[string]string{
		"action":   action,
		"decision": decision,
	})
	if !isAdmin {
		return dErrors.New(dErrors.CodeForbidden, "admin privileges required")
	}
	return nil
}

func (s *Service) find(ctx context.Context, voterID id.VoterID) (*models.Voter, error) {
	voter, err := s.store.FindByID(ctx, voterID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "voter not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to look up voter")
	}
	return voter, nil
}

func proofRequest(voterID id.VoterID, p models.ProofPayload, userAgent string) bmodels.ProofRequest {
	return bmodels.ProofRequest{
		VoterID:           voterID,
		AuthenticatorData: p.AuthenticatorData,
		ClientDataJSON:    p.ClientDataJSON,
		UserAgent:         userAgent,
	}
}
