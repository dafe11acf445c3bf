package biometric

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"campusvote/internal/biometric/lockout"
	"campusvote/internal/biometric/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
	"campusvote/pkg/platform/audit"
	"campusvote/pkg/platform/sentinel"
	"campusvote/pkg/requestcontext"
)

// Internal failure reasons. Callers see one uniform message; errors.Is tells
// the two apart for logs and audit.
var (
	ErrNotEnrolled    = errors.New("not_enrolled")
	ErrDigestMismatch = errors.New("digest_mismatch")
)

const failureMessage = "fingerprint verification failed"

// CredentialStore persists enrolled credentials.
type CredentialStore interface {
	// Create stores a credential; a second one for the same voter fails with
	// sentinel.ErrAlreadyUsed.
	Create(ctx context.Context, cred *models.Credential) error
	// FindByVoter returns sentinel.ErrNotFound when nothing is enrolled.
	FindByVoter(ctx context.Context, voterID id.VoterID) (*models.Credential, error)
}

// Gate enrolls credentials and admits voters whose fresh proof matches.
type Gate struct {
	auth    Authenticator
	store   CredentialStore
	lockout *lockout.Service
	logger  *slog.Logger
	auditor audit.Emitter
}

type GateOption func(*Gate)

func WithLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithLockout refuses attempts for voters with too many recent mismatches.
func WithLockout(svc *lockout.Service) GateOption {
	return func(g *Gate) {
		g.lockout = svc
	}
}

func WithAuditEmitter(emitter audit.Emitter) GateOption {
	return func(g *Gate) {
		g.auditor = emitter
	}
}

func NewGate(auth Authenticator, store CredentialStore, opts ...GateOption) *Gate {
	g := &Gate{auth: auth, store: store}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enroll stores the freshly produced digest as the voter's credential,
// unchanged. A voter enrolls once.
func (g *Gate) Enroll(ctx context.Context, voterID id.VoterID, req models.ProofRequest) (*models.Credential, error) {
	req.VoterID = voterID
	proof, err := g.auth.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	cred := &models.Credential{
		VoterID:    voterID,
		Digest:     proof.Digest,
		DeviceInfo: models.NewDeviceInfo(proof.Method, req.UserAgent),
		UpdatedAt:  requestcontext.Now(ctx),
	}
	if err := g.store.Create(ctx, cred); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "a fingerprint is already enrolled for this voter")
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "voter is not registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "failed to save fingerprint")
	}

	audit.Record(ctx, g.logger, g.auditor, audit.EventBiometricEnrolled, voterID, map[string]string{
		"method": proof.Method,
		"device": cred.DeviceInfo.DisplayName(),
	})
	return cred, nil
}

// Verify compares proof with the voter's enrolled digest in constant time.
// Failures carry biometric_failed with a uniform message; the wrapped cause
// is ErrNotEnrolled or ErrDigestMismatch.
func (g *Gate) Verify(ctx context.Context, voterID id.VoterID, proof models.Proof) error {
	cred, err := g.store.FindByVoter(ctx, voterID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(ErrNotEnrolled, dErrors.CodeBiometricFailed, failureMessage)
	}
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to read fingerprint")
	}
	if subtle.ConstantTimeCompare([]byte(cred.Digest), []byte(proof.Digest)) != 1 {
		return dErrors.Wrap(ErrDigestMismatch, dErrors.CodeBiometricFailed, failureMessage)
	}
	return nil
}

// Admit authenticates and verifies the voter. It returns only after the
// prompt has completed, so callers can start identity-bound writes once it
// returns nil and never before.
func (g *Gate) Admit(ctx context.Context, voterID id.VoterID, req models.ProofRequest) error {
	if g.lockout != nil {
		if err := g.lockout.Check(ctx, voterID); err != nil {
			return err
		}
	}

	req.VoterID = voterID
	proof, err := g.auth.Authenticate(ctx, req)
	if err != nil {
		return err
	}
	// A prompt that finished after the caller gave up must not admit.
	if err := ctx.Err(); err != nil {
		return errCancelled(err)
	}

	if err := g.Verify(ctx, voterID, proof); err != nil {
		g.recordOutcome(ctx, voterID, err)
		return err
	}
	if g.lockout != nil {
		if err := g.lockout.Clear(ctx, voterID); err != nil && g.logger != nil {
			g.logger.WarnContext(ctx, "failed to clear biometric lockout", "voter_id", voterID.String(), "error", err)
		}
	}
	return nil
}

func (g *Gate) recordOutcome(ctx context.Context, voterID id.VoterID, err error) {
	if !dErrors.HasCode(err, dErrors.CodeBiometricFailed) {
		return
	}
	if g.logger != nil {
		g.logger.InfoContext(ctx, "biometric verification failed",
			"voter_id", voterID.String(),
			"reason", FailureReason(err),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	if g.lockout != nil {
		if _, lerr := g.lockout.RecordFailure(ctx, voterID); lerr != nil && g.logger != nil {
			g.logger.WarnContext(ctx, "failed to record biometric failure", "voter_id", voterID.String(), "error", lerr)
		}
	}
}

// FailureReason returns "not_enrolled" or "digest_mismatch" for a
// verification failure and "" otherwise.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrNotEnrolled):
		return ErrNotEnrolled.Error()
	case errors.Is(err, ErrDigestMismatch):
		return ErrDigestMismatch.Error()
	}
	return ""
}
