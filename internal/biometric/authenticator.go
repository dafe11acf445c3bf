// Package biometric gates identity-bound actions on a fresh biometric proof.
//
// An Authenticator produces a proof digest from whichever capability the
// platform has; the Gate compares that digest with the voter's enrolled
// credential. Digests carry no server challenge, so a captured digest can be
// replayed against the same credential.
package biometric

import (
	"context"
	"errors"
	"log/slog"

	"campusvote/internal/biometric/models"
	dErrors "campusvote/pkg/domain-errors"
)

// Authenticator produces a proof digest. It blocks until the prompt
// completes and fails with biometric_unavailable or biometric_cancelled.
type Authenticator interface {
	Authenticate(ctx context.Context, req models.ProofRequest) (models.Proof, error)
}

// Probe is an Authenticator that can report whether its capability exists
// on this platform.
type Probe interface {
	Authenticator
	Method() string
	Available(ctx context.Context) bool
}

// Select returns the first available probe. It runs once at startup; when
// nothing is available every authentication fails with
// biometric_unavailable.
func Select(ctx context.Context, logger *slog.Logger, probes ...Probe) Authenticator {
	for _, p := range probes {
		if p.Available(ctx) {
			if logger != nil {
				logger.InfoContext(ctx, "biometric authenticator selected", "method", p.Method())
			}
			return p
		}
	}
	if logger != nil {
		logger.WarnContext(ctx, "no biometric capability available")
	}
	return unavailable{}
}

type unavailable struct{}

func (unavailable) Authenticate(context.Context, models.ProofRequest) (models.Proof, error) {
	return models.Proof{}, errUnavailable(nil)
}

func errUnavailable(cause error) error {
	return dErrors.Wrap(cause, dErrors.CodeBiometricUnavailable, "biometric authentication is not available on this device")
}

func errCancelled(cause error) error {
	return dErrors.Wrap(cause, dErrors.CodeBiometricCancelled, "biometric authentication was cancelled or timed out")
}

// cancelledOrUnavailable maps a context or transport failure. A deadline or
// cancellation always fails closed as cancelled.
func cancelledOrUnavailable(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errCancelled(err)
	}
	return errUnavailable(err)
}
