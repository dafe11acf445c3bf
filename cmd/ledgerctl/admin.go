package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"campusvote/internal/voter/models"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/audit"
	"campusvote/pkg/platform/sentinel"
)

type adminStore interface {
	FindByRollNumber(ctx context.Context, rollNumber string) (*models.Voter, error)
	SetAdmin(ctx context.Context, voterID id.VoterID, isAdmin bool) error
}

// grantAdmin is the only way to create the first admin; the HTTP API never
// hands out admin rights. Every change is written to the audit trail, and a
// failed audit write fails the command.
func grantAdmin(ctx context.Context, voters adminStore, auditor audit.Emitter, roll string, admin bool, out io.Writer) error {
	roll = models.NormalizeRollNumber(roll)
	if roll == "" {
		return errors.New("--roll is required")
	}
	voter, err := voters.FindByRollNumber(ctx, roll)
	if errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("no voter with roll number %q", roll)
	}
	if err != nil {
		return fmt.Errorf("find voter: %w", err)
	}
	if voter.IsAdmin == admin {
		fmt.Fprintf(out, "%s (%s) unchanged\n", voter.FullName, voter.RollNumber)
		return nil
	}
	if err := voters.SetAdmin(ctx, voter.ID, admin); err != nil {
		return fmt.Errorf("update voter: %w", err)
	}

	action, verb := audit.EventAdminGranted, "granted"
	if !admin {
		action, verb = audit.EventAdminRevoked, "revoked"
	}
	event := audit.Event{
		Category:  action.Category(),
		Timestamp: time.Now().UTC(),
		ActorID:   voter.ID,
		Action:    string(action),
		Decision:  verb,
		Details: map[string]string{
			"roll_number": voter.RollNumber,
			"decision":    verb,
			"source":      "ledgerctl",
		},
	}
	if err := auditor.Emit(ctx, event); err != nil {
		return fmt.Errorf("record admin change: %w", err)
	}
	fmt.Fprintf(out, "admin %s for %s (%s)\n", verb, voter.FullName, voter.RollNumber)
	return nil
}
