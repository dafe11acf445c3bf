package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	id "campusvote/pkg/domain"
	audit "campusvote/pkg/platform/audit"
	txcontext "campusvote/pkg/platform/tx"

	"github.com/google/uuid"
)

// Store implements audit.Store on the audit_logs table. Rows are inserted
// and never updated.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `id, user_id, category, action, details, request_id, ip_address, user_agent, created_at`

// Append writes an audit event, joining the caller's transaction if one is
// open in ctx.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	details, err := json.Marshal(detailsWithOutcome(event))
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}

	eventID := uuid.UUID(event.ID)
	if eventID == uuid.Nil {
		eventID = uuid.New()
	}
	var userID *uuid.UUID
	if !event.ActorID.IsNil() {
		uid := uuid.UUID(event.ActorID)
		userID = &uid
	}

	query := `
		INSERT INTO audit_logs (` + selectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		eventID,
		userID,
		string(event.Category),
		event.Action,
		details,
		event.RequestID,
		event.IP,
		event.UserAgent,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByUser returns events for a specific voter, oldest first.
func (s *Store) ListByUser(ctx context.Context, voterID id.VoterID) ([]audit.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM audit_logs WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(voterID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListRecent returns the N most recent events.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM audit_logs ORDER BY created_at DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func detailsWithOutcome(event audit.Event) map[string]string {
	out := make(map[string]string, len(event.Details)+2)
	for k, v := range event.Details {
		out[k] = v
	}
	if event.Reason != "" {
		out["reason"] = event.Reason
	}
	if event.Decision != "" {
		out["decision"] = event.Decision
	}
	return out
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			eventID  uuid.UUID
			userID   uuid.NullUUID
			category string
			details  []byte
		)
		if err := rows.Scan(&eventID, &userID, &category, &event.Action, &details,
			&event.RequestID, &event.IP, &event.UserAgent, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ID = id.AuditEventID(eventID)
		if userID.Valid {
			event.ActorID = id.VoterID(userID.UUID)
		}
		event.Category = audit.EventCategory(category)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &event.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
			event.Reason = event.Details["reason"]
			event.Decision = event.Details["decision"]
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
