package audit

import (
	"context"
	"log/slog"

	id "campusvote/pkg/domain"
	"campusvote/pkg/requestcontext"
)

// Record logs an audit event and hands it to the emitter. It never fails the
// caller: emit errors are logged and dropped, so a committed vote is never
// rolled back and a rejected one is never reported as success.
func Record(ctx context.Context, logger *slog.Logger, emitter Emitter, action AuditEvent, actor id.VoterID, details map[string]string) {
	event := Event{
		Category:  action.Category(),
		Timestamp: requestcontext.Now(ctx),
		ActorID:   actor,
		Action:    string(action),
		Details:   details,
		RequestID: requestcontext.RequestID(ctx),
		IP:        requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
	if reason, ok := details["reason"]; ok {
		event.Reason = reason
	}
	if decision, ok := details["decision"]; ok {
		event.Decision = decision
	}

	if logger != nil {
		args := []any{"event", event.Action, "log_type", "audit", "category", string(event.Category)}
		if !actor.IsNil() {
			args = append(args, "voter_id", actor.String())
		}
		if event.RequestID != "" {
			args = append(args, "request_id", event.RequestID)
		}
		for k, v := range details {
			args = append(args, k, v)
		}
		logger.InfoContext(ctx, event.Action, args...)
	}

	if emitter == nil {
		return
	}
	// The outcome being recorded has already happened; a client hanging up
	// must not lose its record.
	if err := emitter.Emit(context.WithoutCancel(ctx), event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
