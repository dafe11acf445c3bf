package audit

import (
	"context"
	"time"

	id "campusvote/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events that reconstruct the election record:
	// ballots cast, elections created or deleted.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejections, login outcomes and authorization
	// decisions.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        id.AuditEventID
	Category  EventCategory
	Timestamp time.Time
	// ActorID is the voter who performed the action. Nil for anonymous
	// callers (e.g. a sign-in attempt for an unknown voter).
	ActorID   id.VoterID
	Action    string
	Decision  string
	Reason    string
	Details   map[string]string
	RequestID string
	IP        string
	UserAgent string
}

// AuditEvent is the action tag of an Event.
type AuditEvent string

const (
	// Vote events
	EventVoteCast     AuditEvent = "vote_cast"
	EventVoteRejected AuditEvent = "vote_rejected"

	// Identity events
	EventVoterRegistered     AuditEvent = "voter_registered"
	EventBiometricEnrolled   AuditEvent = "biometric_enrolled"
	EventSignInSucceeded     AuditEvent = "signin_succeeded"
	EventSignInFailed        AuditEvent = "signin_failed"
	EventAdminLoginSucceeded AuditEvent = "admin_login_succeeded"
	EventAdminLoginFailed    AuditEvent = "admin_login_failed"
	EventBiometricLockout    AuditEvent = "biometric_lockout_triggered"

	// Authorization events
	EventAuthorizationGranted AuditEvent = "authorization_granted"
	EventAuthorizationDenied  AuditEvent = "authorization_denied"
	EventAdminGranted         AuditEvent = "admin_granted"
	EventAdminRevoked         AuditEvent = "admin_revoked"

	// Election events
	EventElectionCreated AuditEvent = "election_created"
	EventElectionDeleted AuditEvent = "election_deleted"
	EventCandidateAdded  AuditEvent = "candidate_added"

	// Ledger events
	EventLedgerVerified        AuditEvent = "ledger_verified"
	EventLedgerIntegrityFailed AuditEvent = "ledger_integrity_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVoteCast:        CategoryCompliance,
	EventElectionCreated: CategoryCompliance,
	EventElectionDeleted: CategoryCompliance,
	EventCandidateAdded:  CategoryCompliance,

	EventVoteRejected:          CategorySecurity,
	EventSignInFailed:          CategorySecurity,
	EventAdminLoginSucceeded:   CategorySecurity,
	EventAdminLoginFailed:      CategorySecurity,
	EventBiometricLockout:      CategorySecurity,
	EventAuthorizationGranted:  CategorySecurity,
	EventAuthorizationDenied:   CategorySecurity,
	EventAdminGranted:          CategorySecurity,
	EventAdminRevoked:          CategorySecurity,
	EventLedgerIntegrityFailed: CategorySecurity,

	EventVoterRegistered:   CategoryOperations,
	EventBiometricEnrolled: CategoryOperations,
	EventSignInSucceeded:   CategoryOperations,
	EventLedgerVerified:    CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events. Implementations are append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, voterID id.VoterID) ([]Event, error)
	// ListRecent returns at most limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Emitter accepts audit events for persistence.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}
