package models

import (
	"time"

	emodels "campusvote/internal/election/models"
	lmodels "campusvote/internal/ledger/models"
	vmodels "campusvote/internal/voter/models"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/audit"
)

// CastVoteRequest selects a candidate and proves the voter's presence.
// CandidateID is kept as text so an empty selection can be told apart from a
// malformed one.
type CastVoteRequest struct {
	CandidateID string               `json:"candidate_id"`
	Proof       vmodels.ProofPayload `json:"proof"`
}

// VoteReceipt is what the voter gets back for a committed ballot. The hashes
// let a voter later check that the ballot is still on the chain.
type VoteReceipt struct {
	VoteID       id.VoteID      `json:"vote_id"`
	ElectionID   id.ElectionID  `json:"election_id"`
	CandidateID  id.CandidateID `json:"candidate_id"`
	VoteHash     string         `json:"vote_hash"`
	PreviousHash string         `json:"previous_hash"`
	Timestamp    time.Time      `json:"timestamp"`
}

func NewVoteReceipt(rec *lmodels.VoteRecord) *VoteReceipt {
	return &VoteReceipt{
		VoteID:       rec.ID,
		ElectionID:   rec.ElectionID,
		CandidateID:  rec.CandidateID,
		VoteHash:     rec.VoteHash,
		PreviousHash: rec.PreviousHash,
		Timestamp:    rec.Timestamp,
	}
}

type VoteStatus struct {
	ElectionID id.ElectionID `json:"election_id"`
	HasVoted   bool          `json:"has_voted"`
}

type Tally struct {
	ElectionID id.ElectionID            `json:"election_id"`
	TotalVotes int                      `json:"total_votes"`
	Results    []lmodels.CandidateTally `json:"results"`
}

func NewTally(electionID id.ElectionID, results []lmodels.CandidateTally) *Tally {
	total := 0
	for _, r := range results {
		total += r.VoteCount
	}
	return &Tally{ElectionID: electionID, TotalVotes: total, Results: results}
}

// ElectionReport pairs an election's tally with a verification of the whole
// chain, taken at the same moment. A tally over a broken chain is still
// returned so administrators can see what was recorded.
type ElectionReport struct {
	Election emodels.Election    `json:"election"`
	Tally    Tally               `json:"tally"`
	Chain    lmodels.ChainReport `json:"chain"`
}

// AuditEntry is the read model of an audit event.
type AuditEntry struct {
	ID        string            `json:"id"`
	Category  string            `json:"category"`
	Timestamp time.Time         `json:"timestamp"`
	ActorID   string            `json:"actor_id,omitempty"`
	Action    string            `json:"action"`
	Decision  string            `json:"decision,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func NewAuditEntry(e audit.Event) AuditEntry {
	entry := AuditEntry{
		ID:        e.ID.String(),
		Category:  string(e.Category),
		Timestamp: e.Timestamp,
		Action:    e.Action,
		Decision:  e.Decision,
		Reason:    e.Reason,
		Details:   e.Details,
		RequestID: e.RequestID,
	}
	if !e.ActorID.IsNil() {
		entry.ActorID = e.ActorID.String()
	}
	return entry
}
