package models

import (
	"time"

	id "campusvote/pkg/domain"
)

// VoteRecord is one link of the vote ledger. Records are created once per
// (voter, election) and never mutated.
type VoteRecord struct {
	ID           id.VoteID      `json:"id"`
	VoterID      id.VoterID     `json:"voter_id"`
	CandidateID  id.CandidateID `json:"candidate_id"`
	ElectionID   id.ElectionID  `json:"election_id"`
	VoteHash     string         `json:"vote_hash"`
	PreviousHash string         `json:"previous_hash"`
	Timestamp    time.Time      `json:"timestamp"`
}

// Chain break reasons reported by verification.
const (
	ReasonGenesisMismatch  = "genesis_mismatch"
	ReasonPreviousMismatch = "previous_hash_mismatch"
	ReasonHashMismatch     = "vote_hash_mismatch"
)

// ChainReport is the outcome of replaying the ledger. An invalid chain is a
// report, not an error.
type ChainReport struct {
	Valid bool `json:"valid"`
	// Length is the number of records examined, up to and including the
	// first broken one.
	Length int `json:"length"`
	// BrokenAt is the first offending record; nil when the chain is valid.
	BrokenAt *id.VoteID `json:"broken_at,omitempty"`
	// Position is the 1-based index of BrokenAt in timestamp order.
	Position   int       `json:"position,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Expected   string    `json:"expected,omitempty"`
	Found      string    `json:"found,omitempty"`
	TailHash   string    `json:"tail_hash"`
	VerifiedAt time.Time `json:"verified_at"`
}

// CandidateTally is the vote count for one candidate of an election.
type CandidateTally struct {
	CandidateID   id.CandidateID `json:"candidate_id"`
	CandidateName string         `json:"candidate_name"`
	VoteCount     int            `json:"vote_count"`
}

// Candidate is the directory entry the tally joins counts with.
type Candidate struct {
	ID   id.CandidateID
	Name string
}
