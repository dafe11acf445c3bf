package service

import (
	"context"

	"campusvote/internal/ledger/models"
	id "campusvote/pkg/domain"
)

// Store is the ledger persistence contract. Writes happen only through
// Sequencer.RunInTx.
type Store interface {
	// HasVoted is the duplicate-vote existence check.
	HasVoted(ctx context.Context, voterID id.VoterID, electionID id.ElectionID) (bool, error)
	// Tail returns the most recent record by timestamp, or sentinel.ErrNotFound
	// when the ledger is empty.
	Tail(ctx context.Context) (*models.VoteRecord, error)
	// Insert appends a record. A second record for the same (voter, election)
	// fails with sentinel.ErrAlreadyUsed.
	Insert(ctx context.Context, rec *models.VoteRecord) error
	// Walk calls fn for every record in timestamp order until fn returns false.
	Walk(ctx context.Context, fn func(rec models.VoteRecord) bool) error
	// CountByCandidate groups an election's records by candidate.
	CountByCandidate(ctx context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error)
	// Count returns the number of records in the ledger.
	Count(ctx context.Context) (int, error)
	// CountForElection returns the number of records for one election.
	CountForElection(ctx context.Context, electionID id.ElectionID) (int, error)
}

// Sequencer serializes ledger appends. Everything fn does happens as one
// unit: no other append can read the tail or insert until fn returns, and a
// failed fn leaves no trace.
type Sequencer interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

// CandidateDirectory lists the candidates of an election for tallying.
type CandidateDirectory interface {
	ListCandidates(ctx context.Context, electionID id.ElectionID) ([]models.Candidate, error)
}
