package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campusvote/internal/ledger/models"
	"campusvote/internal/platform/postgres"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
	txcontext "campusvote/pkg/platform/tx"
)

const voteColumns = `id, voter_id, candidate_id, election_id, vote_hash, previous_hash, timestamp`

// PostgresStore persists the ledger in the votes table.
type PostgresStore struct {
	db *sql.DB
	q  txcontext.Executor
}

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

// withTx binds the store to an open transaction.
func (s *PostgresStore) withTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{db: s.db, q: tx}
}

func (s *PostgresStore) HasVoted(ctx context.Context, voterID id.VoterID, electionID id.ElectionID) (bool, error) {
	var voted bool
	err := s.q.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM votes WHERE voter_id = $1 AND election_id = $2)`,
		uuid.UUID(voterID), uuid.UUID(electionID),
	).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("check vote: %w", err)
	}
	return voted, nil
}

func (s *PostgresStore) Tail(ctx context.Context) (*models.VoteRecord, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+voteColumns+` FROM votes ORDER BY timestamp DESC, id DESC LIMIT 1`)
	rec, err := scanVote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger tail: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Insert(ctx context.Context, rec *models.VoteRecord) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO votes (`+voteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.UUID(rec.ID),
		uuid.UUID(rec.VoterID),
		uuid.UUID(rec.CandidateID),
		uuid.UUID(rec.ElectionID),
		rec.VoteHash,
		rec.PreviousHash,
		rec.Timestamp,
	)
	if postgres.IsUniqueViolation(err, "votes_voter_election_key") {
		return sentinel.ErrAlreadyUsed
	}
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func (s *PostgresStore) Walk(ctx context.Context, fn func(rec models.VoteRecord) bool) error {
	rows, err := s.q.QueryContext(ctx, `SELECT `+voteColumns+` FROM votes ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanVote(rows)
		if err != nil {
			return fmt.Errorf("scan vote: %w", err)
		}
		if !fn(*rec) {
			return nil
		}
	}
	return rows.Err()
}

func (s *PostgresStore) CountByCandidate(ctx context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT candidate_id, COUNT(*) FROM votes WHERE election_id = $1 GROUP BY candidate_id`,
		uuid.UUID(electionID))
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[id.CandidateID]int)
	for rows.Next() {
		var (
			candidateID uuid.UUID
			n           int
		)
		if err := rows.Scan(&candidateID, &n); err != nil {
			return nil, fmt.Errorf("scan vote count: %w", err)
		}
		counts[id.CandidateID(candidateID)] = n
	}
	return counts, rows.Err()
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountForElection(ctx context.Context, electionID id.ElectionID) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE election_id = $1`, uuid.UUID(electionID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count election votes: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVote(row scanner) (*models.VoteRecord, error) {
	var (
		rec                                      models.VoteRecord
		voteID, voterID, candidateID, electionID uuid.UUID
	)
	if err := row.Scan(&voteID, &voterID, &candidateID, &electionID, &rec.VoteHash, &rec.PreviousHash, &rec.Timestamp); err != nil {
		return nil, err
	}
	rec.ID = id.VoteID(voteID)
	rec.VoterID = id.VoterID(voterID)
	rec.CandidateID = id.CandidateID(candidateID)
	rec.ElectionID = id.ElectionID(electionID)
	rec.Timestamp = rec.Timestamp.UTC()
	return &rec, nil
}
