package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"campusvote/internal/election/models"
	"campusvote/internal/platform/postgres"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
	txcontext "campusvote/pkg/platform/tx"
)

// PostgresStore persists elections and candidates.
type PostgresStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateElection(ctx context.Context, e *models.Election) error {
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx,
		`INSERT INTO elections (id, name, created_at, created_by) VALUES ($1, $2, $3, $4)`,
		uuid.UUID(e.ID), e.Name, e.CreatedAt, uuid.UUID(e.CreatedBy))
	if postgres.IsUniqueViolation(err, "") {
		return sentinel.ErrAlreadyUsed
	}
	if err != nil {
		return fmt.Errorf("insert election: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindElection(ctx context.Context, electionID id.ElectionID) (*models.Election, error) {
	var (
		e                   models.Election
		rawID, rawCreatedBy uuid.UUID
	)
	err := txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, name, created_at, created_by FROM elections WHERE id = $1`, uuid.UUID(electionID),
	).Scan(&rawID, &e.Name, &e.CreatedAt, &rawCreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find election: %w", err)
	}
	e.ID = id.ElectionID(rawID)
	e.CreatedBy = id.VoterID(rawCreatedBy)
	return &e, nil
}

// ListElections returns elections newest first, loading all candidates in
// one batched query.
func (s *PostgresStore) ListElections(ctx context.Context) ([]models.ElectionSummary, error) {
	q := txcontext.ExecutorFor(ctx, s.db)
	rows, err := q.QueryContext(ctx, `SELECT id, name, created_at, created_by FROM elections ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list elections: %w", err)
	}
	defer rows.Close()

	var (
		out   []models.ElectionSummary
		ids   []string
		index = make(map[id.ElectionID]int)
	)
	for rows.Next() {
		var (
			e                   models.Election
			rawID, rawCreatedBy uuid.UUID
		)
		if err := rows.Scan(&rawID, &e.Name, &e.CreatedAt, &rawCreatedBy); err != nil {
			return nil, fmt.Errorf("scan election: %w", err)
		}
		e.ID = id.ElectionID(rawID)
		e.CreatedBy = id.VoterID(rawCreatedBy)
		index[e.ID] = len(out)
		ids = append(ids, e.ID.String())
		out = append(out, models.ElectionSummary{Election: e, Candidates: []models.Candidate{}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list elections: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	candidates, err := s.queryCandidates(ctx, `WHERE election_id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		i := index[c.ElectionID]
		out[i].Candidates = append(out[i].Candidates, c)
	}
	return out, nil
}

func (s *PostgresStore) DeleteElection(ctx context.Context, electionID id.ElectionID) error {
	res, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, `DELETE FROM elections WHERE id = $1`, uuid.UUID(electionID))
	if postgres.IsForeignKeyViolation(err) {
		return sentinel.ErrInvalidState
	}
	if err != nil {
		return fmt.Errorf("delete election: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AddCandidate(ctx context.Context, c *models.Candidate) error {
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx,
		`INSERT INTO candidates (id, name, election_id) VALUES ($1, $2, $3)`,
		uuid.UUID(c.ID), c.Name, uuid.UUID(c.ElectionID))
	if postgres.IsForeignKeyViolation(err) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCandidates(ctx context.Context, electionID id.ElectionID) ([]models.Candidate, error) {
	return s.queryCandidates(ctx, `WHERE election_id = $1`, uuid.UUID(electionID))
}

func (s *PostgresStore) FindCandidate(ctx context.Context, electionID id.ElectionID, candidateID id.CandidateID) (*models.Candidate, error) {
	found, err := s.queryCandidates(ctx, `WHERE election_id = $1 AND id = $2`, uuid.UUID(electionID), uuid.UUID(candidateID))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return &found[0], nil
}

func (s *PostgresStore) queryCandidates(ctx context.Context, where string, args ...any) ([]models.Candidate, error) {
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx,
		`SELECT id, name, election_id FROM candidates `+where+` ORDER BY name, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := []models.Candidate{}
	for rows.Next() {
		var (
			c                  models.Candidate
			rawID, rawElection uuid.UUID
		)
		if err := rows.Scan(&rawID, &c.Name, &rawElection); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		c.ID = id.CandidateID(rawID)
		c.ElectionID = id.ElectionID(rawElection)
		out = append(out, c)
	}
	return out, rows.Err()
}
