package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campusvote/internal/platform/postgres"
	"campusvote/internal/voter/models"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
	txcontext "campusvote/pkg/platform/tx"
)

const profileColumns = `id, user_id, full_name, roll_number, is_admin, created_at`

// PostgresStore persists voters in user_profiles.
type PostgresStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, voter *models.Voter) error {
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx,
		`INSERT INTO user_profiles (`+profileColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		voter.ProfileID, uuid.UUID(voter.ID), voter.FullName, voter.RollNumber, voter.IsAdmin, voter.CreatedAt,
	)
	if postgres.IsUniqueViolation(err, "") {
		return sentinel.ErrAlreadyUsed
	}
	if err != nil {
		return fmt.Errorf("insert voter: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, voterID id.VoterID) (*models.Voter, error) {
	return s.findOne(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, uuid.UUID(voterID))
}

func (s *PostgresStore) FindByRollNumber(ctx context.Context, rollNumber string) (*models.Voter, error) {
	return s.findOne(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE roll_number = $1`, rollNumber)
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Voter, error) {
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx,
		`SELECT `+profileColumns+` FROM user_profiles ORDER BY created_at DESC, roll_number`)
	if err != nil {
		return nil, fmt.Errorf("list voters: %w", err)
	}
	defer rows.Close()

	var voters []models.Voter
	for rows.Next() {
		var (
			v       models.Voter
			voterID uuid.UUID
		)
		if err := rows.Scan(&v.ProfileID, &voterID, &v.FullName, &v.RollNumber, &v.IsAdmin, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan voter: %w", err)
		}
		v.ID = id.VoterID(voterID)
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate voters: %w", err)
	}
	return voters, nil
}

func (s *PostgresStore) SetAdmin(ctx context.Context, voterID id.VoterID, isAdmin bool) error {
	res, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx,
		`UPDATE user_profiles SET is_admin = $2 WHERE user_id = $1`, uuid.UUID(voterID), isAdmin)
	if err != nil {
		return fmt.Errorf("update voter: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*models.Voter, error) {
	var (
		v       models.Voter
		voterID uuid.UUID
	)
	err := txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx, query, arg).
		Scan(&v.ProfileID, &voterID, &v.FullName, &v.RollNumber, &v.IsAdmin, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find voter: %w", err)
	}
	v.ID = id.VoterID(voterID)
	return &v, nil
}
