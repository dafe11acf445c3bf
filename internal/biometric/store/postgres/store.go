package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campusvote/internal/biometric/models"
	"campusvote/internal/platform/postgres"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
	txcontext "campusvote/pkg/platform/tx"
)

// PostgresStore persists credentials in users_biometrics.
type PostgresStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, cred *models.Credential) error {
	device, err := json.Marshal(cred.DeviceInfo)
	if err != nil {
		return fmt.Errorf("marshal device info: %w", err)
	}
	_, err = txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx,
		`INSERT INTO users_biometrics (user_id, fingerprint_hash, device_info, updated_at) VALUES ($1, $2, $3, $4)`,
		uuid.UUID(cred.VoterID), cred.Digest, device, cred.UpdatedAt,
	)
	if postgres.IsUniqueViolation(err, "users_biometrics_pkey") {
		return sentinel.ErrAlreadyUsed
	}
	if postgres.IsForeignKeyViolation(err) {
		return fmt.Errorf("voter %s is not registered: %w", cred.VoterID, sentinel.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByVoter(ctx context.Context, voterID id.VoterID) (*models.Credential, error) {
	var (
		cred   = models.Credential{VoterID: voterID}
		device []byte
	)
	err := txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx,
		`SELECT fingerprint_hash, device_info, updated_at FROM users_biometrics WHERE user_id = $1`,
		uuid.UUID(voterID),
	).Scan(&cred.Digest, &device, &cred.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}
	if len(device) > 0 {
		if err := json.Unmarshal(device, &cred.DeviceInfo); err != nil {
			return nil, fmt.Errorf("unmarshal device info: %w", err)
		}
	}
	return &cred, nil
}
