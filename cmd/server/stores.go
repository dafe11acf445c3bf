package main

import (
	"database/sql"

	"campusvote/internal/biometric"
	biometricmem "campusvote/internal/biometric/store/memory"
	biometricpg "campusvote/internal/biometric/store/postgres"
	electionservice "campusvote/internal/election/service"
	electionmem "campusvote/internal/election/store/memory"
	electionpg "campusvote/internal/election/store/postgres"
	ledgerservice "campusvote/internal/ledger/service"
	ledgermem "campusvote/internal/ledger/store/memory"
	ledgerpg "campusvote/internal/ledger/store/postgres"
	"campusvote/internal/platform/config"
	voterservice "campusvote/internal/voter/service"
	votermem "campusvote/internal/voter/store/memory"
	voterpg "campusvote/internal/voter/store/postgres"
	"campusvote/pkg/platform/audit"
	auditmem "campusvote/pkg/platform/audit/store/memory"
	auditpg "campusvote/pkg/platform/audit/store/postgres"
)

// stores groups every persistence dependency so main can pick PostgreSQL or
// memory in one place.
type stores struct {
	voters      voterservice.Store
	credentials biometric.CredentialStore
	elections   electionservice.Store
	ledger      ledgerservice.Store
	sequencer   ledgerservice.Sequencer
	audit       audit.Store
}

func newPostgresStores(db *sql.DB, cfg config.LedgerConfig) stores {
	return stores{
		voters:      voterpg.New(db),
		credentials: biometricpg.New(db),
		elections:   electionpg.New(db),
		ledger:      ledgerpg.New(db),
		sequencer:   ledgerpg.NewSequencer(db, cfg.TxTimeout),
		audit:       auditpg.New(db),
	}
}

// newMemoryStores keeps everything in process. Data is lost on restart; use
// it for development and demos only.
func newMemoryStores(cfg config.LedgerConfig) stores {
	ledger := ledgermem.New()
	return stores{
		voters:      votermem.New(),
		credentials: biometricmem.New(),
		elections:   electionmem.New(),
		ledger:      ledger,
		sequencer:   ledgerservice.NewLockedSequencer(ledger, cfg.TxTimeout),
		audit:       auditmem.NewInMemoryStore(),
	}
}
