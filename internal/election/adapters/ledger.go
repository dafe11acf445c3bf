package adapters

import (
	"context"

	"campusvote/internal/election/service"
	ledgermodels "campusvote/internal/ledger/models"
	id "campusvote/pkg/domain"
)

// CandidateDirectory exposes an election's ballot to the ledger tally.
type CandidateDirectory struct {
	store service.Store
}

func NewCandidateDirectory(store service.Store) *CandidateDirectory {
	return &CandidateDirectory{store: store}
}

func (d *CandidateDirectory) ListCandidates(ctx context.Context, electionID id.ElectionID) ([]ledgermodels.Candidate, error) {
	candidates, err := d.store.ListCandidates(ctx, electionID)
	if err != nil {
		return nil, err
	}
	out := make([]ledgermodels.Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, ledgermodels.Candidate{ID: c.ID, Name: c.Name})
	}
	return out, nil
}
