package service

import (
	"context"
	"sort"

	"campusvote/internal/ledger/models"
	id "campusvote/pkg/domain"
	dErrors "campusvote/pkg/domain-errors"
)

const unlistedCandidateName = "(unlisted candidate)"

// CountVotes tallies an election from committed records. Every listed
// candidate appears, with zero when nobody voted for them; candidates that
// have votes but are no longer listed appear too, so the counts always sum to
// the number of records for the election.
func (s *Service) CountVotes(ctx context.Context, electionID id.ElectionID) ([]models.CandidateTally, error) {
	counts, err := s.store.CountByCandidate(ctx, electionID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStorage, "could not read the ledger")
	}

	var listed []models.Candidate
	if s.candidates != nil {
		listed, err = s.candidates.ListCandidates(ctx, electionID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeStorage, "could not list candidates")
		}
	}

	out := make([]models.CandidateTally, 0, len(listed)+len(counts))
	seen := make(map[id.CandidateID]bool, len(listed))
	for _, c := range listed {
		seen[c.ID] = true
		out = append(out, models.CandidateTally{CandidateID: c.ID, CandidateName: c.Name, VoteCount: counts[c.ID]})
	}
	for candidateID, n := range counts {
		if !seen[candidateID] {
			out = append(out, models.CandidateTally{CandidateID: candidateID, CandidateName: unlistedCandidateName, VoteCount: n})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		return out[i].CandidateName < out[j].CandidateName
	})
	return out, nil
}
