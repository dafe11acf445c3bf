package memory

import (
	"context"
	"sort"
	"sync"

	"campusvote/internal/election/models"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
)

// InMemoryStore keeps elections and their candidates. Deleting an election
// deletes its candidates.
type InMemoryStore struct {
	mu         sync.RWMutex
	elections  map[id.ElectionID]models.Election
	candidates map[id.ElectionID][]models.Candidate
}

func New() *InMemoryStore {
	return &InMemoryStore{
		elections:  make(map[id.ElectionID]models.Election),
		candidates: make(map[id.ElectionID][]models.Candidate),
	}
}

func (s *InMemoryStore) CreateElection(_ context.Context, e *models.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[e.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.elections[e.ID] = *e
	return nil
}

func (s *InMemoryStore) FindElection(_ context.Context, electionID id.ElectionID) (*models.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.elections[electionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &e, nil
}

// ListElections returns elections newest first with their candidates.
func (s *InMemoryStore) ListElections(_ context.Context) ([]models.ElectionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ElectionSummary, 0, len(s.elections))
	for _, e := range s.elections {
		out = append(out, models.ElectionSummary{
			Election:   e,
			Candidates: append([]models.Candidate{}, s.candidates[e.ID]...),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) DeleteElection(_ context.Context, electionID id.ElectionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[electionID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.elections, electionID)
	delete(s.candidates, electionID)
	return nil
}

func (s *InMemoryStore) AddCandidate(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.elections[c.ElectionID]; !ok {
		return sentinel.ErrNotFound
	}
	s.candidates[c.ElectionID] = append(s.candidates[c.ElectionID], *c)
	return nil
}

func (s *InMemoryStore) ListCandidates(_ context.Context, electionID id.ElectionID) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Candidate{}, s.candidates[electionID]...), nil
}

func (s *InMemoryStore) FindCandidate(_ context.Context, electionID id.ElectionID, candidateID id.CandidateID) (*models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.candidates[electionID] {
		if c.ID == candidateID {
			return &c, nil
		}
	}
	return nil, sentinel.ErrNotFound
}
