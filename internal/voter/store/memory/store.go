package memory

import (
	"context"
	"sort"
	"sync"

	"campusvote/internal/voter/models"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
)

// InMemoryStore keeps voter profiles keyed by voter id and roll number.
type InMemoryStore struct {
	mu     sync.RWMutex
	byID   map[id.VoterID]*models.Voter
	byRoll map[string]id.VoterID
}

func New() *InMemoryStore {
	return &InMemoryStore{
		byID:   make(map[id.VoterID]*models.Voter),
		byRoll: make(map[string]id.VoterID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, voter *models.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byRoll[voter.RollNumber]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if _, ok := s.byID[voter.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	v := *voter
	s.byID[v.ID] = &v
	s.byRoll[v.RollNumber] = v.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, voterID id.VoterID) (*models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byID[voterID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *v
	return &out, nil
}

func (s *InMemoryStore) FindByRollNumber(_ context.Context, rollNumber string) (*models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voterID, ok := s.byRoll[rollNumber]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.byID[voterID]
	return &out, nil
}

// List returns every voter, newest first. Ties on creation time fall back to
// roll number so the order is stable.
func (s *InMemoryStore) List(_ context.Context) ([]models.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Voter, 0, len(s.byID))
	for _, v := range s.byID {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RollNumber < out[j].RollNumber
	})
	return out, nil
}

// SetAdmin grants or revokes admin. Admins are appointed out of band; there
// is no API for it.
func (s *InMemoryStore) SetAdmin(_ context.Context, voterID id.VoterID, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byID[voterID]
	if !ok {
		return sentinel.ErrNotFound
	}
	v.IsAdmin = isAdmin
	return nil
}
