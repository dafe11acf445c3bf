package memory

import (
	"context"
	"sync"

	"campusvote/internal/biometric/models"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
)

// InMemoryStore keeps one credential per voter.
type InMemoryStore struct {
	mu          sync.RWMutex
	credentials map[id.VoterID]models.Credential
}

func New() *InMemoryStore {
	return &InMemoryStore{credentials: make(map[id.VoterID]models.Credential)}
}

func (s *InMemoryStore) Create(_ context.Context, cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credentials[cred.VoterID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.credentials[cred.VoterID] = *cred
	return nil
}

func (s *InMemoryStore) FindByVoter(_ context.Context, voterID id.VoterID) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.credentials[voterID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &cred, nil
}
