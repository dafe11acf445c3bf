package memory

import (
	"context"
	"sort"
	"sync"

	"campusvote/internal/ledger/models"
	id "campusvote/pkg/domain"
	"campusvote/pkg/platform/sentinel"
)

type voterElection struct {
	voter    id.VoterID
	election id.ElectionID
}

// InMemoryStore keeps the ledger in timestamp order. Appends must go through
// a sequencer; the internal lock only protects readers.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []models.VoteRecord
	byPair  map[voterElection]int
}

func New() *InMemoryStore {
	return &InMemoryStore{byPair: make(map[voterElection]int)}
}

func (s *InMemoryStore) HasVoted(_ context.Context, voterID id.VoterID, electionID id.ElectionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byPair[voterElection{voterID, electionID}]
	return ok, nil
}

func (s *InMemoryStore) Tail(_ context.Context) (*models.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return nil, sentinel.ErrNotFound
	}
	rec := s.records[len(s.records)-1]
	return &rec, nil
}

func (s *InMemoryStore) Insert(_ context.Context, rec *models.VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := voterElection{rec.VoterID, rec.ElectionID}
	if _, ok := s.byPair[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	// Keep timestamp order even if a caller inserts out of order.
	i := sort.Search(len(s.records), func(i int) bool {
		return s.records[i].Timestamp.After(rec.Timestamp)
	})
	s.records = append(s.records, models.VoteRecord{})
	copy(s.records[i+1:], s.records[i:])
	s.records[i] = *rec
	s.reindex()
	return nil
}

func (s *InMemoryStore) reindex() {
	for i, r := range s.records {
		s.byPair[voterElection{r.VoterID, r.ElectionID}] = i
	}
}

func (s *InMemoryStore) Walk(ctx context.Context, fn func(rec models.VoteRecord) bool) error {
	s.mu.RLock()
	snapshot := make([]models.VoteRecord, len(s.records))
	copy(snapshot, s.records)
	s.mu.RUnlock()

	for _, rec := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fn(rec) {
			return nil
		}
	}
	return nil
}

func (s *InMemoryStore) CountByCandidate(_ context.Context, electionID id.ElectionID) (map[id.CandidateID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[id.CandidateID]int)
	for _, r := range s.records {
		if r.ElectionID == electionID {
			counts[r.CandidateID]++
		}
	}
	return counts, nil
}

func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// CountForElection returns the number of records for one election.
func (s *InMemoryStore) CountForElection(_ context.Context, electionID id.ElectionID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.records {
		if r.ElectionID == electionID {
			n++
		}
	}
	return n, nil
}

// Tamper overwrites the record at position i (0-based, timestamp order).
// It exists so integrity checks can be exercised; the ledger API has no
// update path.
func (s *InMemoryStore) Tamper(i int, mutate func(rec *models.VoteRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.records[i])
	s.reindex()
}
