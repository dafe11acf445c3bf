package lockout

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps lockout records in process memory.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]*Record)}
}

func (s *InMemoryStore) Get(_ context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

func (s *InMemoryStore) RecordFailure(_ context.Context, key string, now time.Time, window time.Duration) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok || !now.Before(rec.WindowStart.Add(window)) {
		lockedUntil := (*time.Time)(nil)
		if ok {
			lockedUntil = rec.LockedUntil
		}
		rec = &Record{Key: key, WindowStart: now, LockedUntil: lockedUntil}
		s.records[key] = rec
	}
	rec.Failures++
	out := *rec
	return &out, nil
}

func (s *InMemoryStore) Lock(_ context.Context, key string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		rec = &Record{Key: key}
		s.records[key] = rec
	}
	rec.LockedUntil = &until
	return nil
}

func (s *InMemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
