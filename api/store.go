package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hwpayoff/runtime/contracts"
)

// ComparisonEntry is a computed comparison kept for later retrieval.
// Entries are immutable once stored.
type ComparisonEntry struct {
	ID        string
	Input     contracts.ComparisonInput
	Bundle    contracts.ComparisonBundle
	CreatedAt time.Time
}

// ComparisonStore provides thread-safe in-memory storage for comparisons.
// Results can always be recomputed from their input, so nothing is persisted.
type ComparisonStore struct {
	mu      sync.RWMutex
	entries map[string]*ComparisonEntry
}

// NewComparisonStore creates a new ComparisonStore.
func NewComparisonStore() *ComparisonStore {
	return &ComparisonStore{
		entries: make(map[string]*ComparisonEntry),
	}
}

// Create stores a bundle under a fresh random id.
func (s *ComparisonStore) Create(input contracts.ComparisonInput, bundle contracts.ComparisonBundle) *ComparisonEntry {
	entry := &ComparisonEntry{
		ID:        uuid.NewString(),
		Input:     input,
		Bundle:    bundle,
		CreatedAt: timeNowFunc(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return entry
}

// Get retrieves a comparison by id.
func (s *ComparisonStore) Get(id string) (*ComparisonEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[id]
	if !exists {
		return nil, fmt.Errorf("comparison %s: %w", id, contracts.ErrComparisonNotFound)
	}
	return entry, nil
}

// Len returns the number of stored comparisons.
func (s *ComparisonStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Prune removes comparisons older than the retention duration.
// Returns the number of removed comparisons.
func (s *ComparisonStore) Prune(retention time.Duration) int {
	if retention <= 0 {
		return 0
	}

	cutoff := timeNowFunc().Add(-retention)
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.entries {
		if entry.CreatedAt.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}

	return removed
}
