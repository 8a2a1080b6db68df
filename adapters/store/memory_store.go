package store

import (
	"context"
	"sync"

	"github.com/layer-3/voyager/core"
)

// MemoryStore implements SessionStore using an in-memory map. This is
// primarily intended for testing purposes.
type MemoryStore struct {
	data map[string]*core.SessionRecord
	mu   sync.RWMutex
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*core.SessionRecord)}
}

// Load retrieves the record for an address.
func (s *MemoryStore) Load(_ context.Context, address string) (*core.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[address]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	copied := *record
	return &copied, nil
}

// Save stores the record for an address.
func (s *MemoryStore) Save(_ context.Context, address string, record *core.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.data[address] = &copied
	return nil
}

// Clear removes all data from the store. This is useful for testing to
// reset the store between tests.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]*core.SessionRecord)
}
