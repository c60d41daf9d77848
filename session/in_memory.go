package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/agentpilot/core"
)

// InMemoryStore keeps session records in process memory. Intended for tests
// and ephemeral deployments; records do not survive restarts.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: map[string][]byte{}}
}

// GetOrCreate implements Store.
func (s *InMemoryStore) GetOrCreate(ctx context.Context, sessionID string) (*core.SessionRecord, error) {
	return getOrCreate(ctx, s, sessionID)
}

// Load implements Store.
func (s *InMemoryStore) Load(_ context.Context, sessionID string) (*core.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.records[sessionID]
	if !ok {
		return nil, nil
	}
	var record core.SessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &record, nil
}

// Save implements Store. Records are stored as encoded snapshots so callers
// cannot alias the stored state through retained pointers.
func (s *InMemoryStore) Save(_ context.Context, record *core.SessionRecord) error {
	record.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.SessionID] = raw
	return nil
}

var _ Store = (*InMemoryStore)(nil)
