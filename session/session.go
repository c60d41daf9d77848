// Package session provides pluggable persistence for cross-turn conversation
// state. All backends share the Store contract: records are read once at
// request entry and written back once at finalization. Concurrent writers to
// the same session follow last-writer-wins semantics.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/hupe1980/agentpilot/core"
)

// Store is the shared contract for session persistence backends.
type Store interface {
	// GetOrCreate loads the record for sessionID, creating and persisting a
	// fresh one when the id is empty or unknown. An empty id mints a new one.
	GetOrCreate(ctx context.Context, sessionID string) (*core.SessionRecord, error)

	// Load returns the record for sessionID, or nil when it does not exist.
	Load(ctx context.Context, sessionID string) (*core.SessionRecord, error)

	// Save persists the record, stamping its updated_at time.
	Save(ctx context.Context, record *core.SessionRecord) error
}

// getOrCreate implements the shared GetOrCreate flow on top of Load and Save.
func getOrCreate(ctx context.Context, s Store, sessionID string) (*core.SessionRecord, error) {
	if sessionID != "" {
		existing, err := s.Load(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	sid := sessionID
	if sid == "" {
		sid = uuid.NewString()
	}
	record := core.NewSessionRecord(sid)
	if err := s.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
