package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hupe1980/agentpilot/core"
)

// FileStore persists one JSON file per session under a dedicated directory.
// Writes go through a temp file and rename so readers never observe a
// partially written record.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the base directory if needed and returns the store.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) path(sessionID string) string {
	safe := strings.ReplaceAll(sessionID, "/", "_")
	safe = strings.ReplaceAll(safe, "..", "_")
	return filepath.Join(s.baseDir, safe+".json")
}

// GetOrCreate implements Store.
func (s *FileStore) GetOrCreate(ctx context.Context, sessionID string) (*core.SessionRecord, error) {
	return getOrCreate(ctx, s, sessionID)
}

// Load implements Store. Unreadable or corrupt files count as missing so a
// damaged record never blocks a new conversation on the same id.
func (s *FileStore) Load(_ context.Context, sessionID string) (*core.SessionRecord, error) {
	raw, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var record core.SessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, nil
	}
	return &record, nil
}

// Save implements Store.
func (s *FileStore) Save(_ context.Context, record *core.SessionRecord) error {
	record.UpdatedAt = time.Now().UTC()
	raw, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	path := s.path(record.SessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
