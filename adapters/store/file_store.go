// Package store provides SessionStore adapters: a JSON-file store for
// normal runs, a redis store for shared deployments, and an in-memory
// store for tests.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/layer-3/voyager/core"
)

// FileStore keeps one <address>.json record per wallet under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the session directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the record for an address.
func (s *FileStore) Load(_ context.Context, address string) (*core.SessionRecord, error) {
	raw, err := os.ReadFile(s.path(address))
	if os.IsNotExist(err) {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	var record core.SessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return &record, nil
}

// Save writes the record for an address.
func (s *FileStore) Save(_ context.Context, address string, record *core.SessionRecord) error {
	raw, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	if err := os.WriteFile(s.path(address), raw, 0o600); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperationFailed, err)
	}
	return nil
}

func (s *FileStore) path(address string) string {
	return filepath.Join(s.dir, address+".json")
}
