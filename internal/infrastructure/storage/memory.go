package storage

import (
	"context"
	"errors"
	"sync"

	appreconciliation "github.com/salesops/backend/internal/application/reconciliation"
)

// Ensure MemoryStatementStore implements StatementArchive
var _ appreconciliation.StatementArchive = (*MemoryStatementStore)(nil)

// MemoryStatementStore keeps archived documents in process memory. It stands
// in for the S3 store in development and tests when no object storage is
// configured.
type MemoryStatementStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStatementStore creates a new MemoryStatementStore
func NewMemoryStatementStore() *MemoryStatementStore {
	return &MemoryStatementStore{objects: make(map[string][]byte)}
}

// Store keeps a copy of the document under the given key.
func (s *MemoryStatementStore) Store(_ context.Context, key string, content []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(content))
	copy(buf, content)
	s.objects[key] = buf
	return nil
}

// Get returns a stored document and whether it exists.
func (s *MemoryStatementStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.objects[key]
	return content, ok
}

// Len returns the number of stored documents.
func (s *MemoryStatementStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
