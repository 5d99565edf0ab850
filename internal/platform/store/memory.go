package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/accessdesk/accessdesk/internal/shared"
)

// MemoryStore is an in-process Store used for tests and ephemeral runs.
// Documents are kept as marshalled JSON so load/save semantics match the
// durable backends exactly.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte

	// FailNext forces the next operation to fail, for error-path tests.
	FailNext error
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

// Load decodes the stored document. Absent collections leave out untouched.
func (s *MemoryStore) Load(ctx context.Context, collection string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return &shared.StorageError{Op: "load", Collection: collection, Err: err}
	}
	payload, ok := s.docs[collection]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &shared.StorageError{Op: "load", Collection: collection, Err: err}
	}
	return nil
}

// Save replaces the stored document.
func (s *MemoryStore) Save(ctx context.Context, collection string, records any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return &shared.StorageError{Op: "save", Collection: collection, Err: err}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return &shared.StorageError{Op: "save", Collection: collection, Err: err}
	}
	s.docs[collection] = payload
	return nil
}

// Snapshot copies the stored document into a backup slot.
func (s *MemoryStore) Snapshot(ctx context.Context, collection, backup string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.docs[collection]
	if !ok {
		return nil
	}
	s.docs["backup:"+backup+":"+collection] = append([]byte(nil), payload...)
	return nil
}

// Raw returns the stored document bytes, for byte-for-byte assertions.
func (s *MemoryStore) Raw(collection string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.docs[collection]...)
}
