package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore keeps the encoded document in memory. Each Get decodes a fresh copy.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
	sets int
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Get(_ context.Context) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Decode(s.data)
}

func (s *MemoryStore) Set(_ context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.sets++
	return nil
}

// Writes returns how many times Set succeeded.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

func (s *MemoryStore) Close() error { return nil }

func jsonIndent(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	return data, errors.Wrap(err, "encode document")
}
