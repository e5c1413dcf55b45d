package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore keeps the document as an indented JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get reads the document. Returns an empty document if the file doesn't exist.
func (s *FileStore) Get(_ context.Context) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, errors.Wrap(err, "read store file")
	}
	return Decode(data)
}

// Set writes the document through a temp file so readers never see a partial write.
func (s *FileStore) Set(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc == nil {
		doc = NewDocument()
	}
	doc.normalize()
	data, err := jsonIndent(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create store dir")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "write store file")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "replace store file")
}

func (s *FileStore) Close() error { return nil }
