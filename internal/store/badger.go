package store

import (
	"context"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// BadgerStore keeps the document under one key of an embedded Badger database.
type BadgerStore struct {
	db  *badger.DB
	key []byte
}

// NewBadgerStore opens a Badger database in dir. An empty dir opens an in-memory database.
func NewBadgerStore(dir, key string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if strings.TrimSpace(dir) == "" {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger")
	}
	return &BadgerStore{db: db, key: []byte(key)}, nil
}

func (s *BadgerStore) Get(_ context.Context) (*Document, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "badger get")
	}
	return Decode(data)
}

func (s *BadgerStore) Set(_ context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	return errors.Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, data)
	}), "badger set")
}

func (s *BadgerStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
