package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the document as one row of a key-value table.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath, key string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite store: path is required")
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, errors.Wrap(err, "create db dir")
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// A single connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	log.Infof("sqlite store opened: %s", dbPath)
	return &SQLiteStore{db: db, key: key}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (*Document, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, s.key).Scan(&value)
	if err == sql.ErrNoRows {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "sqlite get")
	}
	return Decode([]byte(value))
}

func (s *SQLiteStore) Set(ctx context.Context, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(data), time.Now().Unix())
	return errors.Wrap(err, "sqlite set")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
