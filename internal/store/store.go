// Package store persists the single picks document behind a swappable backend.
package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"HirschPicks/internal/model"
)

// DocumentKey is the key the document lives under in key-value backends.
const DocumentKey = "hirsch_store"

// Document is the whole persisted state: cached pick sets by trading day, plus the ledger.
type Document struct {
	DailyPicks  map[string]*model.DailyPickSet `json:"daily_picks"`
	TrackRecord []model.TrackRecordRow         `json:"track_record"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		DailyPicks:  make(map[string]*model.DailyPickSet),
		TrackRecord: []model.TrackRecordRow{},
	}
}

func (d *Document) normalize() {
	if d.DailyPicks == nil {
		d.DailyPicks = make(map[string]*model.DailyPickSet)
	}
	if d.TrackRecord == nil {
		d.TrackRecord = []model.TrackRecordRow{}
	}
}

// UpsertTrackRow replaces the row with the same (date, tier, ticker) or appends it.
// It reports whether the row was new.
func (d *Document) UpsertTrackRow(row model.TrackRecordRow) bool {
	for i := range d.TrackRecord {
		if d.TrackRecord[i].SameKey(row) {
			d.TrackRecord[i] = row
			return false
		}
	}
	d.TrackRecord = append(d.TrackRecord, row)
	return true
}

// HasTrackRow reports whether a row for (date, tier, ticker) already exists.
func (d *Document) HasTrackRow(date, tier, ticker string) bool {
	key := model.TrackRecordRow{Date: date, Category: tier, Ticker: ticker}
	for _, r := range d.TrackRecord {
		if r.SameKey(key) {
			return true
		}
	}
	return false
}

// Encode serializes the document as JSON.
func Encode(d *Document) ([]byte, error) {
	if d == nil {
		d = NewDocument()
	}
	d.normalize()
	return json.Marshal(d)
}

// Decode parses a stored document. Empty input yields an empty document.
func Decode(data []byte) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return NewDocument(), nil
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "decode document")
	}
	d.normalize()
	return &d, nil
}

// Store reads and writes the whole document. Writes replace it; the last writer wins.
type Store interface {
	Get(ctx context.Context) (*Document, error)
	Set(ctx context.Context, doc *Document) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend       string // file, sqlite, badger, redis, memory
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Key           string
}

// Open returns the backend named by opts.Backend.
func Open(opts Options) (Store, error) {
	key := opts.Key
	if key == "" {
		key = DocumentKey
	}
	switch strings.ToLower(opts.Backend) {
	case "", "file":
		path := opts.Path
		if path == "" {
			path = "data/hirsch-store.json"
		}
		return NewFileStore(path), nil
	case "sqlite":
		return NewSQLiteStore(opts.Path, key)
	case "badger":
		return NewBadgerStore(opts.Path, key)
	case "redis":
		return NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, key)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, errors.Errorf("unknown store backend %q", opts.Backend)
	}
}
