package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"HirschPicks/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode: readers never block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS generation_runs (
			id            TEXT PRIMARY KEY,
			date_key      TEXT NOT NULL,
			time_window   TEXT,
			trigger       TEXT,
			outcome       TEXT,
			reason        TEXT,
			started_at    INTEGER NOT NULL,
			finished_at   INTEGER,
			picks         INTEGER,
			placeholders  INTEGER,
			ledger_rows   INTEGER,
			error         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_date ON generation_runs(date_key)`,

		`CREATE TABLE IF NOT EXISTS picks (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id            TEXT NOT NULL,
			date_key          TEXT NOT NULL,
			time_window       TEXT,
			category          TEXT NOT NULL,
			ticker            TEXT NOT NULL,
			placeholder       INTEGER NOT NULL,
			base_score        INTEGER,
			exploration_bonus INTEGER,
			score             INTEGER,
			reference_price   REAL,
			sig_volatility    REAL,
			sig_rel_volume    REAL,
			sig_gap           REAL,
			sig_momentum      REAL,
			sig_volume_accel  REAL,
			sig_oscillator    REAL,
			sig_trend         REAL,
			chosen_at         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_picks_date ON picks(date_key, category)`,

		`CREATE TABLE IF NOT EXISTS track_record (
			date_key         TEXT NOT NULL,
			category         TEXT NOT NULL,
			ticker           TEXT NOT NULL,
			reference_price  REAL,
			close            REAL,
			high             REAL,
			low              REAL,
			return_pct       REAL,
			max_run_up_pct   REAL,
			max_drawdown_pct REAL,
			score            INTEGER,
			PRIMARY KEY (date_key, category, ticker)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *GenerationRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var finished interface{}
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt.Unix()
	}
	_, err := r.db.Exec(`INSERT OR REPLACE INTO generation_runs
		(id, date_key, time_window, trigger, outcome, reason, started_at, finished_at,
		 picks, placeholders, ledger_rows, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.DateKey, string(run.Window), run.Trigger, run.Outcome, run.Reason,
		run.StartedAt.Unix(), finished, run.Picks, run.Placeholders, run.LedgerRows, run.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordPicks(runID string, set *model.DailyPickSet) error {
	if set == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	tiers := make([]string, 0, len(set.Picks))
	for tier := range set.Picks {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		p := set.Picks[tier]
		if p == nil {
			continue
		}
		var ref interface{}
		if p.ReferencePrice != nil {
			ref = *p.ReferencePrice
		}
		s := p.RawSignals
		if _, err := tx.Exec(`INSERT INTO picks
			(run_id, date_key, time_window, category, ticker, placeholder,
			 base_score, exploration_bonus, score, reference_price,
			 sig_volatility, sig_rel_volume, sig_gap, sig_momentum, sig_volume_accel, sig_oscillator, sig_trend,
			 chosen_at)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, set.DateKey, string(set.TimeWindow), tier, p.Ticker, p.Placeholder,
			p.BaseScore, p.ExplorationBonus, p.Score, ref,
			s[0], s[1], s[2], s[3], s[4], s[5], s[6],
			p.ChosenAt.Unix(),
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordTrackRows(rows []model.TrackRecordRow) error {
	if len(rows) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO track_record
			(date_key, category, ticker, reference_price, close, high, low,
			 return_pct, max_run_up_pct, max_drawdown_pct, score)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			row.Date, row.Category, row.Ticker, row.ReferencePrice, row.Close, row.High, row.Low,
			row.ReturnPct, row.MaxRunUpPct, row.MaxDrawdownPct, row.Score,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// CountRows returns the number of rows in one of the recorder tables.
func (r *SQLiteRecorder) CountRows(table string) (int, error) {
	switch table {
	case "generation_runs", "picks", "track_record":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
