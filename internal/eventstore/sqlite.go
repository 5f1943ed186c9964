package eventstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const ledgerSchema = `
CREATE TABLE IF NOT EXISTS build_entries (
	seq      INTEGER PRIMARY KEY AUTOINCREMENT,
	build_id TEXT    NOT NULL,
	kind     TEXT    NOT NULL,
	at_ms    INTEGER NOT NULL,
	body     BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_build_entries_build ON build_entries(build_id);
`

// SQLiteStore is the Ledger kept in .blogsite/history.db.
type SQLiteStore struct {
	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

var _ Ledger = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the ledger at dbPath. ":memory:" gives a
// throwaway ledger.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, storeErr(ErrDatabaseOpenFailed, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, storeErr(ErrDatabaseOpenFailed, err)
	}
	// One connection keeps ":memory:" shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(ledgerSchema); err != nil {
		_ = db.Close()
		return nil, storeErr(ErrInitializeSchemaFailed, err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.At.IsZero() {
		e.At = s.now()
	}
	if len(e.Body) == 0 {
		e.Body = []byte("{}")
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO build_entries (build_id, kind, at_ms, body) VALUES (?, ?, ?, ?)",
		e.BuildID, string(e.Kind), e.At.UnixMilli(), []byte(e.Body),
	)
	if err != nil {
		return e, storeErr(ErrEventAppendFailed, err)
	}
	if e.Seq, err = res.LastInsertId(); err != nil {
		return e, storeErr(ErrEventAppendFailed, err)
	}
	return e, nil
}

func (s *SQLiteStore) Build(ctx context.Context, buildID string) ([]Entry, error) {
	var out []Entry
	err := s.query(ctx, func(e Entry) error {
		out = append(out, e)
		return nil
	}, "WHERE build_id = ?", buildID)
	return out, err
}

func (s *SQLiteStore) Replay(ctx context.Context, fn func(Entry) error) error {
	return s.query(ctx, fn, "")
}

func (s *SQLiteStore) query(ctx context.Context, fn func(Entry) error, where string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT seq, build_id, kind, at_ms, body FROM build_entries "+where+" ORDER BY seq", args...)
	if err != nil {
		return storeErr(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e    Entry
			kind string
			atMS int64
			body []byte
		)
		if err := rows.Scan(&e.Seq, &e.BuildID, &kind, &atMS, &body); err != nil {
			return storeErr(ErrEventQueryFailed, err)
		}
		e.Kind = Kind(kind)
		e.At = time.UnixMilli(atMS)
		e.Body = body
		if err := fn(e); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return storeErr(ErrEventQueryFailed, err)
	}
	return nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
