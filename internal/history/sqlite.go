package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
)

// DefaultLimit caps Recent when callers pass a non-positive limit.
const DefaultLimit = 20

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (and creates) the history database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, ferrors.FileSystemError("create history directory").
				WithCause(err).
				WithContext(ferrors.ContextKeyPath, dbPath).
				Build()
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		started_at INTEGER NOT NULL,
		duration_ns INTEGER NOT NULL,
		trigger_source TEXT NOT NULL,
		status TEXT NOT NULL,
		slug_count INTEGER NOT NULL,
		skipped_sources INTEGER NOT NULL,
		collisions INTEGER NOT NULL,
		updated INTEGER NOT NULL DEFAULT 0,
		error TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_generations_started_at ON generations(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends a run.
func (s *SQLiteStore) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errText sql.NullString
	if run.Error != "" {
		errText = sql.NullString{String: run.Error, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (id, started_at, duration_ns, trigger_source, status, slug_count, skipped_sources, collisions, updated, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixNano(), int64(run.Duration), run.Trigger, string(run.Status),
		run.SlugCount, run.SkippedSources, run.Collisions, run.Updated, errText,
	)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

const selectRuns = `SELECT id, started_at, duration_ns, trigger_source, status, slug_count, skipped_sources, collisions, updated, error FROM generations`

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectRuns+" ORDER BY started_at DESC, seq DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Get returns the run with id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, err := scanRun(s.db.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ferrors.NotFoundError("generation run not found").WithContext("run_id", id).Build()
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r          Run
		startedAt  int64
		durationNS int64
		status     string
		errText    sql.NullString
	)
	if err := row.Scan(&r.ID, &startedAt, &durationNS, &r.Trigger, &status, &r.SlugCount, &r.SkippedSources, &r.Collisions, &r.Updated, &errText); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan generation: %w", err)
	}
	r.StartedAt = time.Unix(0, startedAt)
	r.Duration = time.Duration(durationNS)
	r.Status = Status(status)
	r.Error = errText.String
	return r, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
