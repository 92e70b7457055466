package history

import (
	"path/filepath"
	"testing"
	"time"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	run := Run{
		ID:             "run-1",
		StartedAt:      started,
		Duration:       1500 * time.Millisecond,
		Trigger:        "cli",
		Status:         StatusSucceeded,
		SlugCount:      42,
		SkippedSources: 1,
	}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("failed to record run: %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("expected started_at %v, got %v", started, got.StartedAt)
	}
	if got.Duration != run.Duration || got.SlugCount != 42 || got.SkippedSources != 1 {
		t.Errorf("unexpected run %+v", got)
	}
	if got.Status != StatusSucceeded || got.Error != "" {
		t.Errorf("unexpected status %q error %q", got.Status, got.Error)
	}
}

func TestGetMissingRun(t *testing.T) {
	store := newStore(t)

	_, err := store.Get(t.Context(), "nope")
	if !ferrors.HasCategory(err, ferrors.CategoryNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := t.Context()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		run := Run{ID: id, StartedAt: base.Add(time.Duration(i) * time.Minute), Trigger: "schedule", Status: StatusSucceeded}
		if id == "b" {
			run.Status = StatusFailed
			run.Error = "primary content source unavailable"
		}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected order %+v", runs)
	}
	if runs[1].Error != "primary content source unavailable" {
		t.Errorf("expected error text to round-trip, got %q", runs[1].Error)
	}

	all, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 runs, got %d", len(all))
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	store := newStore(t)
	run := Run{ID: "dup", StartedAt: time.Now(), Trigger: "cli", Status: StatusSucceeded}
	if err := store.Record(t.Context(), run); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(t.Context(), run); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Record(t.Context(), Run{ID: "x", StartedAt: time.Now(), Trigger: "cli", Status: StatusSucceeded}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if _, err := reopened.Get(t.Context(), "x"); err != nil {
		t.Fatalf("expected persisted run: %v", err)
	}
}
