// Package notify publishes snapshot regeneration events.
package notify

import (
	"context"
	"time"
)

// SnapshotGenerated is published after a snapshot has been written.
type SnapshotGenerated struct {
	RunID        string    `json:"run_id"`
	GeneratedAt  time.Time `json:"generated_at"`
	SnapshotPath string    `json:"snapshot_path"`
	SlugCount    int       `json:"slug_count"`
	// Added and Removed compare against the previous snapshot, when one existed.
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	// Updated lists slugs whose source content changed since the previous run.
	Updated []string `json:"updated,omitempty"`
}

// Publisher sends events to subscribers.
type Publisher interface {
	PublishSnapshotGenerated(ctx context.Context, event SnapshotGenerated) error
	Close() error
}

// NoopPublisher discards events.
type NoopPublisher struct{}

func (NoopPublisher) PublishSnapshotGenerated(context.Context, SnapshotGenerated) error { return nil }
func (NoopPublisher) Close() error                                                      { return nil }
