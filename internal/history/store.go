// Package history records generation runs in a SQLite database.
package history

import (
	"context"
	"time"
)

// Status is the outcome of a generation run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one generation run.
type Run struct {
	ID             string        `json:"id"`
	StartedAt      time.Time     `json:"startedAt"`
	Duration       time.Duration `json:"durationNs"`
	Trigger        string        `json:"trigger"`
	Status         Status        `json:"status"`
	SlugCount      int           `json:"slugCount"`
	SkippedSources int           `json:"skippedSources"`
	Collisions     int           `json:"collisions"`
	Updated        int           `json:"updated"`
	Error          string        `json:"error,omitempty"`
}

// Store persists generation runs.
type Store interface {
	// Record appends a run.
	Record(ctx context.Context, run Run) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Get returns the run with id, or a not_found error.
	Get(ctx context.Context, id string) (Run, error)

	// Close releases resources.
	Close() error
}
