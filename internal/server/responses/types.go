// Package responses defines API response types used by the site index HTTP handlers.
package responses

import (
	"time"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/breadcrumb"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Version   string         `json:"version"`
	Uptime    float64        `json:"uptime"`
	Snapshot  SnapshotStatus `json:"snapshot"`
}

// SnapshotStatus summarizes the persisted site index.
type SnapshotStatus struct {
	Path   string `json:"path"`
	State  string `json:"state"`
	Slugs  int    `json:"slugs"`
	Reason string `json:"reason,omitempty"`
}

// RouteEntry is one route of the merged catalog.
type RouteEntry struct {
	Path            string  `json:"path"`
	Priority        float64 `json:"priority"`
	ChangeFrequency string  `json:"changeFrequency"`
	Kind            string  `json:"kind"`
	Slug            string  `json:"slug,omitempty"`
}

// RoutesResponse lists the merged route set.
type RoutesResponse struct {
	Source string       `json:"source"`
	Count  int          `json:"count"`
	Routes []RouteEntry `json:"routes"`
}

// GenerationsResponse lists recent generation runs, newest first.
type GenerationsResponse struct {
	Count int           `json:"count"`
	Runs  []history.Run `json:"runs"`
}

// GenerateResponse reports a generation run triggered over HTTP.
type GenerateResponse struct {
	RunID      string   `json:"runId"`
	SlugCount  int      `json:"slugCount"`
	RouteCount int      `json:"routeCount"`
	Skipped    int      `json:"skippedSources"`
	Collisions int      `json:"collisions"`
	Added      []string `json:"added,omitempty"`
	Removed    []string `json:"removed,omitempty"`
	Updated    []string `json:"updated,omitempty"`
	DurationMS float64  `json:"durationMs"`
}

// BreadcrumbRequest is the body of POST /api/breadcrumbs. Origin defaults to the request origin.
type BreadcrumbRequest struct {
	Origin string            `json:"origin,omitempty"`
	Steps  []breadcrumb.Step `json:"steps"`
}
