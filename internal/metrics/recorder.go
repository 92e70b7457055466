package metrics

import "time"

// OutcomeLabel enumerates generation run outcomes.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// SlugSourceLabel records where the sitemap emitter obtained its slug set.
type SlugSourceLabel string

const (
	SlugSourceSnapshot SlugSourceLabel = "snapshot"
	SlugSourceRescan   SlugSourceLabel = "rescan"
	SlugSourceStatic   SlugSourceLabel = "static_only"
)

// Recorder defines observability hooks for generation runs and sitemap requests.
type Recorder interface {
	ObserveGeneration(d time.Duration, outcome OutcomeLabel)
	SetSnapshotSlugs(n int)
	IncSourceSkipped(kind string)
	IncSitemapRequest(source SlugSourceLabel)
	SetSitemapRoutes(n int)
	IncRouteCollision()
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGeneration(time.Duration, OutcomeLabel) {}
func (NoopRecorder) SetSnapshotSlugs(int)                          {}
func (NoopRecorder) IncSourceSkipped(string)                       {}
func (NoopRecorder) IncSitemapRequest(SlugSourceLabel)             {}
func (NoopRecorder) SetSitemapRoutes(int)                          {}
func (NoopRecorder) IncRouteCollision()                            {}
