// Package generate runs the build-time generation step: extract content
// slugs, persist the snapshot, and report the run.
package generate

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/content"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/extractor"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/metrics"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/notify"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/snapshot"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/util/sets"
)

// Trigger names what started a run.
type Trigger string

const (
	TriggerCLI      Trigger = "cli"
	TriggerStartup  Trigger = "startup"
	TriggerWatch    Trigger = "watch"
	TriggerSchedule Trigger = "schedule"
	TriggerAPI      Trigger = "api"
)

// Extractor produces the slug set.
type Extractor interface {
	Extract(ctx context.Context) (*extractor.Result, error)
}

// Result describes a successful run.
type Result struct {
	RunID      string
	Index      snapshot.Index
	RouteCount int
	Skipped    int
	Collisions []routes.Collision
	Added      []string
	Removed    []string
	// Updated lists slugs whose content fingerprint differs from the previous
	// run in this process.
	Updated  []string
	Duration time.Duration
	// Unchanged is set when a previous run exists and nothing was added,
	// removed or updated since. No event is published for such runs.
	Unchanged bool
}

// Options configures a Runner. Extractor, Catalog and SnapshotPath are required.
type Options struct {
	Extractor    Extractor
	Catalog      *routes.Catalog
	Policy       routes.CollisionPolicy
	SnapshotPath string
	Recorder     metrics.Recorder
	History      history.Store
	Publisher    notify.Publisher
}

// Runner executes generation runs. Runs are serialized.
type Runner struct {
	opts Options
	mu   sync.Mutex
	now  func() time.Time
	// prints holds slug fingerprints from the last successful run; nil before it.
	prints map[string]string
}

// NewRunner creates a Runner.
func NewRunner(opts Options) *Runner {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Publisher == nil {
		opts.Publisher = notify.NoopPublisher{}
	}
	if opts.Policy == "" {
		opts.Policy = routes.StaticWins
	}
	return &Runner{opts: opts, now: time.Now}
}

// Run extracts the slug set and writes the snapshot. It fails when the
// primary source is unavailable, when no slug was produced, and, under the
// FailOnCollision policy, when a content route collides with a static route.
// Nothing is written on failure.
func (r *Runner) Run(ctx context.Context, trigger Trigger) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runID := uuid.NewString()
	started := r.now()
	log := slog.With(logfields.RunID(runID), logfields.Trigger(string(trigger)))
	log.Info("Generating site index", logfields.Path(r.opts.SnapshotPath))

	res, err := r.run(ctx, runID, log)
	elapsed := r.now().Sub(started)

	run := history.Run{ID: runID, StartedAt: started, Duration: elapsed, Trigger: string(trigger)}
	if err != nil {
		r.opts.Recorder.ObserveGeneration(elapsed, metrics.OutcomeFailed)
		run.Status = history.StatusFailed
		run.Error = err.Error()
		r.record(ctx, log, run)
		log.Error("Site index generation failed", logfields.Error(err), logfields.DurationMS(msec(elapsed)))
		return nil, err
	}

	res.Duration = elapsed
	r.opts.Recorder.ObserveGeneration(elapsed, metrics.OutcomeSuccess)
	r.opts.Recorder.SetSnapshotSlugs(res.Index.Len())

	run.Status = history.StatusSucceeded
	run.SlugCount = res.Index.Len()
	run.SkippedSources = res.Skipped
	run.Collisions = len(res.Collisions)
	run.Updated = len(res.Updated)
	r.record(ctx, log, run)

	log.Info("Generated site index",
		logfields.SlugCount(res.Index.Len()),
		logfields.RouteCount(res.RouteCount),
		logfields.DurationMS(msec(elapsed)),
		logfields.Added(len(res.Added)),
		logfields.Removed(len(res.Removed)),
		logfields.Updated(len(res.Updated)))

	if res.Unchanged {
		log.Debug("Site index unchanged since previous run; event not published")
		return res, nil
	}

	event := notify.SnapshotGenerated{
		RunID:        runID,
		GeneratedAt:  r.now().UTC(),
		SnapshotPath: r.opts.SnapshotPath,
		SlugCount:    res.Index.Len(),
		Added:        res.Added,
		Removed:      res.Removed,
		Updated:      res.Updated,
	}
	if err := r.opts.Publisher.PublishSnapshotGenerated(ctx, event); err != nil {
		log.Warn("Failed to publish snapshot event", logfields.Error(err))
	}
	return res, nil
}

func (r *Runner) run(ctx context.Context, runID string, log *slog.Logger) (*Result, error) {
	extracted, err := r.opts.Extractor.Extract(ctx)
	if err != nil {
		return nil, err
	}
	idx := extracted.Index()
	if idx.Len() == 0 {
		return nil, ferrors.ValidationError("no slugs generated").
			WithContext(ferrors.ContextKeyPath, r.opts.SnapshotPath).
			Build()
	}

	entries, collisions, err := r.opts.Catalog.Build(idx.Slugs, r.opts.Policy)
	for range collisions {
		r.opts.Recorder.IncRouteCollision()
	}
	if err != nil {
		return nil, err
	}

	var added, removed []string
	if prev, err := snapshot.Read(r.opts.SnapshotPath); err == nil {
		added, removed = diff(prev, idx)
	} else {
		added = idx.Slugs
		log.Debug("No previous snapshot to compare", logfields.Error(err))
	}

	prints := fingerprints(extracted.Items)
	var updated []string
	if r.prints != nil {
		updated = changedFingerprints(r.prints, prints)
	}

	if err := snapshot.Write(r.opts.SnapshotPath, idx); err != nil {
		return nil, err
	}
	baseline := r.prints != nil
	r.prints = prints

	return &Result{
		RunID:      runID,
		Index:      idx,
		RouteCount: len(entries),
		Skipped:    len(extracted.Skipped),
		Collisions: collisions,
		Added:      added,
		Removed:    removed,
		Updated:    updated,
		Unchanged:  baseline && len(added) == 0 && len(removed) == 0 && len(updated) == 0,
	}, nil
}

// fingerprints maps each fingerprinted item's slug to its fingerprint.
func fingerprints(items []content.Item) map[string]string {
	out := make(map[string]string, len(items))
	for _, it := range items {
		if it.Fingerprint != "" {
			out[it.Slug] = it.Fingerprint
		}
	}
	return out
}

// changedFingerprints returns, sorted, the slugs present in both maps whose
// fingerprints differ.
func changedFingerprints(prev, next map[string]string) []string {
	var changed []string
	for s, fp := range next {
		if old, ok := prev[s]; ok && old != fp {
			changed = append(changed, s)
		}
	}
	sort.Strings(changed)
	return changed
}

func (r *Runner) record(ctx context.Context, log *slog.Logger, run history.Run) {
	if r.opts.History == nil {
		return
	}
	if err := r.opts.History.Record(context.WithoutCancel(ctx), run); err != nil {
		log.Warn("Failed to record generation history", logfields.Error(err))
	}
}

func diff(prev, next snapshot.Index) (added, removed []string) {
	before, after := prev.Set(), next.Set()
	for _, s := range next.Slugs {
		if !before.Has(s) {
			added = append(added, s)
		}
	}
	for _, s := range sets.Sorted(before) {
		if !after.Has(s) {
			removed = append(removed, s)
		}
	}
	return added, removed
}

func msec(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
