// Package extractor aggregates content sources into the de-duplicated set of
// slugs the site serves.
package extractor

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/content"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/metrics"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/snapshot"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/util/sets"
)

// maxParallelSources bounds concurrent auxiliary source loads.
const maxParallelSources = 4

// Sources describes where content comes from. Paths must already be resolved.
type Sources struct {
	Primary   content.Source
	Auxiliary []content.Source
	Topics    []string
}

// Result is the outcome of one extraction.
type Result struct {
	// Items holds one item per slug, in first-seen order: primary, then
	// auxiliaries in configuration order, then topics.
	Items []content.Item
	// Skipped holds an AuxiliarySourceSkipped error per unreadable auxiliary source.
	Skipped []error
}

// Index returns the slug set as a snapshot index.
func (r *Result) Index() snapshot.Index {
	slugs := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		slugs = append(slugs, it.Slug)
	}
	return snapshot.New(slugs)
}

// Extractor loads content sources. It holds no state between calls.
type Extractor struct {
	sources  Sources
	recorder metrics.Recorder
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Extractor) {
		if r != nil {
			e.recorder = r
		}
	}
}

// New creates an Extractor for sources.
func New(sources Sources, opts ...Option) *Extractor {
	e := &Extractor{sources: sources, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads every source and returns the de-duplicated items. An
// unreadable primary source fails with a SourceUnavailable error; unreadable
// auxiliary sources are skipped.
func (e *Extractor) Extract(ctx context.Context) (*Result, error) {
	primary, err := content.Load(ctx, e.sources.Primary)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, ferrors.SourceUnavailable(e.sources.Primary.Path, err)
	}

	auxiliary := make([][]content.Item, len(e.sources.Auxiliary))
	skipped := make([]error, len(e.sources.Auxiliary))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSources)
	for i, src := range e.sources.Auxiliary {
		g.Go(func() error {
			items, err := content.Load(gctx, src)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				skipped[i] = ferrors.AuxiliarySourceSkipped(src.Path, err)
				return nil
			}
			auxiliary[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	seen := sets.New[string]()
	add := func(items []content.Item) {
		for _, it := range items {
			if seen.Add(it.Slug) {
				res.Items = append(res.Items, it)
			}
		}
	}

	add(primary)
	for i, src := range e.sources.Auxiliary {
		if skipped[i] != nil {
			res.Skipped = append(res.Skipped, skipped[i])
			e.recorder.IncSourceSkipped(string(src.Kind))
			slog.Warn("Skipping unreadable auxiliary content source",
				logfields.Kind(string(src.Kind)),
				logfields.Path(src.Path),
				logfields.Error(skipped[i]))
			continue
		}
		add(auxiliary[i])
	}
	add(content.Topics(e.sources.Topics))

	slog.Debug("Extracted content slugs",
		logfields.Source(e.sources.Primary.String()),
		logfields.SlugCount(len(res.Items)))
	return res, nil
}
