package sitemap

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/extractor"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/metrics"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/snapshot"
)

const rescanKey = "rescan"

// Scanner re-extracts the slug set from content sources.
type Scanner interface {
	Extract(ctx context.Context) (*extractor.Result, error)
}

// Loader resolves the current slug set.
type Loader struct {
	path    string
	scanner Scanner
	group   singleflight.Group
}

// NewLoader reads the snapshot at path and falls back to scanner. A nil
// scanner disables the fallback.
func NewLoader(path string, scanner Scanner) *Loader {
	return &Loader{path: path, scanner: scanner}
}

// Load returns the slugs and where they came from. It does not fail: when
// neither the snapshot nor a re-scan produce slugs it returns none with
// metrics.SlugSourceStatic.
func (l *Loader) Load(ctx context.Context) ([]string, metrics.SlugSourceLabel) {
	idx, err := snapshot.Read(l.path)
	if err == nil {
		return idx.Slugs, metrics.SlugSourceSnapshot
	}

	switch {
	case ferrors.IsSnapshotMissing(err):
		slog.Info("Site index snapshot missing; re-scanning content sources", logfields.Path(l.path))
	default:
		slog.Warn("Site index snapshot unreadable; re-scanning content sources",
			logfields.Path(l.path), logfields.Error(err))
	}

	if l.scanner == nil {
		return nil, metrics.SlugSourceStatic
	}

	v, err, shared := l.group.Do(rescanKey, func() (any, error) {
		res, err := l.scanner.Extract(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return res.Index(), nil
	})
	if err != nil {
		slog.Error("Content re-scan failed; serving static routes only", logfields.Error(err))
		return nil, metrics.SlugSourceStatic
	}
	if shared {
		slog.Debug("Re-scan result shared with concurrent request")
	}
	return v.(snapshot.Index).Slugs, metrics.SlugSourceRescan
}
