package commands

import (
	"errors"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/config"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/extractor"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/generate"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/metrics"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/notify"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/sitemap"
)

// runtime holds the components shared by subcommands.
type runtime struct {
	cfg       *config.Config
	catalog   *routes.Catalog
	extractor *extractor.Extractor
	recorder  metrics.Recorder
	registry  *prom.Registry
	history   history.Store
	publisher notify.Publisher
}

type runtimeOptions struct {
	history bool
	events  bool
}

// newRuntime wires components from cfg. History and events are opened only
// when requested and configured; an unreachable NATS server disables events
// with a warning.
func newRuntime(cfg *config.Config, opts runtimeOptions) (*runtime, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, catalog: catalog, recorder: metrics.NoopRecorder{}, publisher: notify.NoopPublisher{}}
	if cfg.Monitoring.Metrics.Enabled {
		rt.registry = prom.NewRegistry()
		rt.recorder = metrics.NewPrometheusRecorder(rt.registry)
	}

	rt.extractor = extractor.New(extractor.Sources{
		Primary:   cfg.PrimarySource(),
		Auxiliary: cfg.AuxiliarySources(),
		Topics:    cfg.Content.Topics,
	}, extractor.WithRecorder(rt.recorder))

	if opts.history {
		if path := cfg.HistoryPath(); path != "" {
			store, err := history.NewSQLiteStore(path)
			if err != nil {
				return nil, err
			}
			rt.history = store
		}
	}

	if opts.events && cfg.Events != nil && cfg.Events.NATSURL != "" {
		pub, err := notify.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.Subject)
		if err != nil {
			slog.Warn("Snapshot events disabled", logfields.Error(err))
		} else {
			rt.publisher = pub
		}
	}
	return rt, nil
}

func (rt *runtime) runner() *generate.Runner {
	return generate.NewRunner(generate.Options{
		Extractor:    rt.extractor,
		Catalog:      rt.catalog,
		Policy:       rt.cfg.Routes.OnCollision,
		SnapshotPath: rt.cfg.SnapshotPath(),
		Recorder:     rt.recorder,
		History:      rt.history,
		Publisher:    rt.publisher,
	})
}

func (rt *runtime) emitter(origins sitemap.OriginResolver) *sitemap.Emitter {
	loader := sitemap.NewLoader(rt.cfg.SnapshotPath(), rt.extractor)
	return sitemap.NewEmitter(rt.catalog, loader, origins, rt.recorder)
}

func (rt *runtime) Close() error {
	var errs []error
	if rt.history != nil {
		errs = append(errs, rt.history.Close())
	}
	errs = append(errs, rt.publisher.Close())
	return errors.Join(errs...)
}
