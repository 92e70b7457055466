package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/config"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/generate"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/metrics"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/scheduler"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/httpserver"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/sitemap"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr      string `help:"Public listen address (default: server.addr)"`
	AdminAddr string `help:"Admin listen address (default: server.admin_addr)"`
	Watch     *bool  `help:"Regenerate the snapshot when content changes (default: server.watch)" negatable:""`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}
	if s.AdminAddr != "" {
		cfg.Server.AdminAddr = s.AdminAddr
	}
	if cfg.Server.AdminAddr == cfg.Server.Addr {
		return ferrors.ValidationError("admin address must differ from the public address").
			WithContext(logfields.KeyAddr, cfg.Server.Addr).
			Build()
	}
	if s.Watch != nil {
		cfg.Server.Watch = *s.Watch
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunServe(ctx, cfg)
}

// RunServe serves until ctx is done, then shuts everything down gracefully.
func RunServe(ctx context.Context, cfg *config.Config) error {
	rt, err := newRuntime(cfg, runtimeOptions{history: true, events: true})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			slog.Warn("Failed to release resources", logfields.Error(cerr))
		}
	}()

	runner := rt.runner()
	regenerate := func(trigger generate.Trigger) func(context.Context) {
		return func(ctx context.Context) {
			// Failures are logged and recorded by the runner; the previous snapshot keeps serving.
			_, _ = runner.Run(ctx, trigger)
		}
	}

	if cfg.Server.GenerateOnStart {
		regenerate(generate.TriggerStartup)(ctx)
	}

	origins := sitemap.OriginResolver{TrustProxyHeaders: cfg.Server.TrustProxyHeaders, Fallback: cfg.Site.Origin}
	opts := httpserver.Options{
		Addr:         cfg.Server.Addr,
		AdminAddr:    cfg.Server.AdminAddr,
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
		Sitemap:      rt.emitter(origins),
		Origins:      origins,
		Robots:       rt.catalog.Robots(),
		SnapshotPath: cfg.SnapshotPath(),
		History:      rt.history,
		Generator:    runner,
	}
	if rt.registry != nil {
		opts.MetricsHandler = metrics.HTTPHandler(rt.registry)
		opts.MetricsPath = cfg.Monitoring.Metrics.Path
	}

	srv := httpserver.New(opts)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	var watcher *watch.ContentWatcher
	if cfg.Server.Watch {
		watcher, err = watch.NewContentWatcher(cfg.WatchPaths(), cfg.Server.WatchDebounceDuration(), regenerate(generate.TriggerWatch),
			watch.WithIgnored(cfg.OutputPaths()...))
		if err == nil {
			err = watcher.Start(ctx)
		}
		if err != nil {
			slog.Error("Content watcher disabled", logfields.Error(err))
			watcher = nil
		}
	}

	var sched *scheduler.Scheduler
	if interval, expr := cfg.Server.RegenerateIntervalDuration(), cfg.Server.RegenerateCron; interval > 0 || expr != "" {
		sched, err = newRegenerationScheduler(ctx, interval, expr, regenerate(generate.TriggerSchedule))
		if err != nil {
			if watcher != nil {
				_ = watcher.Stop()
			}
			_ = srv.Stop(context.WithoutCancel(ctx))
			return err
		}
		sched.Start(ctx)
	}

	slog.Info("Serving site index", logfields.Addr(srv.Addr()), logfields.AdminAddr(srv.AdminAddr()))
	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping server...")

	stopCtx, stopCancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeoutDuration())
	defer stopCancel()

	var errs []error
	if sched != nil {
		errs = append(errs, sched.Stop(stopCtx))
	}
	if watcher != nil {
		errs = append(errs, watcher.Stop())
	}
	errs = append(errs, srv.Stop(stopCtx))
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped successfully")
	return nil
}

func newRegenerationScheduler(ctx context.Context, interval time.Duration, expr string, fn func(context.Context)) (*scheduler.Scheduler, error) {
	sched, err := scheduler.NewScheduler()
	if err != nil {
		return nil, err
	}
	task := func() { fn(ctx) }
	if expr != "" {
		_, err = sched.ScheduleCron("regenerate", expr, task)
	} else {
		_, err = sched.ScheduleEvery("regenerate", interval, task)
	}
	if err != nil {
		_ = sched.Stop(ctx)
		return nil, err
	}
	return sched, nil
}
