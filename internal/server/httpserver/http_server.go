// Package httpserver wires the site index HTTP endpoints.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/handlers"
	smw "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/middleware"
)

// DefaultAdminAddr keeps the admin endpoints on loopback unless configured otherwise.
const DefaultAdminAddr = "127.0.0.1:8081"

// Server manages the site index HTTP endpoints. Public endpoints (sitemap,
// robots, breadcrumbs) and admin endpoints (generation control, history,
// health, metrics) are served on separate listeners.
type Server struct {
	opts         Options
	errorAdapter *ferrors.HTTPErrorAdapter

	// Handler modules
	monitoringHandlers *handlers.MonitoringHandlers
	apiHandlers        *handlers.APIHandlers
	siteHandlers       *handlers.SiteHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler

	mu     sync.Mutex
	public *endpoint
	admin  *endpoint
}

// endpoint is one running listener.
type endpoint struct {
	name string
	srv  *http.Server
	ln   net.Listener
	done chan struct{}
}

// New constructs a new HTTP server wiring instance.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.AdminAddr == "" {
		opts.AdminAddr = DefaultAdminAddr
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	s := &Server{
		opts:         opts,
		errorAdapter: ferrors.NewHTTPErrorAdapter(slog.Default()),
	}

	s.monitoringHandlers = handlers.NewMonitoringHandlers(opts.SnapshotPath, time.Now())
	s.apiHandlers = handlers.NewAPIHandlers(opts.Sitemap, opts.History, opts.Generator)
	s.siteHandlers = handlers.NewSiteHandlers(opts.Origins, opts.Robots, opts.BreadcrumbNames)

	s.mchain = smw.Chain(slog.Default(), s.errorAdapter)
	return s
}

// Handler returns the public handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	// The sitemap emitter answers 405 itself for non-GET/HEAD methods.
	mux.Handle("/sitemap.xml", s.opts.Sitemap)
	mux.HandleFunc("GET /robots.txt", s.siteHandlers.HandleRobots)
	mux.HandleFunc("GET /api/breadcrumbs", s.siteHandlers.HandleBreadcrumbs)
	mux.HandleFunc("POST /api/breadcrumbs", s.siteHandlers.HandleBreadcrumbs)
	return s.mchain(mux)
}

// AdminHandler returns the admin handler wrapped in the middleware chain.
func (s *Server) AdminHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /api/routes", s.apiHandlers.HandleRoutes)
	mux.HandleFunc("GET /api/generations", s.apiHandlers.HandleGenerations)
	mux.HandleFunc("GET /api/generations/{id}", s.apiHandlers.HandleGeneration)
	mux.HandleFunc("POST /api/generate", s.apiHandlers.HandleGenerate)
	if s.opts.MetricsHandler != nil {
		mux.Handle("GET "+s.opts.MetricsPath, s.opts.MetricsHandler)
	}
	return s.mchain(mux)
}

// Start binds both listen addresses and serves in the background. Bind errors
// are returned immediately and leave nothing running.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.public != nil {
		return errors.New("http server already started")
	}

	publicLn, err := listen(ctx, "public", s.opts.Addr)
	if err != nil {
		return err
	}
	adminLn, err := listen(ctx, "admin", s.opts.AdminAddr)
	if err != nil {
		_ = publicLn.Close()
		return err
	}

	s.public = s.serve(ctx, "public", publicLn, s.Handler())
	s.admin = s.serve(ctx, "admin", adminLn, s.AdminHandler())
	return nil
}

func listen(ctx context.Context, name, addr string) (net.Listener, error) {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNetwork, name+" http startup failed").
			WithContext(logfields.KeyAddr, addr).
			Build()
	}
	return ln, nil
}

func (s *Server) serve(ctx context.Context, name string, ln net.Listener, h http.Handler) *endpoint {
	ep := &endpoint{
		name: name,
		ln:   ln,
		done: make(chan struct{}),
		srv: &http.Server{
			Handler:      h,
			ReadTimeout:  s.opts.ReadTimeout,
			WriteTimeout: s.opts.WriteTimeout,
			IdleTimeout:  s.opts.IdleTimeout,
			BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		},
	}
	go func() {
		defer close(ep.done)
		if err := ep.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", logfields.Server(name), logfields.Error(err))
		}
	}()
	slog.Info("HTTP server started", logfields.Server(name), logfields.Addr(ln.Addr().String()))
	return ep
}

// Addr returns the bound public address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.public != nil {
		return s.public.ln.Addr().String()
	}
	return s.opts.Addr
}

// AdminAddr returns the bound admin address, or the configured one before Start.
func (s *Server) AdminAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin != nil {
		return s.admin.ln.Addr().String()
	}
	return s.opts.AdminAddr
}

// Stop gracefully shuts down both listeners.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	eps := []*endpoint{s.public, s.admin}
	s.public, s.admin = nil, nil
	s.mu.Unlock()

	var errs []error
	for _, ep := range eps {
		if ep == nil {
			continue
		}
		if err := ep.srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s http server shutdown: %w", ep.name, err))
			continue
		}
		<-ep.done
		slog.Info("HTTP server stopped", logfields.Server(ep.name))
	}
	return errors.Join(errs...)
}
