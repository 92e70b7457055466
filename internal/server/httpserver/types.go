package httpserver

import (
	"net/http"
	"time"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/handlers"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/sitemap"
)

// Sitemap serves /sitemap.xml and exposes the merged route set.
// It is satisfied by *sitemap.Emitter.
type Sitemap interface {
	http.Handler
	handlers.RouteLister
}

// Options configures the server wiring.
type Options struct {
	// Addr serves the public endpoints; AdminAddr serves generation control,
	// history, health and metrics.
	Addr         string
	AdminAddr    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Sitemap      Sitemap
	Origins      sitemap.OriginResolver
	Robots       *routes.Policy
	SnapshotPath string

	// Optional: breadcrumb name overrides keyed by href.
	BreadcrumbNames map[string]string
	// Optional: generation history; /api/generations answers 404 when nil.
	History history.Store
	// Optional: POST /api/generate answers 404 when nil.
	Generator handlers.Generator

	// Optional: Prometheus endpoint, mounted at MetricsPath when non-nil.
	MetricsHandler http.Handler
	MetricsPath    string
}
