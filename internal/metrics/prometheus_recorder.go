package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "siteindex"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generationDuration *prom.HistogramVec
	snapshotSlugs      prom.Gauge
	sourcesSkipped     *prom.CounterVec
	sitemapRequests    *prom.CounterVec
	sitemapRoutes      prom.Gauge
	routeCollisions    prom.Counter
}

// NewPrometheusRecorder constructs and registers the site index metrics on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generationDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Duration of snapshot generation runs by outcome",
			Buckets:   prom.DefBuckets,
		}, []string{"outcome"}),
		snapshotSlugs: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_slugs",
			Help:      "Number of slugs in the last written snapshot",
		}),
		sourcesSkipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sources_skipped_total",
			Help:      "Unreadable auxiliary content sources skipped during extraction",
		}, []string{"kind"}),
		sitemapRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sitemap_requests_total",
			Help:      "Sitemap renders by slug source",
		}, []string{"source"}),
		sitemapRoutes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sitemap_routes",
			Help:      "Number of routes in the last rendered sitemap",
		}),
		routeCollisions: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "route_collisions_total",
			Help:      "Content routes dropped because a static route owns the path",
		}),
	}
	reg.MustRegister(pr.generationDuration, pr.snapshotSlugs, pr.sourcesSkipped, pr.sitemapRequests, pr.sitemapRoutes, pr.routeCollisions)
	return pr
}

func (p *PrometheusRecorder) ObserveGeneration(d time.Duration, outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.generationDuration.WithLabelValues(string(outcome)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetSnapshotSlugs(n int) {
	if p == nil {
		return
	}
	p.snapshotSlugs.Set(float64(n))
}

func (p *PrometheusRecorder) IncSourceSkipped(kind string) {
	if p == nil {
		return
	}
	p.sourcesSkipped.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncSitemapRequest(source SlugSourceLabel) {
	if p == nil {
		return
	}
	p.sitemapRequests.WithLabelValues(string(source)).Inc()
}

func (p *PrometheusRecorder) SetSitemapRoutes(n int) {
	if p == nil {
		return
	}
	p.sitemapRoutes.Set(float64(n))
}

func (p *PrometheusRecorder) IncRouteCollision() {
	if p == nil {
		return
	}
	p.routeCollisions.Inc()
}
