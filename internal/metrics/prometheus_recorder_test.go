package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveGeneration(150*time.Millisecond, OutcomeSuccess)
	pr.SetSnapshotSlugs(42)
	pr.IncSourceSkipped("text")
	pr.IncSitemapRequest(SlugSourceSnapshot)
	pr.IncSitemapRequest(SlugSourceRescan)
	pr.IncSitemapRequest(SlugSourceSnapshot)
	pr.SetSitemapRoutes(50)
	pr.IncRouteCollision()

	if got := testutil.ToFloat64(pr.snapshotSlugs); got != 42 {
		t.Errorf("snapshot_slugs = %v, want 42", got)
	}
	if got := testutil.ToFloat64(pr.sitemapRequests.WithLabelValues("snapshot")); got != 2 {
		t.Errorf("sitemap_requests_total{source=snapshot} = %v, want 2", got)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 6 {
		t.Fatalf("expected 6 metric families, got %d", len(mfs))
	}
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveGeneration(time.Second, OutcomeFailed)
	pr.IncSitemapRequest(SlugSourceStatic)
	pr.IncRouteCollision()
}

func TestHTTPHandlerServesRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetSitemapRoutes(7)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "siteindex_sitemap_routes 7") {
		t.Errorf("expected sitemap_routes gauge in output:\n%s", rec.Body.String())
	}
}
