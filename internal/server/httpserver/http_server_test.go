package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/breadcrumb"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/extractor"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/generate"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/responses"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/sitemap"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/snapshot"
)

type memoryHistory struct {
	runs []history.Run
}

func (m *memoryHistory) Record(_ context.Context, run history.Run) error {
	m.runs = append([]history.Run{run}, m.runs...)
	return nil
}

func (m *memoryHistory) Recent(_ context.Context, limit int) ([]history.Run, error) {
	if limit > len(m.runs) {
		limit = len(m.runs)
	}
	return m.runs[:limit], nil
}

func (m *memoryHistory) Get(_ context.Context, id string) (history.Run, error) {
	for _, r := range m.runs {
		if r.ID == id {
			return r, nil
		}
	}
	return history.Run{}, ferrors.NotFoundError("generation not found").WithContext("id", id).Build()
}

func (m *memoryHistory) Close() error { return nil }

type stubGenerator struct {
	res *generate.Result
	err error
}

func (g stubGenerator) Run(context.Context, generate.Trigger) (*generate.Result, error) {
	return g.res, g.err
}

type noScanner struct{}

func (noScanner) Extract(context.Context) (*extractor.Result, error) {
	return nil, ferrors.SourceUnavailable("posts.yaml", os.ErrNotExist)
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "site-index.json")
	require.NoError(t, snapshot.Write(snapPath, snapshot.New([]string{"essay-tips", "about"})))

	policy, err := routes.NewPolicy("*", nil, []string{"/api/"})
	require.NoError(t, err)
	catalog, err := routes.NewCatalog(routes.Config{
		Static: []routes.Entry{
			{Path: "/", Priority: 1.0, ChangeFrequency: routes.Daily},
			{Path: "/blog/about", Priority: 0.4, ChangeFrequency: routes.Monthly},
		},
		Robots: policy,
	})
	require.NoError(t, err)

	origins := sitemap.OriginResolver{Fallback: "https://wordcounter.example"}
	opts.Sitemap = sitemap.NewEmitter(catalog, sitemap.NewLoader(snapPath, noScanner{}), origins, nil)
	opts.Origins = origins
	opts.Robots = policy
	opts.SnapshotPath = snapPath
	return New(opts)
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Host = "wordcounter.example"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSitemapEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	rec := serve(t, h, http.MethodGet, "/sitemap.xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sitemap.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "snapshot", rec.Header().Get("X-Sitemap-Source"))
	body := rec.Body.String()
	assert.Contains(t, body, "<loc>http://wordcounter.example/blog/essay-tips</loc>")
	// The static route wins over the colliding content slug.
	assert.Equal(t, 1, strings.Count(body, "/blog/about</loc>"))

	rec = serve(t, h, http.MethodPost, "/sitemap.xml", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRobotsEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	rec := serve(t, h, http.MethodGet, "/robots.txt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Disallow: /api/\n")
	assert.Contains(t, rec.Body.String(), "Sitemap: http://wordcounter.example/sitemap.xml\n")
}

func TestBreadcrumbEndpoints(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	t.Run("from path", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/breadcrumbs?path=/blog/essay-tips", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var list breadcrumb.List
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list.ItemListElement, 3)
		assert.Equal(t, "http://wordcounter.example/", list.ItemListElement[0].Item)
		assert.Equal(t, "Essay Tips", list.ItemListElement[2].Name)
		assert.Empty(t, list.ItemListElement[2].Item)
	})

	t.Run("missing path", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/breadcrumbs", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("explicit steps", func(t *testing.T) {
		body := `{"origin":"https://wordcounter.example/","steps":[{"name":"Home","href":"/"},{"name":"Tools","href":"/tools"}]}`
		rec := serve(t, h, http.MethodPost, "/api/breadcrumbs", body)
		require.Equal(t, http.StatusOK, rec.Code)
		var list breadcrumb.List
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list.ItemListElement, 2)
		assert.Equal(t, "https://wordcounter.example/", list.ItemListElement[0].Item)
		assert.Equal(t, 2, list.ItemListElement[1].Position)
	})

	t.Run("empty steps", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/breadcrumbs", `{"steps":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(t, h, http.MethodPost, "/api/breadcrumbs", `{"steps":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("html", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/breadcrumbs?path=/about&format=html", "")
		require.Equal(t, http.StatusOK, rec.Code)
		lists, err := breadcrumb.Extract(strings.NewReader(rec.Body.String()))
		require.NoError(t, err)
		require.Len(t, lists, 1)
		assert.Equal(t, "About", lists[0].ItemListElement[1].Name)
	})
}

func TestRoutesEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).AdminHandler()

	rec := serve(t, h, http.MethodGet, "/api/routes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.RoutesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "snapshot", resp.Source)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, "static", resp.Routes[0].Kind)
	assert.Equal(t, responses.RouteEntry{
		Path: "/blog/essay-tips", Priority: 0.7, ChangeFrequency: "weekly", Kind: "content", Slug: "essay-tips",
	}, resp.Routes[2])
}

func TestGenerationsEndpoints(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := newTestServer(t, Options{}).AdminHandler()
		assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/api/generations", "").Code)
		assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodPost, "/api/generate", "").Code)
	})

	store := &memoryHistory{}
	require.NoError(t, store.Record(t.Context(), history.Run{ID: "run-1", Status: history.StatusSucceeded, SlugCount: 4}))
	require.NoError(t, store.Record(t.Context(), history.Run{ID: "run-2", Status: history.StatusFailed, Error: "no slugs generated"}))
	h := newTestServer(t, Options{History: store}).AdminHandler()

	t.Run("recent", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/generations?limit=1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp responses.GenerationsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "run-2", resp.Runs[0].ID)
	})

	t.Run("bad limit", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(t, h, http.MethodGet, "/api/generations?limit=x", "").Code)
	})

	t.Run("by id", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/api/generations/run-1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var run history.Run
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
		assert.Equal(t, 4, run.SlugCount)

		assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/api/generations/nope", "").Code)
	})
}

func TestGenerateEndpoint(t *testing.T) {
	ok := stubGenerator{res: &generate.Result{
		RunID:      "run-9",
		Index:      snapshot.New([]string{"a", "b"}),
		RouteCount: 5,
		Added:      []string{"b"},
		Duration:   1500 * time.Microsecond,
	}}
	h := newTestServer(t, Options{Generator: ok}).AdminHandler()

	rec := serve(t, h, http.MethodPost, "/api/generate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "run-9", resp.RunID)
	assert.Equal(t, 2, resp.SlugCount)
	assert.Equal(t, []string{"b"}, resp.Added)
	assert.InDelta(t, 1.5, resp.DurationMS, 0.001)

	failing := stubGenerator{err: ferrors.ValidationError("no slugs generated").Build()}
	h = newTestServer(t, Options{Generator: failing}).AdminHandler()
	rec = serve(t, h, http.MethodPost, "/api/generate", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no slugs generated")
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := serve(t, s.AdminHandler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 2, resp.Snapshot.Slugs)

	require.NoError(t, os.Remove(s.opts.SnapshotPath))
	rec = serve(t, s.AdminHandler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, ferrors.ReasonMissing, resp.Snapshot.Reason)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, Options{}).AdminHandler()
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/metrics", "").Code)

	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
	h = newTestServer(t, Options{MetricsHandler: metricsHandler, MetricsPath: "/internal/metrics"}).AdminHandler()
	rec := serve(t, h, http.MethodGet, "/internal/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics\n", rec.Body.String())
}

func TestPublicAndAdminEndpointsAreSeparate(t *testing.T) {
	s := newTestServer(t, Options{
		History:        &memoryHistory{},
		Generator:      stubGenerator{res: &generate.Result{RunID: "run-1"}},
		MetricsHandler: http.NotFoundHandler(),
	})
	public, admin := s.Handler(), s.AdminHandler()

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/api/generate"},
		{http.MethodGet, "/api/generations"},
		{http.MethodGet, "/api/routes"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/metrics"},
	} {
		rec := serve(t, public, tc.method, tc.target, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s on public handler", tc.method, tc.target)
	}
	assert.Equal(t, http.StatusNotFound, serve(t, admin, http.MethodGet, "/sitemap.xml", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, admin, http.MethodGet, "/robots.txt", "").Code)
	assert.Equal(t, http.StatusOK, serve(t, admin, http.MethodPost, "/api/generate", "").Code)
}

func TestStartStop(t *testing.T) {
	s := newTestServer(t, Options{Addr: "127.0.0.1:0", AdminAddr: "127.0.0.1:0"})
	require.NoError(t, s.Start(t.Context()))
	require.Error(t, s.Start(t.Context()))
	require.NotEqual(t, s.Addr(), s.AdminAddr())

	get := func(url string) int {
		resp, err := http.Get(url)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusOK, get("http://"+s.AdminAddr()+"/health"))
	assert.Equal(t, http.StatusNotFound, get("http://"+s.Addr()+"/health"))
	assert.Equal(t, http.StatusOK, get("http://"+s.Addr()+"/sitemap.xml"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}

func TestStartFailsWhenAdminAddrTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	s := newTestServer(t, Options{Addr: "127.0.0.1:0", AdminAddr: taken.Addr().String()})
	err = s.Start(t.Context())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
	assert.Equal(t, "127.0.0.1:0", s.Addr(), "nothing left running")
	require.NoError(t, s.Stop(t.Context()))
}
