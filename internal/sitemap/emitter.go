package sitemap

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/metrics"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
)

// Emitter builds the sitemap for each request.
type Emitter struct {
	catalog  *routes.Catalog
	loader   *Loader
	origins  OriginResolver
	recorder metrics.Recorder
}

// NewEmitter wires an emitter. A nil recorder selects metrics.NoopRecorder.
func NewEmitter(catalog *routes.Catalog, loader *Loader, origins OriginResolver, recorder metrics.Recorder) *Emitter {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Emitter{catalog: catalog, loader: loader, origins: origins, recorder: recorder}
}

// Routes returns the merged route set and the slug source used to build it.
// Collisions resolve to the static route.
func (e *Emitter) Routes(ctx context.Context) ([]routes.Entry, metrics.SlugSourceLabel) {
	slugs, source := e.loader.Load(ctx)
	entries, collisions := e.catalog.Merge(slugs)
	for _, c := range collisions {
		e.recorder.IncRouteCollision()
		slog.Debug("Dropped content route shadowed by static route", logfields.Path(c.Path), logfields.Slug(c.Slug))
	}
	return entries, source
}

// Build returns the document for origin.
func (e *Emitter) Build(ctx context.Context, origin string) (URLSet, metrics.SlugSourceLabel) {
	entries, source := e.Routes(ctx)
	e.recorder.IncSitemapRequest(source)
	e.recorder.SetSitemapRoutes(len(entries))
	return NewURLSet(origin, entries), source
}

// Render encodes the document for origin.
func (e *Emitter) Render(ctx context.Context, origin string) ([]byte, metrics.SlugSourceLabel, error) {
	set, source := e.Build(ctx, origin)
	var buf bytes.Buffer
	if err := set.Encode(&buf); err != nil {
		return nil, source, err
	}
	return buf.Bytes(), source, nil
}

// ServeHTTP serves GET and HEAD requests for the sitemap.
func (e *Emitter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	origin := e.origins.Resolve(r)
	body, source, err := e.Render(r.Context(), origin)
	if err != nil {
		slog.Error("Failed to encode sitemap", logfields.Error(err))
		var buf bytes.Buffer
		_ = NewURLSet(origin, nil).Encode(&buf)
		body = buf.Bytes()
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("X-Sitemap-Source", string(source))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		slog.Debug("Failed to write sitemap response", logfields.Error(err))
	}
	slog.Debug("Served sitemap", logfields.Origin(origin), logfields.Source(string(source)))
}
