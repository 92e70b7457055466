package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/generate"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/metrics"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/responses"
)

const (
	defaultGenerationsLimit = 20
	maxGenerationsLimit     = 100
)

// RouteLister returns the merged route set and the slug source behind it.
type RouteLister interface {
	Routes(ctx context.Context) ([]routes.Entry, metrics.SlugSourceLabel)
}

// Generator runs the generation step.
type Generator interface {
	Run(ctx context.Context, trigger generate.Trigger) (*generate.Result, error)
}

// APIHandlers contains API-related HTTP handlers.
type APIHandlers struct {
	routes       RouteLister
	history      history.Store
	generator    Generator
	errorAdapter *ferrors.HTTPErrorAdapter
}

// NewAPIHandlers creates a new API handlers instance. store and generator may be nil.
func NewAPIHandlers(lister RouteLister, store history.Store, generator Generator) *APIHandlers {
	return &APIHandlers{
		routes:       lister,
		history:      store,
		generator:    generator,
		errorAdapter: ferrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleRoutes lists the route set the sitemap is built from.
func (h *APIHandlers) HandleRoutes(w http.ResponseWriter, r *http.Request) {
	entries, source := h.routes.Routes(r.Context())
	resp := &responses.RoutesResponse{
		Source: string(source),
		Count:  len(entries),
		Routes: make([]responses.RouteEntry, 0, len(entries)),
	}
	for _, e := range entries {
		kind := "content"
		if e.Static() {
			kind = "static"
		}
		resp.Routes = append(resp.Routes, responses.RouteEntry{
			Path:            e.Path,
			Priority:        e.Priority,
			ChangeFrequency: string(e.ChangeFrequency),
			Kind:            kind,
			Slug:            e.Slug,
		})
	}

	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write routes response").Build())
	}
}

// HandleGenerations lists recent generation runs. ?limit bounds the result.
func (h *APIHandlers) HandleGenerations(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.NotFoundError("generation history is disabled").Build())
		return
	}

	limit := defaultGenerationsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("limit must be a positive integer").
				WithContext("limit", raw).
				Build())
			return
		}
		limit = min(n, maxGenerationsLimit)
	}

	runs, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	if err := writeJSONPretty(w, r, http.StatusOK, &responses.GenerationsResponse{Count: len(runs), Runs: runs}); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write generations response").Build())
	}
}

// HandleGeneration returns a single run by id.
func (h *APIHandlers) HandleGeneration(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.NotFoundError("generation history is disabled").Build())
		return
	}
	run, err := h.history.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if err := writeJSONPretty(w, r, http.StatusOK, run); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write generation response").Build())
	}
}

// HandleGenerate runs the generation step synchronously.
func (h *APIHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		h.errorAdapter.WriteErrorResponse(w, r, ferrors.NotFoundError("generation is disabled").Build())
		return
	}
	res, err := h.generator.Run(r.Context(), generate.TriggerAPI)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	resp := &responses.GenerateResponse{
		RunID:      res.RunID,
		SlugCount:  res.Index.Len(),
		RouteCount: res.RouteCount,
		Skipped:    res.Skipped,
		Collisions: len(res.Collisions),
		Added:      res.Added,
		Removed:    res.Removed,
		Updated:    res.Updated,
		DurationMS: float64(res.Duration) / float64(time.Millisecond),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write generate response").Build())
	}
}
