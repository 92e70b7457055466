package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/breadcrumb"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/responses"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/sitemap"
)

const maxBreadcrumbBody = 64 << 10

// SiteHandlers serves crawler- and page-facing metadata.
type SiteHandlers struct {
	origins      sitemap.OriginResolver
	robots       *routes.Policy
	names        map[string]string
	errorAdapter *ferrors.HTTPErrorAdapter
}

// NewSiteHandlers creates the breadcrumb and robots handlers. names overrides
// breadcrumb step names derived from URL paths, keyed by href.
func NewSiteHandlers(origins sitemap.OriginResolver, robots *routes.Policy, names map[string]string) *SiteHandlers {
	return &SiteHandlers{
		origins:      origins,
		robots:       robots,
		names:        names,
		errorAdapter: ferrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleBreadcrumbs derives a trail from ?path= (GET) or takes explicit steps
// from a JSON body (POST). ?format=html returns the embeddable script element.
func (h *SiteHandlers) HandleBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	origin := h.origins.Resolve(r)
	var steps []breadcrumb.Step

	switch r.Method {
	case http.MethodPost:
		var req responses.BreadcrumbRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBreadcrumbBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			h.errorAdapter.WriteErrorResponse(w, r,
				ferrors.WrapError(err, ferrors.CategoryValidation, "invalid breadcrumb request body").Build())
			return
		}
		if req.Origin != "" {
			origin = strings.TrimRight(req.Origin, "/")
		}
		steps = req.Steps
	default:
		path := r.URL.Query().Get("path")
		if path == "" {
			h.errorAdapter.WriteErrorResponse(w, r, ferrors.ValidationError("path query parameter is required").Build())
			return
		}
		steps = breadcrumb.FromPath(path, h.names)
	}

	if r.URL.Query().Get("format") == "html" {
		tag, err := breadcrumb.ScriptTag(origin, steps)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, tag+"\n")
		return
	}

	list, err := breadcrumb.Build(origin, steps)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	if err := writeJSONPretty(w, r, http.StatusOK, list); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write breadcrumb response").Build())
	}
}

// HandleRobots renders robots.txt and advertises the sitemap of the request origin.
func (h *SiteHandlers) HandleRobots(w http.ResponseWriter, r *http.Request) {
	body := h.robots.Render(h.origins.Resolve(r) + "/sitemap.xml")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.WriteString(w, body)
}
