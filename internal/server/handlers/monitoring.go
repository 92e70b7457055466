package handlers

import (
	"log/slog"
	"net/http"
	"time"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/server/responses"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/snapshot"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/version"
)

// Snapshot states reported by the health endpoint.
const (
	SnapshotPresent = "present"
	SnapshotAbsent  = "absent"
)

// MonitoringHandlers contains monitoring-related HTTP handlers.
type MonitoringHandlers struct {
	snapshotPath string
	startTime    time.Time
	errorAdapter *ferrors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates a new monitoring handlers instance.
func NewMonitoringHandlers(snapshotPath string, startTime time.Time) *MonitoringHandlers {
	return &MonitoringHandlers{
		snapshotPath: snapshotPath,
		startTime:    startTime,
		errorAdapter: ferrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealthCheck handles the health check endpoint. A missing or unreadable
// snapshot degrades the status but still answers 200: the sitemap keeps
// serving from the fallback re-scan.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
		Snapshot:  responses.SnapshotStatus{Path: h.snapshotPath, State: SnapshotPresent},
	}

	idx, err := snapshot.Read(h.snapshotPath)
	if err != nil {
		health.Status = "degraded"
		health.Snapshot.State = SnapshotAbsent
		if c, ok := ferrors.AsClassified(err); ok {
			health.Snapshot.Reason, _ = c.Context().GetString(ferrors.ContextKeyReason)
		}
	} else {
		health.Snapshot.Slugs = idx.Len()
	}

	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		internalErr := ferrors.WrapError(err, ferrors.CategoryInternal, "failed to write health response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
