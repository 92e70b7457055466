package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySlug       = "slug"
	KeySlugCount  = "slug_count"
	KeyRouteCount = "route_count"
	KeySource     = "source"
	KeyKind       = "kind"
	KeyPath       = "path"
	KeyOrigin     = "origin"
	KeyRunID      = "run_id"
	KeyDurationMS = "duration_ms"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
	KeyTrigger    = "trigger"
	KeyItemCount  = "items"
	KeyAdded      = "added"
	KeyRemoved    = "removed"
	KeyUpdated    = "updated"
	KeyURL        = "url"
	KeySubject    = "subject"
	KeyAddr       = "addr"
	KeyAdminAddr  = "admin_addr"
	KeyServer     = "server"
	KeyJobCount   = "jobs"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func SlugCount(n int) slog.Attr       { return slog.Int(KeySlugCount, n) }
func RouteCount(n int) slog.Attr      { return slog.Int(KeyRouteCount, n) }
func Source(s string) slog.Attr       { return slog.String(KeySource, s) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Origin(o string) slog.Attr       { return slog.String(KeyOrigin, o) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Trigger(t string) slog.Attr      { return slog.String(KeyTrigger, t) }
func ItemCount(n int) slog.Attr       { return slog.Int(KeyItemCount, n) }
func Added(n int) slog.Attr           { return slog.Int(KeyAdded, n) }
func Removed(n int) slog.Attr         { return slog.Int(KeyRemoved, n) }
func Updated(n int) slog.Attr         { return slog.Int(KeyUpdated, n) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Subject(s string) slog.Attr      { return slog.String(KeySubject, s) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func AdminAddr(a string) slog.Attr    { return slog.String(KeyAdminAddr, a) }
func Server(name string) slog.Attr    { return slog.String(KeyServer, name) }
func JobCount(n int) slog.Attr        { return slog.Int(KeyJobCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
