package sitemap

import (
	"net/http"
	"strings"
)

// OriginResolver determines the serving origin (scheme and host) of a request.
type OriginResolver struct {
	// TrustProxyHeaders honours X-Forwarded-Proto and X-Forwarded-Host.
	TrustProxyHeaders bool
	// Fallback is used when the request carries no host.
	Fallback string
}

// Resolve returns the origin for r without a trailing slash.
func (o OriginResolver) Resolve(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if o.TrustProxyHeaders {
		if p := firstHeaderValue(r.Header.Get("X-Forwarded-Proto")); p == "http" || p == "https" {
			scheme = p
		}
		if h := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); h != "" {
			host = h
		}
	}

	if host == "" {
		return strings.TrimRight(o.Fallback, "/")
	}
	return scheme + "://" + host
}

// firstHeaderValue returns the first entry of a comma separated header, lower-cased.
func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(strings.TrimSpace(v))
}
