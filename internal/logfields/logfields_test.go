package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Slug", KeySlug, "my-post", Slug("my-post")},
		{"Source", KeySource, "content/posts.yaml", Source("content/posts.yaml")},
		{"Kind", KeyKind, "markdown", Kind("markdown")},
		{"Path", KeyPath, "/blog", Path("/blog")},
		{"Origin", KeyOrigin, "https://example.com", Origin("https://example.com")},
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Method", KeyMethod, "GET", Method("GET")},
		{"UserAgent", KeyUserAgent, "ua", UserAgent("ua")},
		{"RemoteAddr", KeyRemoteAddr, "1.2.3.4", RemoteAddr("1.2.3.4")},
		{"Trigger", KeyTrigger, "watch", Trigger("watch")},
		{"URL", KeyURL, "nats://localhost:4222", URL("nats://localhost:4222")},
		{"Subject", KeySubject, "siteindex.snapshot.generated", Subject("siteindex.snapshot.generated")},
		{"Addr", KeyAddr, ":8080", Addr(":8080")},
		{"AdminAddr", KeyAdminAddr, "127.0.0.1:8081", AdminAddr("127.0.0.1:8081")},
		{"Server", KeyServer, "admin", Server("admin")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if v := SlugCount(3); v.Key != KeySlugCount || v.Value.Int64() != 3 {
		t.Fatalf("SlugCount mismatch: %v", v)
	}
	if v := RouteCount(9); v.Key != KeyRouteCount {
		t.Fatalf("RouteCount key mismatch: %s", v.Key)
	}
	if v := Status(200); v.Key != KeyStatus {
		t.Fatalf("Status key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
	for _, v := range []slog.Attr{ItemCount(1), Added(1), Removed(1), Updated(1), JobCount(1)} {
		if v.Value.Int64() != 1 {
			t.Fatalf("%s value mismatch: %v", v.Key, v.Value)
		}
	}
	if v := Updated(2); v.Key != KeyUpdated {
		t.Fatalf("Updated key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError || attr.Value.String() != "" {
		t.Fatalf("unexpected nil error attr: %v", attr)
	}
	attr = Error(errors.New("err-test"))
	if attr.Value.String() != "err-test" {
		t.Fatalf("Expected 'err-test', got %s", attr.Value.String())
	}
}
