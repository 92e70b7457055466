// Package routes holds the route catalog: the static route table merged with
// one route per content slug.
package routes

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/normalization"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/util/sets"
)

// ChangeFrequency is the sitemap changefreq vocabulary.
type ChangeFrequency string

const (
	Always  ChangeFrequency = "always"
	Hourly  ChangeFrequency = "hourly"
	Daily   ChangeFrequency = "daily"
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
	Yearly  ChangeFrequency = "yearly"
	Never   ChangeFrequency = "never"
)

var changeFrequencyNormalizer = normalization.NewNormalizer("change frequency", map[string]ChangeFrequency{
	"always":  Always,
	"hourly":  Hourly,
	"daily":   Daily,
	"weekly":  Weekly,
	"monthly": Monthly,
	"yearly":  Yearly,
	"never":   Never,
}, Weekly)

// ParseChangeFrequency case-folds raw into a ChangeFrequency.
func ParseChangeFrequency(raw string) (ChangeFrequency, error) {
	return changeFrequencyNormalizer.Parse(raw)
}

// ChangeFrequencies lists the accepted values.
func ChangeFrequencies() []string { return changeFrequencyNormalizer.ValidKeys() }

// CollisionPolicy decides what happens when a content route has the same
// path as a static route.
type CollisionPolicy string

const (
	// StaticWins drops the content route and keeps the static one.
	StaticWins CollisionPolicy = "static_wins"
	// FailOnCollision reports collisions as a validation error.
	FailOnCollision CollisionPolicy = "error"
)

var collisionPolicyNormalizer = normalization.NewNormalizer("collision policy", map[string]CollisionPolicy{
	"static_wins": StaticWins,
	"static-wins": StaticWins,
	"error":       FailOnCollision,
}, StaticWins)

// ParseCollisionPolicy case-folds raw into a CollisionPolicy.
func ParseCollisionPolicy(raw string) (CollisionPolicy, error) {
	return collisionPolicyNormalizer.Parse(raw)
}

// Entry is one sitemap route.
type Entry struct {
	Path            string          `json:"path" yaml:"path"`
	Priority        float64         `json:"priority" yaml:"priority"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency" yaml:"change_frequency"`
	// Slug is set on content-derived routes.
	Slug string `json:"slug,omitempty" yaml:"-"`
}

// Static reports whether e comes from the static table.
func (e Entry) Static() bool { return e.Slug == "" }

// Collision records a content slug whose route path is already taken by a static route.
type Collision struct {
	Path string `json:"path"`
	Slug string `json:"slug"`
}

// Config configures a Catalog.
type Config struct {
	Static                 []Entry
	ContentPrefix          string
	ContentPriority        float64
	ContentChangeFrequency ChangeFrequency
	Robots                 *Policy
}

// Defaults for content-derived routes.
const (
	DefaultContentPrefix     = "/blog/"
	DefaultContentPriority   = 0.7
	DefaultContentChangeFreq = Weekly
)

// Catalog merges the static table with content routes.
type Catalog struct {
	static  []Entry
	prefix  string
	prio    float64
	freq    ChangeFrequency
	robots  *Policy
	staticP sets.Set[string]
}

// NewCatalog validates cfg and returns a Catalog. Zero content settings take
// the package defaults; a nil static table selects DefaultStatic.
func NewCatalog(cfg Config) (*Catalog, error) {
	if cfg.Static == nil {
		cfg.Static = DefaultStatic()
	}
	if cfg.ContentPrefix == "" {
		cfg.ContentPrefix = DefaultContentPrefix
	}
	if cfg.ContentPriority == 0 {
		cfg.ContentPriority = DefaultContentPriority
	}
	if cfg.ContentChangeFrequency == "" {
		cfg.ContentChangeFrequency = DefaultContentChangeFreq
	}

	c := &Catalog{
		static:  make([]Entry, 0, len(cfg.Static)),
		prefix:  normalizePrefix(cfg.ContentPrefix),
		prio:    cfg.ContentPriority,
		freq:    cfg.ContentChangeFrequency,
		robots:  cfg.Robots,
		staticP: sets.New[string](),
	}
	if err := validateEntry(Entry{Path: c.prefix, Priority: c.prio, ChangeFrequency: c.freq}); err != nil {
		return nil, err
	}
	for _, e := range cfg.Static {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if !c.staticP.Add(e.Path) {
			return nil, ferrors.ValidationError("duplicate static route").
				WithContext(ferrors.ContextKeyPath, e.Path).
				Build()
		}
		c.static = append(c.static, Entry{Path: e.Path, Priority: e.Priority, ChangeFrequency: e.ChangeFrequency})
	}
	return c, nil
}

// ContentPath returns the route path for a content slug.
func (c *Catalog) ContentPath(slug string) string { return c.prefix + slug }

// StaticEntries returns a copy of the static table.
func (c *Catalog) StaticEntries() []Entry { return append([]Entry(nil), c.static...) }

// Robots returns the catalog's robots policy, which may be nil.
func (c *Catalog) Robots() *Policy { return c.robots }

// Merge returns the static table followed by one route per slug, sorted by
// path. Content routes that collide with a static path are dropped and
// reported; routes disallowed by the robots policy are omitted. The result
// never contains two entries with the same path.
func (c *Catalog) Merge(slugs []string) ([]Entry, []Collision) {
	seen := sets.New[string]()
	out := make([]Entry, 0, len(c.static)+len(slugs))
	for _, e := range c.static {
		seen.Add(e.Path)
		if c.robots.Allows(e.Path) {
			out = append(out, e)
		}
	}

	sorted := append([]string(nil), slugs...)
	sort.Strings(sorted)

	var collisions []Collision
	for _, s := range sorted {
		if s == "" {
			continue
		}
		p := c.ContentPath(s)
		if c.staticP.Has(p) {
			collisions = append(collisions, Collision{Path: p, Slug: s})
			continue
		}
		if !seen.Add(p) {
			continue
		}
		if !c.robots.Allows(p) {
			continue
		}
		out = append(out, Entry{Path: p, Priority: c.prio, ChangeFrequency: c.freq, Slug: s})
	}
	return out, collisions
}

// Build merges like Merge and applies policy. Under FailOnCollision any
// collision is returned as a validation error; under StaticWins collisions
// are logged and returned alongside the entries.
func (c *Catalog) Build(slugs []string, policy CollisionPolicy) ([]Entry, []Collision, error) {
	entries, collisions := c.Merge(slugs)
	if len(collisions) == 0 {
		return entries, nil, nil
	}
	if policy == FailOnCollision {
		paths := make([]string, 0, len(collisions))
		for _, col := range collisions {
			paths = append(paths, col.Path)
		}
		return nil, collisions, ferrors.ValidationError("content routes collide with static routes").
			WithContext("collisions", strings.Join(paths, ",")).
			Build()
	}
	for _, col := range collisions {
		slog.Warn("Content route collides with static route; static route kept",
			logfields.Path(col.Path), logfields.Slug(col.Slug))
	}
	return entries, collisions, nil
}

func validateEntry(e Entry) error {
	if !strings.HasPrefix(e.Path, "/") {
		return ferrors.ValidationError(fmt.Sprintf("route path %q must start with /", e.Path)).
			WithContext(ferrors.ContextKeyPath, e.Path).
			Build()
	}
	if e.Priority < 0 || e.Priority > 1 {
		return ferrors.ValidationError(fmt.Sprintf("route priority %.2f outside 0.0-1.0", e.Priority)).
			WithContext(ferrors.ContextKeyPath, e.Path).
			Build()
	}
	if _, err := ParseChangeFrequency(string(e.ChangeFrequency)); err != nil {
		return ferrors.ValidationError(err.Error()).
			WithContext(ferrors.ContextKeyPath, e.Path).
			Build()
	}
	return nil
}

func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
