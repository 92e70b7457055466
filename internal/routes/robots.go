package routes

import (
	"fmt"
	"strings"

	"github.com/temoto/robotstxt"
)

// Policy is the site's crawler policy. It renders robots.txt and filters
// disallowed paths out of the sitemap. A nil *Policy allows everything.
type Policy struct {
	userAgent string
	allow     []string
	disallow  []string
	data      *robotstxt.RobotsData
}

// NewPolicy builds a policy for userAgent ("*" when empty).
func NewPolicy(userAgent string, allow, disallow []string) (*Policy, error) {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "*"
	}
	p := &Policy{
		userAgent: userAgent,
		allow:     append([]string(nil), allow...),
		disallow:  append([]string(nil), disallow...),
	}
	data, err := robotstxt.FromString(p.rules())
	if err != nil {
		return nil, fmt.Errorf("parse robots policy: %w", err)
	}
	p.data = data
	return p, nil
}

// Allows reports whether crawlers may visit path.
func (p *Policy) Allows(path string) bool {
	if p == nil || p.data == nil {
		return true
	}
	return p.data.TestAgent(path, p.userAgent)
}

// Render returns the robots.txt document. sitemapURL is advertised when non-empty.
func (p *Policy) Render(sitemapURL string) string {
	var b strings.Builder
	if p == nil {
		b.WriteString("User-agent: *\nAllow: /\n")
	} else {
		b.WriteString(p.rules())
	}
	if sitemapURL != "" {
		fmt.Fprintf(&b, "\nSitemap: %s\n", sitemapURL)
	}
	return b.String()
}

func (p *Policy) rules() string {
	var b strings.Builder
	fmt.Fprintf(&b, "User-agent: %s\n", p.userAgent)
	for _, a := range p.allow {
		fmt.Fprintf(&b, "Allow: %s\n", a)
	}
	for _, d := range p.disallow {
		fmt.Fprintf(&b, "Disallow: %s\n", d)
	}
	if len(p.allow) == 0 && len(p.disallow) == 0 {
		b.WriteString("Allow: /\n")
	}
	return b.String()
}
