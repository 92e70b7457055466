package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyFiltersRoutes(t *testing.T) {
	robots, err := NewPolicy("", []string{"/blog/public-draft"}, []string{"/blog/drafts-", "/blog/public-"})
	require.NoError(t, err)

	assert.True(t, robots.Allows("/"))
	assert.False(t, robots.Allows("/blog/drafts-essay"))
	assert.True(t, robots.Allows("/blog/public-draft"))

	c, err := NewCatalog(Config{Static: []Entry{{Path: "/", Priority: 1, ChangeFrequency: Daily}}, Robots: robots})
	require.NoError(t, err)
	entries, _ := c.Merge([]string{"drafts-essay", "essay"})
	assert.Equal(t, []string{"/", "/blog/essay"}, paths(entries))
}

func TestPolicyRender(t *testing.T) {
	robots, err := NewPolicy("*", nil, []string{"/api/"})
	require.NoError(t, err)
	assert.Equal(t,
		"User-agent: *\nDisallow: /api/\n\nSitemap: https://example.com/sitemap.xml\n",
		robots.Render("https://example.com/sitemap.xml"))

	var none *Policy
	assert.True(t, none.Allows("/anything"))
	assert.Equal(t, "User-agent: *\nAllow: /\n", none.Render(""))

	open, err := NewPolicy("*", nil, nil)
	require.NoError(t, err)
	assert.True(t, open.Allows("/api/routes"))
}
