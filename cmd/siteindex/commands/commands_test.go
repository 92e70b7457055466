package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/breadcrumb"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/snapshot"
)

const testConfig = `
version: "1.0"
site:
  origin: https://wordcounter.example
content:
  primary:
    kind: records
    path: content/posts.yaml
  auxiliary:
    - kind: markdown
      path: content/guides
    - kind: text
      path: content/missing.ts
  topics: ["How Many Words Is a Five Page Essay"]
history:
  path: data/history.db
`

func newProject(t *testing.T, posts string) (*CLI, *Global, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content", "guides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "posts.yaml"), []byte(posts), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "guides", "citing-sources.md"),
		[]byte("---\ntitle: Citing Sources\n---\nBody text.\n"), 0o644))
	cfgPath := filepath.Join(dir, "siteindex.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o644))

	var out bytes.Buffer
	return &CLI{Config: cfgPath}, &Global{Out: &out}, &out
}

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps([]string{"Home=/", " Blog = /blog", "My Post=/blog/my-post?ref=a=b"})
	require.NoError(t, err)
	assert.Equal(t, []breadcrumb.Step{
		{Name: "Home", Href: "/"},
		{Name: "Blog", Href: "/blog"},
		{Name: "My Post", Href: "/blog/my-post?ref=a=b"},
	}, steps)

	for _, bad := range []string{"Home", "=/"} {
		_, err := ParseSteps([]string{bad})
		require.Error(t, err, bad)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	g := &Global{Out: &out}

	cmd := &InitCmd{Output: dir}
	require.NoError(t, cmd.Run(g, &CLI{}))
	assert.FileExists(t, filepath.Join(dir, "siteindex.yaml"))
	assert.Contains(t, out.String(), "Wrote configuration")

	err := cmd.Run(g, &CLI{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, (&InitCmd{Output: dir, Force: true}).Run(g, &CLI{}))
}

func TestGenerateSitemapRoutesHistory(t *testing.T) {
	root, g, out := newProject(t, "- title: Essay Tips\n- slug: about\n  title: About Us\n")

	require.NoError(t, (&GenerateCmd{NoEvents: true}).Run(g, root))
	assert.Contains(t, out.String(), "Generated 4 slugs")

	cfgDir := filepath.Dir(root.Config)
	idx, err := snapshot.Read(filepath.Join(cfgDir, "data", "site-index.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "citing-sources", "essay-tips", "how-many-words-is-a-five-page-essay"}, idx.Slugs)

	t.Run("sitemap to file", func(t *testing.T) {
		target := filepath.Join(cfgDir, "public", "sitemap.xml")
		require.NoError(t, (&SitemapCmd{Output: target}).Run(g, root))
		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<loc>https://wordcounter.example/blog/essay-tips</loc>")
	})

	t.Run("sitemap to stdout with origin override", func(t *testing.T) {
		out.Reset()
		require.NoError(t, (&SitemapCmd{Origin: "https://preview.example/"}).Run(g, root))
		assert.Contains(t, out.String(), "<loc>https://preview.example/blog/citing-sources</loc>")
		assert.NotContains(t, out.String(), "wordcounter.example")
	})

	t.Run("routes json", func(t *testing.T) {
		out.Reset()
		require.NoError(t, (&RoutesCmd{JSON: true}).Run(g, root))
		var entries []map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
		var content []string
		for _, e := range entries {
			if s, ok := e["slug"].(string); ok {
				content = append(content, s)
			}
		}
		assert.Contains(t, content, "essay-tips")
	})

	t.Run("routes table", func(t *testing.T) {
		out.Reset()
		require.NoError(t, (&RoutesCmd{}).Run(g, root))
		assert.True(t, strings.HasPrefix(out.String(), "PATH"))
		assert.Contains(t, out.String(), "(slugs from snapshot)")
	})

	t.Run("history", func(t *testing.T) {
		out.Reset()
		require.NoError(t, (&HistoryCmd{Limit: 5, JSON: true}).Run(g, root))
		var runs []history.Run
		require.NoError(t, json.Unmarshal(out.Bytes(), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, history.StatusSucceeded, runs[0].Status)
		assert.Equal(t, 4, runs[0].SlugCount)
		assert.Equal(t, 1, runs[0].SkippedSources)
	})
}

func TestGenerateFailsWithoutSlugs(t *testing.T) {
	root, g, _ := newProject(t, "[]\n")
	// Remove the other sources so nothing yields a slug.
	cfg := strings.Replace(testConfig, `  topics: ["How Many Words Is a Five Page Essay"]`, "", 1)
	cfg = strings.Replace(cfg, "    - kind: markdown\n      path: content/guides\n", "", 1)
	require.NoError(t, os.WriteFile(root.Config, []byte(cfg), 0o644))

	err := (&GenerateCmd{NoEvents: true}).Run(g, root)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(root.Config), "data", "site-index.json"))
}

func TestGenerateFailsOnMissingPrimary(t *testing.T) {
	root, g, _ := newProject(t, "- title: x\n")
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(root.Config), "content", "posts.yaml")))

	err := (&GenerateCmd{NoEvents: true, NoHistory: true}).Run(g, root)
	require.Error(t, err)
	assert.True(t, ferrors.IsSourceUnavailable(err))
}

func TestSitemapFallsBackToRescan(t *testing.T) {
	root, g, out := newProject(t, "- title: Essay Tips\n")

	require.NoError(t, (&SitemapCmd{}).Run(g, root))
	assert.Contains(t, out.String(), "<loc>https://wordcounter.example/blog/essay-tips</loc>")
}

func TestBreadcrumbCommand(t *testing.T) {
	var out bytes.Buffer
	g := &Global{Out: &out}

	cmd := &BreadcrumbCmd{Origin: "https://wordcounter.example", Steps: []string{"Home=/", "Blog=/blog", "My Post=/blog/my-post"}}
	require.NoError(t, cmd.Run(g, &CLI{}))
	var list breadcrumb.List
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.Len(t, list.ItemListElement, 3)
	assert.Equal(t, "https://wordcounter.example/blog", list.ItemListElement[1].Item)
	assert.Empty(t, list.ItemListElement[2].Item)

	out.Reset()
	cmd = &BreadcrumbCmd{Origin: "https://wordcounter.example", Path: "/blog/my-post", HTML: true}
	require.NoError(t, cmd.Run(g, &CLI{}))
	lists, err := breadcrumb.Extract(strings.NewReader(out.String()))
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "My Post", lists[0].ItemListElement[2].Name)

	err = (&BreadcrumbCmd{Origin: "https://x.example", Path: "/a", Steps: []string{"A=/a"}}).Run(g, &CLI{})
	require.Error(t, err)

	err = (&BreadcrumbCmd{Origin: "https://x.example"}).Run(g, &CLI{})
	require.Error(t, err)
}
