package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func slugsOf(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Slug)
	}
	return out
}

func TestTopics(t *testing.T) {
	items := Topics([]string{
		"Grant Writing: Securing Funding for Projects",
		"  ",
		"!!!",
		"SEO Copywriting 101",
	})

	require.Len(t, items, 2)
	assert.Equal(t, "grant-writing-securing-funding-for-projects", items[0].Slug)
	assert.Equal(t, "Grant Writing: Securing Funding for Projects", items[0].Title)
	assert.True(t, items[0].Programmatic)
	assert.Equal(t, "seo-copywriting-101", items[1].Slug)
}

func TestParseRecords(t *testing.T) {
	t.Run("top-level list", func(t *testing.T) {
		items, err := parseRecords([]byte(`
- slug: how-to-count-words
  title: How to Count Words
  tags: [writing, tools]
  publish_date: 2024-03-01
  read_time: 4 min read
- title: Character Limits on Social Media
- slug: "Not A Canonical Slug"
- tags: [orphan]
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"how-to-count-words", "character-limits-on-social-media", "not-a-canonical-slug"}, slugsOf(items))
		assert.Equal(t, "2024-03-01", items[0].PublishDate)
		assert.Equal(t, []string{"writing", "tools"}, items[0].Tags)
		assert.NotEmpty(t, items[0].Fingerprint)
		assert.NotEqual(t, items[0].Fingerprint, items[1].Fingerprint)
	})

	t.Run("json mapping with camelCase keys", func(t *testing.T) {
		items, err := parseRecords([]byte(`{"posts":[{"slug":"essay-length","title":"Essay Length","publishDate":"2024-05-02","readTime":"6 min read"}]}`))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "2024-05-02", items[0].PublishDate)
		assert.Equal(t, "6 min read", items[0].ReadTime)
	})

	t.Run("empty document", func(t *testing.T) {
		items, err := parseRecords(nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := parseRecords([]byte(`just a string`))
		require.Error(t, err)
	})
}

func TestParseMarkdown(t *testing.T) {
	t.Run("frontmatter wins", func(t *testing.T) {
		it, ok, err := ParseMarkdown("ignored.md", []byte("---\nslug: custom-slug\ntitle: Custom Title\ntags: [a]\ndate: 2024-01-02\n---\n# Heading\n\nbody words here\n"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "custom-slug", it.Slug)
		assert.Equal(t, "Custom Title", it.Title)
		assert.Equal(t, "2024-01-02", it.PublishDate)
		assert.Equal(t, "1 min read", it.ReadTime)
		assert.NotEmpty(t, it.Fingerprint)

		same, _, err := ParseMarkdown("ignored.md", []byte("---\nslug: custom-slug\ntitle: Custom Title\ntags: [a]\ndate: 2024-01-02\n---\n# Heading\n\nbody words here\n"))
		require.NoError(t, err)
		assert.Equal(t, it.Fingerprint, same.Fingerprint)

		edited, _, err := ParseMarkdown("ignored.md", []byte("---\nslug: custom-slug\ntitle: Custom Title\ntags: [a]\ndate: 2024-01-02\n---\n# Heading\n\nbody words edited\n"))
		require.NoError(t, err)
		assert.NotEqual(t, it.Fingerprint, edited.Fingerprint)
	})

	t.Run("heading then file name", func(t *testing.T) {
		it, ok, err := ParseMarkdown("x.md", []byte("# Reading Speed *Explained*\n\ntext\n"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Reading Speed Explained", it.Title)
		assert.Equal(t, "reading-speed-explained", it.Slug)

		it, ok, err = ParseMarkdown("passive-voice_checker.md", []byte("no heading\n"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Passive Voice Checker", it.Title)
		assert.Equal(t, "passive-voice-checker", it.Slug)
	})

	t.Run("drafts skipped", func(t *testing.T) {
		_, ok, err := ParseMarkdown("d.md", []byte("---\ntitle: Draft\ndraft: true\n---\n"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		_, _, err := ParseMarkdown("bad.md", []byte("---\ntitle: x\n"))
		require.Error(t, err)
	})
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, "1 min read", ReadTime(0))
	assert.Equal(t, "1 min read", ReadTime(200))
	assert.Equal(t, "2 min read", ReadTime(201))
}

func TestScanText(t *testing.T) {
	src := `export const posts = [
  { slug: "word-count-for-essays", title: "Word count" },
  { "slug": 'Title Case Rules' },
  { slug = ` + "`tweet-length`" + ` },
  { postSlug: "not-matched" },
];`
	assert.Equal(t, []string{"word-count-for-essays", "title-case-rules", "tweet-length"}, slugsOf(ScanText([]byte(src))))
	assert.Empty(t, ScanText([]byte("no assignments here")))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "posts.yaml"), "- slug: one\n- slug: two\n")
	writeFile(t, filepath.Join(dir, "blog", "b.md"), "# Bravo\n")
	writeFile(t, filepath.Join(dir, "blog", "a.md"), "# Alpha\n")
	writeFile(t, filepath.Join(dir, "blog", ".hidden", "c.md"), "# Hidden\n")
	writeFile(t, filepath.Join(dir, "blog", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "data.ts"), `{ slug: "three" }`)

	ctx := context.Background()

	items, err := Load(ctx, Resolve(dir, Source{Kind: KindRecords, Path: "posts.yaml"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, slugsOf(items))
	assert.Equal(t, filepath.Join(dir, "posts.yaml"), items[0].Origin)

	items, err = Load(ctx, Resolve(dir, Source{Kind: KindMarkdown, Path: "blog"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo"}, slugsOf(items))

	items, err = Load(ctx, Resolve(dir, Source{Kind: KindText, Path: "data.ts"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"three"}, slugsOf(items))

	_, err = Load(ctx, Resolve(dir, Source{Kind: KindRecords, Path: "missing.yaml"}))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(ctx, Source{Kind: "xml", Path: "x"})
	require.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Markdown ")
	require.NoError(t, err)
	assert.Equal(t, KindMarkdown, k)

	_, err = ParseKind("xml")
	require.Error(t, err)
	assert.Equal(t, KindRecords, NormalizeKind(""))
}
