package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	doc, err := Split(input)
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Empty(t, doc.Raw)
	require.Equal(t, input, doc.Body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	doc, err := Split([]byte("---\nslug: my-post\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("slug: my-post\n"), doc.Raw)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, err := Split([]byte("---\nslug: my-post\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	doc, err := Split([]byte("---\r\nslug: my-post\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, []byte("slug: my-post\r\n"), doc.Raw)
	require.Equal(t, []byte("# Title\r\n"), doc.Body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	doc, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Empty(t, doc.Raw)
	require.Equal(t, []byte("# Title\n"), doc.Body)
}

func TestDocumentDecode(t *testing.T) {
	doc, err := Split([]byte("---\ntitle: My Post\ntags: [writing, seo]\n---\nbody\n"))
	require.NoError(t, err)

	var fields struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}
	require.NoError(t, doc.Decode(&fields))
	require.Equal(t, "My Post", fields.Title)
	require.Equal(t, []string{"writing", "seo"}, fields.Tags)
}
