package content

import (
	"context"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inful/mdfp"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/frontmatter"
)

// WordsPerMinute is the reading speed used to derive read times.
const WordsPerMinute = 200

type markdownFields struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
	PublishDate string   `yaml:"publish_date"`
	ReadTime    string   `yaml:"read_time"`
	Draft       bool     `yaml:"draft"`
}

// loadMarkdownDir walks dir for Markdown files in lexical order. Drafts are
// skipped. Files that fail to parse abort the load.
func loadMarkdownDir(ctx context.Context, dir string) ([]Item, error) {
	if err := statDir(dir); err != nil {
		return nil, err
	}
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdownFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		it, ok, err := ParseMarkdown(filepath.Base(p), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if ok {
			items = append(items, it)
		}
	}
	return items, nil
}

// ParseMarkdown builds an item from a Markdown document. The title falls back
// to the first heading and then to the file name; the slug falls back to the
// title. ok is false for drafts and for documents without any usable title.
func ParseMarkdown(name string, data []byte) (it Item, ok bool, err error) {
	doc, err := frontmatter.Split(data)
	if err != nil {
		return Item{}, false, err
	}
	var fm markdownFields
	if err := doc.Decode(&fm); err != nil {
		return Item{}, false, fmt.Errorf("decode frontmatter: %w", err)
	}
	if fm.Draft {
		return Item{}, false, nil
	}

	summary := summarize(doc.Body)
	it = Item{
		Slug:        fm.Slug,
		Title:       firstNonEmpty(fm.Title, summary.heading, titleFromFileName(name)),
		Tags:        fm.Tags,
		PublishDate: firstNonEmpty(fm.PublishDate, fm.Date),
		ReadTime:    fm.ReadTime,
		Fingerprint: mdfp.CalculateFingerprintFromParts(string(doc.Raw), string(doc.Body)),
	}
	if it.ReadTime == "" {
		it.ReadTime = ReadTime(summary.words)
	}
	if !it.canonicalize() {
		return Item{}, false, nil
	}
	return it, true, nil
}

// ReadTime formats the reading time for a word count, never less than one minute.
func ReadTime(words int) string {
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

type bodySummary struct {
	heading string
	words   int
}

// summarize parses body with goldmark and returns the first level-one heading
// and the number of words in text nodes. Code blocks are not counted.
func summarize(body []byte) bodySummary {
	root := goldmark.New().Parser().Parse(text.NewReader(body))

	var s bodySummary
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if s.heading == "" && node.Level == 1 {
				s.heading = strings.TrimSpace(inlineText(node, body))
			}
		case *gmast.Text:
			s.words += len(strings.Fields(string(node.Segment.Value(body))))
		case *gmast.String:
			s.words += len(strings.Fields(string(node.Value)))
		}
		return gmast.WalkContinue, nil
	})
	return s
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return b.String()
}

// titleFromFileName turns "how-to-count_words.md" into "How To Count Words".
func titleFromFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(strings.Join(strings.Fields(base), " "))
}
