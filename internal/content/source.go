package content

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/normalization"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
)

// Kind identifies how a content source is parsed.
type Kind string

const (
	KindRecords  Kind = "records"
	KindMarkdown Kind = "markdown"
	KindText     Kind = "text"
)

var kindNormalizer = normalization.NewNormalizer("content source kind", map[string]Kind{
	"records":  KindRecords,
	"markdown": KindMarkdown,
	"text":     KindText,
}, KindRecords)

// NormalizeKind case-folds raw into a known Kind, returning KindRecords for empty input.
func NormalizeKind(raw string) Kind { return kindNormalizer.Normalize(raw) }

// ParseKind is the strict variant of NormalizeKind.
func ParseKind(raw string) (Kind, error) { return kindNormalizer.Parse(raw) }

// Source is a content source with a resolved path.
type Source struct {
	Kind Kind
	Path string
}

func (s Source) String() string { return fmt.Sprintf("%s:%s", s.Kind, s.Path) }

// Resolve anchors a relative path to baseDir.
func Resolve(baseDir string, s Source) Source {
	if s.Path != "" && !filepath.IsAbs(s.Path) && baseDir != "" {
		s.Path = filepath.Join(baseDir, s.Path)
	}
	return s
}

// Load reads every item from s. Read failures are returned unwrapped from
// the os package so callers can classify them.
func Load(ctx context.Context, s Source) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		items []Item
		err   error
	)
	switch s.Kind {
	case KindRecords:
		items, err = loadRecords(s.Path)
	case KindMarkdown:
		items, err = loadMarkdownDir(ctx, s.Path)
	case KindText:
		items, err = loadText(s.Path)
	default:
		return nil, fmt.Errorf("unknown content source kind %q", s.Kind)
	}
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Origin = s.Path
	}
	slog.Debug("Loaded content source", logfields.Kind(string(s.Kind)), logfields.Path(s.Path), logfields.ItemCount(len(items)))
	return items, nil
}

func isMarkdownFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

func statDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", path)
	}
	return nil
}
