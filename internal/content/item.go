// Package content loads content items from the site's content sources.
//
// Three source kinds are supported: typed record lists (YAML or JSON),
// directories of Markdown files with YAML frontmatter, and free-form text
// scraped for slug assignments. Programmatic topics are named in
// configuration and turned into items by Topics.
package content

import (
	"strings"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/slug"
)

// Item is a single piece of authored or programmatic content. Items are
// identified by Slug.
type Item struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	ReadTime    string   `json:"readTime,omitempty"`

	// Fingerprint changes whenever the authored content changes. Programmatic
	// and text-scraped items have none.
	Fingerprint string `json:"fingerprint,omitempty"`
	// Programmatic marks items created from topic names rather than authored records.
	Programmatic bool `json:"programmatic,omitempty"`
	// Origin is the source path the item was read from.
	Origin string `json:"origin,omitempty"`
}

// canonicalize fills a missing slug from the title and rewrites a
// non-canonical one. It reports false when no slug can be derived.
func (it *Item) canonicalize() bool {
	switch {
	case it.Slug == "":
		it.Slug = slug.Make(it.Title)
	case !slug.Valid(it.Slug):
		it.Slug = slug.Make(it.Slug)
	}
	return it.Slug != ""
}

// Topics turns programmatic topic names into items. Names that produce an
// empty slug are dropped.
func Topics(names []string) []Item {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		it := Item{Title: name, Programmatic: true}
		if !it.canonicalize() {
			continue
		}
		items = append(items, it)
	}
	return items
}
