package content

import (
	"os"
	"regexp"
)

// slugAssignment matches `slug: "x"`, `"slug": "x"` and `slug = 'x'` style
// field assignments in free-form source text.
var slugAssignment = regexp.MustCompile("[\"']?\\bslug[\"']?\\s*[:=]\\s*[\"'`]([^\"'`\\r\\n]+)[\"'`]")

func loadText(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ScanText(data), nil
}

// ScanText extracts items from slug assignments found in data. Text without
// any assignment yields no items.
func ScanText(data []byte) []Item {
	matches := slugAssignment.FindAllSubmatch(data, -1)
	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		it := Item{Slug: string(m[1])}
		if !it.canonicalize() {
			continue
		}
		items = append(items, it)
	}
	return items
}
