package breadcrumb

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HomeName is the name of the root step produced by FromPath.
const HomeName = "Home"

// FromPath derives a trail from a URL path: Home, then one step per segment.
// names overrides the display name of a step, keyed by its href; otherwise
// the segment is title-cased with hyphens read as spaces.
func FromPath(path string, names map[string]string) []Step {
	steps := []Step{{Name: nameFor("/", HomeName, names), Href: "/"}}

	href := ""
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		href += "/" + seg
		steps = append(steps, Step{Name: nameFor(href, segmentName(seg), names), Href: href})
	}
	return steps
}

func nameFor(href, fallback string, names map[string]string) string {
	if n, ok := names[href]; ok && strings.TrimSpace(n) != "" {
		return n
	}
	return fallback
}

func segmentName(seg string) string {
	words := strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(seg))
	return cases.Title(language.English).String(strings.Join(words, " "))
}
