// Package breadcrumb emits schema.org BreadcrumbList metadata for a page.
//
// Emission is pure: the same steps and origin always produce byte-identical
// output.
package breadcrumb

import (
	"encoding/json"
	"fmt"
	"strings"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
)

const (
	SchemaContext = "https://schema.org"
	TypeList      = "BreadcrumbList"
	TypeListItem  = "ListItem"
)

// Step is one navigational step. The last step of a trail is the current page.
type Step struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// List is a BreadcrumbList JSON-LD document.
type List struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// ListItem is one entry of a BreadcrumbList. Item is empty for the current page.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Build converts steps into a BreadcrumbList. Every step but the last links
// to origin + href; positions start at 1.
func Build(origin string, steps []Step) (List, error) {
	if len(steps) == 0 {
		return List{}, ferrors.ValidationError("breadcrumb steps are empty").Build()
	}
	origin = strings.TrimRight(origin, "/")

	list := List{
		Context:         SchemaContext,
		Type:            TypeList,
		ItemListElement: make([]ListItem, 0, len(steps)),
	}
	for i, s := range steps {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return List{}, ferrors.ValidationError(fmt.Sprintf("breadcrumb step %d has no name", i+1)).Build()
		}
		item := ListItem{Type: TypeListItem, Position: i + 1, Name: name}
		if i < len(steps)-1 {
			item.Item = resolve(origin, s.Href)
		}
		list.ItemListElement = append(list.ItemListElement, item)
	}
	return list, nil
}

// Marshal returns the compact JSON-LD encoding of the trail.
func Marshal(origin string, steps []Step) ([]byte, error) {
	list, err := Build(origin, steps)
	if err != nil {
		return nil, err
	}
	return json.Marshal(list)
}

func resolve(origin, href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return origin + href
}
