package breadcrumb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ScriptType is the type attribute of JSON-LD script elements.
const ScriptType = "application/ld+json"

// ScriptTag renders the trail as a <script type="application/ld+json"> element
// ready to embed in a page head.
func ScriptTag(origin string, steps []Step) (string, error) {
	data, err := Marshal(origin, steps)
	if err != nil {
		return "", err
	}
	script := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     "script",
		Attr:     []html.Attribute{{Key: "type", Val: ScriptType}},
	}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: string(data)})

	var buf bytes.Buffer
	if err := html.Render(&buf, script); err != nil {
		return "", fmt.Errorf("render breadcrumb script: %w", err)
	}
	return buf.String(), nil
}

// Extract returns every BreadcrumbList embedded as JSON-LD in an HTML page.
// Scripts that are not JSON or describe another type are ignored.
func Extract(r io.Reader) ([]List, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var lists []List
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script && isJSONLD(n) {
			var l List
			if err := json.Unmarshal([]byte(textOf(n)), &l); err == nil && l.Type == TypeList {
				lists = append(lists, l)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return lists, nil
}

func isJSONLD(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "type" && strings.EqualFold(strings.TrimSpace(a.Val), ScriptType) {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
