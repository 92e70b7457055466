package sitemap

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/routes"
)

// Namespace is the sitemap protocol namespace.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ContentType is the response content type of the sitemap endpoint.
const ContentType = "application/xml; charset=utf-8"

// URLSet is the sitemap document root.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one <url> element.
type URL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// NewURLSet resolves every route against origin.
func NewURLSet(origin string, entries []routes.Entry) URLSet {
	origin = strings.TrimRight(origin, "/")
	set := URLSet{Xmlns: Namespace, URLs: make([]URL, 0, len(entries))}
	for _, e := range entries {
		set.URLs = append(set.URLs, URL{
			Loc:        origin + e.Path,
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   FormatPriority(e.Priority),
		})
	}
	return set
}

// FormatPriority renders p with the digits it was configured with; whole
// numbers keep one decimal so 1 prints as 1.0.
func FormatPriority(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Encode writes the XML declaration and the indented document to w.
func (s URLSet) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
