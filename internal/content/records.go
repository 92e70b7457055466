package content

import (
	"fmt"
	"os"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// loadRecords reads a YAML or JSON document holding either a top-level list
// of items or a mapping with an "items" (or "posts") list. JSON is read by the
// YAML decoder, so both camelCase and snake_case date keys are accepted.
func loadRecords(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseRecords(data)
}

func parseRecords(data []byte) ([]Item, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]

	var raw []rawRecord
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
	case yaml.MappingNode:
		var list struct {
			Items []rawRecord `yaml:"items"`
			Posts []rawRecord `yaml:"posts"`
		}
		if err := doc.Decode(&list); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		raw = append(list.Items, list.Posts...)
	default:
		return nil, fmt.Errorf("records document must be a list or a mapping, got %s", nodeKind(doc.Kind))
	}

	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		it := r.item()
		if !it.canonicalize() {
			continue
		}
		it.Fingerprint = recordFingerprint(it)
		items = append(items, it)
	}
	return items, nil
}

// rawRecord accepts the key spellings used by hand-written record files.
type rawRecord struct {
	Slug         string   `yaml:"slug"`
	Title        string   `yaml:"title"`
	Tags         []string `yaml:"tags"`
	PublishDate  string   `yaml:"publish_date"`
	PublishDateC string   `yaml:"publishDate"`
	Date         string   `yaml:"date"`
	ReadTime     string   `yaml:"read_time"`
	ReadTimeC    string   `yaml:"readTime"`
}

func (r rawRecord) item() Item {
	return Item{
		Slug:        r.Slug,
		Title:       r.Title,
		Tags:        r.Tags,
		PublishDate: firstNonEmpty(r.PublishDate, r.PublishDateC, r.Date),
		ReadTime:    firstNonEmpty(r.ReadTime, r.ReadTimeC),
	}
}

// recordFingerprint hashes the record's canonical fields.
func recordFingerprint(it Item) string {
	data, err := yaml.Marshal(struct {
		Slug        string   `yaml:"slug"`
		Title       string   `yaml:"title"`
		Tags        []string `yaml:"tags"`
		PublishDate string   `yaml:"publish_date"`
		ReadTime    string   `yaml:"read_time"`
	}{it.Slug, it.Title, it.Tags, it.PublishDate, it.ReadTime})
	if err != nil {
		return ""
	}
	return mdfp.CalculateFingerprint(string(data))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}
