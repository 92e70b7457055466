// Package frontmatter separates YAML frontmatter from Markdown content sources.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Document is a Markdown source split into its frontmatter block and body.
type Document struct {
	// Raw holds the YAML between the delimiters, without the delimiters.
	Raw  []byte
	Body []byte
	// Had reports whether the source opened with a frontmatter delimiter.
	Had bool
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates `---` delimited YAML frontmatter from the Markdown body.
// CRLF line endings are accepted. Without a leading delimiter the whole input is the body.
func Split(content []byte) (Document, error) {
	nl := []byte("\n")
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = []byte("\r\n")
	}

	open := append([]byte("---"), nl...)
	if !bytes.HasPrefix(content, open) {
		return Document{Body: content}, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return Document{Raw: []byte{}, Body: rest[len(open):], Had: true}, nil
	}

	closing := append(append([]byte{}, nl...), open...)
	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return Document{}, ErrMissingClosingDelimiter
	}
	return Document{
		Raw:  rest[:idx+len(nl)],
		Body: rest[idx+len(closing):],
		Had:  true,
	}, nil
}

// Decode unmarshals the frontmatter block into v. An empty block leaves v untouched.
func (d Document) Decode(v any) error {
	if len(bytes.TrimSpace(d.Raw)) == 0 {
		return nil
	}
	return yaml.Unmarshal(d.Raw, v)
}
