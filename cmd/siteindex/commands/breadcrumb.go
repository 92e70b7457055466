package commands

import (
	"fmt"
	"strings"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/breadcrumb"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
)

// BreadcrumbCmd implements the 'breadcrumb' command. It does not need a
// configuration file when --origin is given.
type BreadcrumbCmd struct {
	Steps  []string `arg:"" optional:"" help:"Steps as Name=/href, outermost first"`
	Path   string   `help:"Derive steps from a URL path instead of arguments"`
	Origin string   `help:"Site origin (default: site.origin)"`
	HTML   bool     `name:"html" help:"Render a <script type=\"application/ld+json\"> element"`
}

func (c *BreadcrumbCmd) Run(g *Global, root *CLI) error {
	origin := c.Origin
	if origin == "" {
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		origin = cfg.Site.Origin
	}

	var steps []breadcrumb.Step
	switch {
	case c.Path != "" && len(c.Steps) > 0:
		return ferrors.ValidationError("use either --path or step arguments, not both").Build()
	case c.Path != "":
		steps = breadcrumb.FromPath(c.Path, nil)
	default:
		parsed, err := ParseSteps(c.Steps)
		if err != nil {
			return err
		}
		steps = parsed
	}

	var out string
	if c.HTML {
		tag, err := breadcrumb.ScriptTag(origin, steps)
		if err != nil {
			return err
		}
		out = tag
	} else {
		data, err := breadcrumb.Marshal(origin, steps)
		if err != nil {
			return err
		}
		out = string(data)
	}
	_, err := fmt.Fprintln(g.Out, out)
	return err
}

// ParseSteps parses "Name=/href" arguments. The name is everything before
// the first '='.
func ParseSteps(args []string) ([]breadcrumb.Step, error) {
	steps := make([]breadcrumb.Step, 0, len(args))
	for _, a := range args {
		name, href, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, ferrors.ValidationError(fmt.Sprintf("invalid breadcrumb step %q (want Name=/href)", a)).Build()
		}
		steps = append(steps, breadcrumb.Step{Name: strings.TrimSpace(name), Href: strings.TrimSpace(href)})
	}
	return steps, nil
}
