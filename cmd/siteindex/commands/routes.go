package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/sitemap"
)

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct {
	JSON bool `name:"json" help:"Print routes as JSON"`
}

func (c *RoutesCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg, runtimeOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	entries, source := rt.emitter(sitemap.OriginResolver{Fallback: cfg.Site.Origin}).Routes(context.Background())
	if c.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tPRIORITY\tCHANGEFREQ\tKIND")
	for _, e := range entries {
		kind := "content"
		if e.Static() {
			kind = "static"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Path, sitemap.FormatPriority(e.Priority), e.ChangeFrequency, kind)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Out, "%d routes (slugs from %s)\n", len(entries), source)
	return err
}
